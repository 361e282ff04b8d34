package ctxutil

import (
	"context"

	"orderflow/api/response"
	"orderflow/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// WithRequestID carries the gin request ID into the request context so
// lower layers (GORM logging, event publishing) can correlate log lines.
func WithRequestID(ctx *gin.Context) context.Context {
	requestID := response.GetRequestID(ctx)
	return persistence.ContextWithRequestID(ctx.Request.Context(), requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}
