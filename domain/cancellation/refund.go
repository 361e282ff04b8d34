// Package cancellation holds the cancel-reason catalog and the pure refund
// calculator used by reporting.
package cancellation

import (
	"context"
	"errors"

	"orderflow/domain/shared"
)

// ErrReasonNotFound 取消原因未找到
var ErrReasonNotFound = errors.New("cancel reason not found")

// NewReasonNotFoundError 创建取消原因未找到错误（带堆栈）
func NewReasonNotFoundError(reasonID string) error {
	return &reasonError{
		message: "cancel reason not found: " + reasonID,
		stack:   shared.CaptureStack(3),
	}
}

type reasonError struct {
	message string
	stack   []uintptr
}

func (e *reasonError) Error() string   { return e.message }
func (e *reasonError) Unwrap() error   { return ErrReasonNotFound }
func (e *reasonError) Stack() []string { return shared.FormatStack(e.stack) }

// CancelReason 取消原因 - 只读目录数据
type CancelReason struct {
	ID          string
	Description string
	RefundRate  int // percentage, 0-100
}

// Repository resolves cancel reasons.
type Repository interface {
	FindByID(ctx context.Context, id string) (*CancelReason, error)
}

// RefundAmount computes the refund owed for a cancelled order:
// orderTotal * reason.RefundRate / 100. Pure, no side effects.
func RefundAmount(orderTotal shared.Money, reason *CancelReason) shared.Money {
	if reason == nil {
		return orderTotal.Percent(0)
	}
	return orderTotal.Percent(reason.RefundRate)
}
