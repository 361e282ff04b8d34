// Package report - 报表 API 控制器
package report

import (
	"orderflow/api/ctxutil"
	"orderflow/api/response"
	reportapp "orderflow/application/report"

	"github.com/gin-gonic/gin"
)

// Controller 报表控制器
type Controller struct {
	reportService *reportapp.Service
}

// NewController 创建报表控制器
func NewController(reportService *reportapp.Service) *Controller {
	return &Controller{
		reportService: reportService,
	}
}

// RegisterRoutes 注册报表路由
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	reportGroup := router.Group("/reports")
	{
		reportGroup.GET("/cancelled-orders", c.CancelledOrders)
		reportGroup.GET("/financial-summary", c.FinancialSummary)
	}
}

// CancelledOrders 取消订单报表（含预计退款金额）
// GET /api/v1/reports/cancelled-orders
func (c *Controller) CancelledOrders(ctx *gin.Context) {
	rows, err := c.reportService.CancelledOrders(ctxutil.WithRequestID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, rows, "cancelled orders retrieved successfully")
}

// FinancialSummary 财务汇总
// GET /api/v1/reports/financial-summary
func (c *Controller) FinancialSummary(ctx *gin.Context) {
	summary, err := c.reportService.Summary(ctxutil.WithRequestID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, summary, "financial summary retrieved successfully")
}
