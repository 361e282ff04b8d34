/*
Package order - 订单 API 控制器

职责:
1. 接收 HTTP 请求，解析参数
2. 调用应用服务处理业务流程
3. 使用 response 包统一处理响应和错误

错误处理原则:
1. 参数绑定错误: 使用 response.HandleError 直接返回 400
2. 业务错误: 使用 response.HandleAppError 自动映射状态码
3. HandleAppError 会自动调用 errors.FromDomainError 转换错误
*/
package order

import (
	"net/http"

	"orderflow/api/ctxutil"
	"orderflow/api/response"
	orderapp "orderflow/application/order"
	"orderflow/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller 订单控制器
type Controller struct {
	orderService *orderapp.ApplicationService
}

// NewController 创建订单控制器
func NewController(orderService *orderapp.ApplicationService) *Controller {
	return &Controller{
		orderService: orderService,
	}
}

// RegisterRoutes 注册订单路由
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("", c.CreateOrder)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.GET("/user/:userId", c.GetUserOrders)
		orderGroup.PUT("/:id/status", c.UpdateOrderStatus)
		orderGroup.PUT("/:id/payment-method", c.ChangePaymentMethod)
		orderGroup.POST("/:id/payment-result", c.ApplyPaymentResult)
	}
}

// CreateOrder 创建订单
// POST /api/v1/orders
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		// 参数绑定错误: 直接返回 400
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	summary, err := c.orderService.CreateOrder(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		// 业务错误: HandleAppError 自动处理错误转换和状态码映射
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, summary, "order created successfully")
}

// GetOrder 获取订单信息
// GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	o, err := c.orderService.GetOrder(ctxutil.WithRequestID(ctx), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "order retrieved successfully")
}

// GetUserOrders 获取用户的所有订单
// GET /api/v1/orders/user/:userId
func (c *Controller) GetUserOrders(ctx *gin.Context) {
	userID := ctx.Param("userId")
	if userID == "" {
		response.HandleError(ctx, errors.BadRequest("user ID is required"), "user ID is required", http.StatusBadRequest)
		return
	}

	orders, err := c.orderService.GetUserOrders(ctxutil.WithRequestID(ctx), userID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "user orders retrieved successfully")
}

// UpdateOrderStatusBody 更新订单状态请求体
type UpdateOrderStatusBody struct {
	Status         string `json:"status" binding:"required"`
	Actor          string `json:"actor" binding:"required"`
	CancelReasonID string `json:"cancel_reason_id"`
}

// UpdateOrderStatus 更新订单状态
// PUT /api/v1/orders/:id/status
func (c *Controller) UpdateOrderStatus(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	var body UpdateOrderStatusBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	req := orderapp.UpdateOrderStatusRequest{
		OrderID:        orderID,
		Status:         body.Status,
		Actor:          body.Actor,
		CancelReasonID: body.CancelReasonID,
	}

	if err := c.orderService.UpdateStatus(ctxutil.WithRequestID(ctx), req); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "order status updated successfully")
}

// ChangePaymentMethodBody 更换支付方式请求体
type ChangePaymentMethodBody struct {
	PaymentMethodID string `json:"payment_method_id" binding:"required"`
	Actor           string `json:"actor" binding:"required"`
}

// ChangePaymentMethod 更换支付方式
// PUT /api/v1/orders/:id/payment-method
func (c *Controller) ChangePaymentMethod(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	var body ChangePaymentMethodBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	req := orderapp.ChangePaymentMethodRequest{
		OrderID:         orderID,
		PaymentMethodID: body.PaymentMethodID,
		Actor:           body.Actor,
	}

	if err := c.orderService.ChangePaymentMethod(ctxutil.WithRequestID(ctx), req); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "payment method changed successfully")
}

// ApplyPaymentResultBody 支付网关回调请求体
type ApplyPaymentResultBody struct {
	Succeeded bool `json:"succeeded"`
}

// ApplyPaymentResult 应用支付网关的支付结果
// POST /api/v1/orders/:id/payment-result
func (c *Controller) ApplyPaymentResult(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	var body ApplyPaymentResultBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	req := orderapp.PaymentResultRequest{
		OrderID:   orderID,
		Succeeded: body.Succeeded,
	}

	if err := c.orderService.ApplyPaymentResult(ctxutil.WithRequestID(ctx), req); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "payment result applied successfully")
}
