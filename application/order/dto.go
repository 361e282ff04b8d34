package order

import "time"

// CreateOrderRequest 表示创建订单的入参。
type CreateOrderRequest struct {
	UserID          string            `json:"user_id" binding:"required"`
	AddressID       string            `json:"address_id" binding:"required"`
	PaymentMethodID string            `json:"payment_method_id" binding:"required"`
	VoucherID       string            `json:"voucher_id"`
	Items           []LineItemRequest `json:"items" binding:"required,min=1"`
}

// LineItemRequest 表示创建订单时的单个商品项。
type LineItemRequest struct {
	ProductItemID string `json:"product_item_id" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
}

// UpdateOrderStatusRequest 表示更新订单状态入参。
type UpdateOrderStatusRequest struct {
	OrderID        string `json:"order_id" binding:"required"`
	Status         string `json:"status" binding:"required"`
	Actor          string `json:"actor" binding:"required"`
	CancelReasonID string `json:"cancel_reason_id"`
}

// ChangePaymentMethodRequest 表示更换支付方式入参。
type ChangePaymentMethodRequest struct {
	OrderID         string `json:"order_id" binding:"required"`
	PaymentMethodID string `json:"payment_method_id" binding:"required"`
	Actor           string `json:"actor" binding:"required"`
}

// PaymentResultRequest 表示支付网关回调的结果信号。
type PaymentResultRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	Succeeded bool   `json:"succeeded"`
}

// OrderSummaryResponse 表示创建订单后的摘要返回模型。
type OrderSummaryResponse struct {
	ID          string        `json:"id"`
	Status      string        `json:"status"`
	TotalAmount MoneyResponse `json:"total_amount"`
	CreatedAt   time.Time     `json:"created_at"`
}

// OrderResponse 表示订单返回模型。
type OrderResponse struct {
	ID              string                 `json:"id"`
	UserID          string                 `json:"user_id"`
	AddressID       string                 `json:"address_id"`
	PaymentMethodID string                 `json:"payment_method_id"`
	VoucherID       string                 `json:"voucher_id,omitempty"`
	CancelReasonID  string                 `json:"cancel_reason_id,omitempty"`
	Details         []OrderDetailResponse  `json:"details"`
	StatusHistory   []StatusChangeResponse `json:"status_history"`
	TotalAmount     MoneyResponse          `json:"total_amount"`
	Status          string                 `json:"status"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// OrderDetailResponse 表示订单明细返回模型。
type OrderDetailResponse struct {
	ProductItemID string        `json:"product_item_id"`
	Quantity      int           `json:"quantity"`
	UnitPrice     MoneyResponse `json:"unit_price"`
	Subtotal      MoneyResponse `json:"subtotal"`
}

// StatusChangeResponse 表示状态历史条目返回模型。
type StatusChangeResponse struct {
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// MoneyResponse 表示金额返回模型。
type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}
