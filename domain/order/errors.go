/*
Package order - 订单领域错误定义

设计原则:
1. 使用哨兵错误(sentinel errors)支持 errors.Is() 类型安全判断
2. 错误构造函数在创建时捕获堆栈，便于定位错误发生点
3. 不包含 HTTP 状态码等非领域概念
*/
package order

import (
	"errors"

	"orderflow/domain/shared"
)

var (
	// ErrOrderNotFound 订单未找到（含已软删除的订单）
	ErrOrderNotFound = errors.New("order not found")

	// ErrConcurrentModification 并发修改冲突（乐观锁）
	// 当订单被其他事务修改时返回此错误，调用方应重试
	ErrConcurrentModification = errors.New("order was modified by another transaction, please retry")

	// ErrInvalidStateTransition 无效的订单状态转换
	ErrInvalidStateTransition = errors.New("invalid order state transition")

	// ErrEmptyOrderItems 订单项为空
	ErrEmptyOrderItems = errors.New("order must have at least one line item")

	// ErrInvalidQuantity 无效的订单项数量
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrTotalNotPositive 订单总金额必须为正数
	ErrTotalNotPositive = errors.New("order total must be positive")

	// ErrPaymentMethodLocked 只有待支付订单可以更换支付方式
	ErrPaymentMethodLocked = errors.New("payment method can only be changed while awaiting payment")
)

// NewOrderNotFoundError 创建订单未找到错误（带堆栈）
func NewOrderNotFoundError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrOrderNotFound,
		message:  "order not found: " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError 创建并发修改错误
func NewConcurrentModificationError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrConcurrentModification,
		message:  "order " + orderID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidStateTransitionError 创建无效状态转换错误
func NewInvalidStateTransitionError(current, target Status) error {
	return &orderDomainError{
		sentinel: ErrInvalidStateTransition,
		message:  "cannot transition from " + string(current) + " to " + string(target),
		stack:    shared.CaptureStack(3),
	}
}

// orderDomainError 订单领域错误（带堆栈）
type orderDomainError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *orderDomainError) Error() string {
	return e.message
}

func (e *orderDomainError) Unwrap() error {
	return e.sentinel
}

// Stack 实现 shared.Stacker 接口
func (e *orderDomainError) Stack() []string {
	return shared.FormatStack(e.stack)
}
