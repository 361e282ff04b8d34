package inventory

import (
	"errors"
	"strconv"

	"orderflow/domain/shared"
)

var (
	// ErrItemNotFound 库存单品未找到
	ErrItemNotFound = errors.New("product item not found")

	// ErrInsufficientStock 库存不足，预占数量超过现有库存
	ErrInsufficientStock = errors.New("insufficient stock")
)

// NewItemNotFoundError 创建库存单品未找到错误（带堆栈）
func NewItemNotFoundError(itemID string) error {
	return &inventoryError{
		sentinel: ErrItemNotFound,
		message:  "product item not found: " + itemID,
		stack:    shared.CaptureStack(3),
	}
}

// NewInsufficientStockError 创建库存不足错误
func NewInsufficientStockError(itemID string, requested int) error {
	return &inventoryError{
		sentinel: ErrInsufficientStock,
		message:  "insufficient stock for product item " + itemID + " (requested " + strconv.Itoa(requested) + ")",
		stack:    shared.CaptureStack(3),
	}
}

type inventoryError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *inventoryError) Error() string { return e.message }
func (e *inventoryError) Unwrap() error { return e.sentinel }

// Stack 实现 shared.Stacker 接口
func (e *inventoryError) Stack() []string { return shared.FormatStack(e.stack) }
