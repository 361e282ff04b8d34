// Package voucher applies percentage discount codes to order subtotals and
// tracks their finite usage budget.
package voucher

import (
	"context"
	"errors"

	"orderflow/domain/shared"
)

var (
	// ErrVoucherNotFound 优惠券未找到
	ErrVoucherNotFound = errors.New("voucher not found")

	// ErrVoucherExhausted 优惠券剩余次数已用尽
	ErrVoucherExhausted = errors.New("voucher usage exhausted")
)

// NewVoucherNotFoundError 创建优惠券未找到错误（带堆栈）
func NewVoucherNotFoundError(voucherID string) error {
	return &voucherError{
		sentinel: ErrVoucherNotFound,
		message:  "voucher not found: " + voucherID,
		stack:    shared.CaptureStack(3),
	}
}

// NewVoucherExhaustedError 创建优惠券用尽错误
func NewVoucherExhaustedError(voucherID string) error {
	return &voucherError{
		sentinel: ErrVoucherExhausted,
		message:  "voucher " + voucherID + " has no remaining usage",
		stack:    shared.CaptureStack(3),
	}
}

type voucherError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *voucherError) Error() string   { return e.message }
func (e *voucherError) Unwrap() error   { return e.sentinel }
func (e *voucherError) Stack() []string { return shared.FormatStack(e.stack) }

// Voucher 优惠券读模型
type Voucher struct {
	ID             string
	Code           string
	DiscountRate   int // percentage
	RemainingUsage int
}

// Repository resolves and consumes vouchers.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Voucher, error)

	// ConsumeUsage decrements remaining usage by exactly one, as a single
	// conditional update (remaining_usage > 0). Returns
	// ErrVoucherExhausted when nothing remains and ErrVoucherNotFound when
	// the voucher does not exist. Must run in the enclosing transaction so
	// a failed creation never burns a usage.
	ConsumeUsage(ctx context.Context, id string) error
}

// Discount returns the subtotal after a percentage discount:
// subtotal - subtotal*rate/100. Rate 0 is the identity, so callers pass 0
// when no voucher applies.
func Discount(subtotal shared.Money, rate int) (shared.Money, error) {
	if rate < 0 || rate > 100 {
		return subtotal, shared.NewValidationError("voucher", "discount_rate", "discount rate must be between 0 and 100")
	}
	if rate == 0 {
		return subtotal, nil
	}
	discounted, err := subtotal.Subtract(subtotal.Percent(rate))
	if err != nil {
		return subtotal, err
	}
	return *discounted, nil
}
