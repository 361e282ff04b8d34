package shared

import "errors"

// DefaultCurrency is the currency every amount in the system is priced in.
const DefaultCurrency = "VND"

// Money 值对象 - 表示金额
// Amounts are stored in the smallest currency unit (whole dong for VND).
type Money struct {
	amount   int64
	currency string
}

// NewMoney 创建新的Money值对象
func NewMoney(amount int64, currency string) *Money {
	return &Money{
		amount:   amount,
		currency: currency,
	}
}

// VND builds a Money in the default currency.
func VND(amount int64) Money {
	return Money{amount: amount, currency: DefaultCurrency}
}

// Amount 获取金额数量
func (m Money) Amount() int64 {
	return m.amount
}

// Currency 获取货币类型
func (m Money) Currency() string {
	return m.currency
}

// Add 金额相加，返回新的Money值对象
func (m Money) Add(other Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, errors.New("cannot add money with different currencies")
	}

	return &Money{
		amount:   m.amount + other.amount,
		currency: m.currency,
	}, nil
}

// Subtract 金额相减，返回新的Money值对象
func (m Money) Subtract(other Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, errors.New("cannot subtract money with different currencies")
	}

	return &Money{
		amount:   m.amount - other.amount,
		currency: m.currency,
	}, nil
}

// Multiply scales the amount by a quantity, guarding against overflow.
func (m Money) Multiply(quantity int) (*Money, error) {
	if quantity < 0 {
		return nil, errors.New("cannot multiply money by a negative quantity")
	}
	if quantity != 0 && m.amount > 0 && m.amount > (1<<62)/int64(quantity) {
		return nil, errors.New("money multiplication overflow")
	}

	return &Money{
		amount:   m.amount * int64(quantity),
		currency: m.currency,
	}, nil
}

// Percent returns rate percent of the amount, truncated to the smallest unit.
func (m Money) Percent(rate int) Money {
	return Money{
		amount:   m.amount * int64(rate) / 100,
		currency: m.currency,
	}
}

// IsPositive 金额是否为正
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsGreaterThanOrEqual 比较金额是否大于或等于另一个金额
func (m Money) IsGreaterThanOrEqual(other Money) bool {
	return m.amount >= other.amount
}

// Equals 比较两个Money值对象是否相等
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}
