package po

import (
	"orderflow/domain/cancellation"
	"orderflow/domain/checkout"
)

// AddressPO Shipping address persistence object
type AddressPO struct {
	ID     string `gorm:"primaryKey;size:64"`
	UserID string `gorm:"size:64;index;not null"`
	Line   string `gorm:"size:512;not null"`
}

// TableName Specify table name
func (AddressPO) TableName() string {
	return "addresses"
}

// ToDomain Convert persistence object to read model
func (po *AddressPO) ToDomain() *checkout.Address {
	return &checkout.Address{
		ID:     po.ID,
		UserID: po.UserID,
		Line:   po.Line,
	}
}

// PaymentMethodPO Payment method persistence object
type PaymentMethodPO struct {
	ID   string `gorm:"primaryKey;size:64"`
	Name string `gorm:"size:64;not null"`
	Kind string `gorm:"size:16;not null"`
}

// TableName Specify table name
func (PaymentMethodPO) TableName() string {
	return "payment_methods"
}

// ToDomain Convert persistence object to read model
func (po *PaymentMethodPO) ToDomain() *checkout.PaymentMethod {
	return &checkout.PaymentMethod{
		ID:   po.ID,
		Name: po.Name,
		Kind: checkout.PaymentKind(po.Kind),
	}
}

// CartItemPO Shopping cart item persistence object
type CartItemPO struct {
	ID            string `gorm:"primaryKey;size:64"`
	UserID        string `gorm:"size:64;index;not null"`
	ProductItemID string `gorm:"size:64;not null"`
	Quantity      int    `gorm:"not null"`
}

// TableName Specify table name
func (CartItemPO) TableName() string {
	return "cart_items"
}

// CancelReasonPO Cancel reason catalog persistence object
type CancelReasonPO struct {
	ID          string `gorm:"primaryKey;size:64"`
	Description string `gorm:"size:255;not null"`
	RefundRate  int    `gorm:"not null"`
}

// TableName Specify table name
func (CancelReasonPO) TableName() string {
	return "cancel_reasons"
}

// ToDomain Convert persistence object to read model
func (po *CancelReasonPO) ToDomain() *cancellation.CancelReason {
	return &cancellation.CancelReason{
		ID:          po.ID,
		Description: po.Description,
		RefundRate:  po.RefundRate,
	}
}
