package po

import (
	"time"

	"orderflow/domain/checkout"
	"orderflow/domain/order"
	"orderflow/domain/shared"
)

// OrderPO Order persistence object
// Note: Only used for database mapping, does not contain any business logic
// Defining GORM associations is prohibited here
type OrderPO struct {
	ID              string    `gorm:"primaryKey;size:64"`
	UserID          string    `gorm:"size:64;index;not null"` // Only store ID, no association with User
	AddressID       string    `gorm:"size:64;not null"`
	PaymentMethodID string    `gorm:"size:64;not null"`
	PaymentKind     string    `gorm:"size:16;not null"`
	VoucherID       string    `gorm:"size:64"` // empty when no voucher applied
	CancelReasonID  string    `gorm:"size:64"` // empty until cancelled with a reason
	Status          string    `gorm:"size:20;not null;index"`
	TotalAmount     int64     `gorm:"not null"`
	TotalCurrency   string    `gorm:"size:3;not null"`
	Version         int       `gorm:"default:0"`
	Deleted         bool      `gorm:"default:false;index"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
	UpdatedBy       string    `gorm:"size:64"`
}

// TableName Specify table name
func (OrderPO) TableName() string {
	return "orders"
}

// OrderDetailPO Order detail persistence object
type OrderDetailPO struct {
	ID               string `gorm:"primaryKey;size:128"`
	OrderID          string `gorm:"size:64;index;not null"` // Only store ID, no GORM association
	ProductItemID    string `gorm:"size:64;not null"`
	Quantity         int    `gorm:"not null"`
	UnitPrice        int64  `gorm:"not null"`
	UnitCurrency     string `gorm:"size:3;not null"`
	Subtotal         int64  `gorm:"not null"`
	SubtotalCurrency string `gorm:"size:3;not null"`
}

// TableName Specify table name
func (OrderDetailPO) TableName() string {
	return "order_details"
}

// StatusChangePO Status history persistence object.
// Rows in this table are append-only.
type StatusChangePO struct {
	ID        string    `gorm:"primaryKey;size:128"`
	OrderID   string    `gorm:"size:64;index;not null"`
	Status    string    `gorm:"size:20;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName Specify table name
func (StatusChangePO) TableName() string {
	return "status_changes"
}

// FromOrderDomain Convert domain model to persistence objects
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderDetailPO) {
	orderPO := &OrderPO{
		ID:              o.ID(),
		UserID:          o.UserID(),
		AddressID:       o.AddressID(),
		PaymentMethodID: o.PaymentMethodID(),
		PaymentKind:     string(o.PaymentKind()),
		VoucherID:       o.VoucherID(),
		CancelReasonID:  o.CancelReasonID(),
		Status:          string(o.Status()),
		TotalAmount:     o.TotalAmount().Amount(),
		TotalCurrency:   o.TotalAmount().Currency(),
		Version:         o.Version(),
		Deleted:         o.Deleted(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		UpdatedBy:       o.UpdatedBy(),
	}

	details := o.Details()
	detailPOs := make([]OrderDetailPO, len(details))
	for i, d := range details {
		detailPOs[i] = OrderDetailPO{
			ID:               d.ID(), // Use domain object's ID for consistency
			OrderID:          o.ID(),
			ProductItemID:    d.ProductItemID(),
			Quantity:         d.Quantity(),
			UnitPrice:        d.UnitPrice().Amount(),
			UnitCurrency:     d.UnitPrice().Currency(),
			Subtotal:         d.Subtotal().Amount(),
			SubtotalCurrency: d.Subtotal().Currency(),
		}
	}

	return orderPO, detailPOs
}

// FromStatusChangeDomain Convert history entries to persistence objects
func FromStatusChangeDomain(changes []order.StatusChange) []StatusChangePO {
	pos := make([]StatusChangePO, len(changes))
	for i, sc := range changes {
		pos[i] = StatusChangePO{
			ID:        sc.ID(),
			OrderID:   sc.OrderID(),
			Status:    string(sc.Status()),
			CreatedAt: sc.CreatedAt(),
		}
	}
	return pos
}

// ToDomain Convert persistence objects to domain model
func (po *OrderPO) ToDomain(detailPOs []OrderDetailPO, changePOs []StatusChangePO) *order.Order {
	details := make([]order.Detail, len(detailPOs))
	for i, d := range detailPOs {
		details[i] = order.RebuildDetailFromDTO(order.DetailReconstructionDTO{
			ID:            d.ID,
			ProductItemID: d.ProductItemID,
			Quantity:      d.Quantity,
			UnitPrice:     *shared.NewMoney(d.UnitPrice, d.UnitCurrency),
			Subtotal:      *shared.NewMoney(d.Subtotal, d.SubtotalCurrency),
		})
	}

	changes := make([]order.StatusChange, len(changePOs))
	for i, sc := range changePOs {
		changes[i] = order.RebuildStatusChangeFromDTO(order.StatusChangeReconstructionDTO{
			ID:        sc.ID,
			OrderID:   sc.OrderID,
			Status:    order.Status(sc.Status),
			CreatedAt: sc.CreatedAt,
		})
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:              po.ID,
		UserID:          po.UserID,
		AddressID:       po.AddressID,
		PaymentMethodID: po.PaymentMethodID,
		PaymentKind:     checkout.PaymentKind(po.PaymentKind),
		VoucherID:       po.VoucherID,
		CancelReasonID:  po.CancelReasonID,
		Details:         details,
		StatusChanges:   changes,
		TotalAmount:     *shared.NewMoney(po.TotalAmount, po.TotalCurrency),
		Status:          order.Status(po.Status),
		Version:         po.Version,
		CreatedAt:       po.CreatedAt,
		UpdatedAt:       po.UpdatedAt,
		UpdatedBy:       po.UpdatedBy,
		Deleted:         po.Deleted,
	})
}
