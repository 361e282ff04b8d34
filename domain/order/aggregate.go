/*
Package order Order subdomain.

Order is the aggregate root of the fulfillment workflow. It owns its line
details (immutable price snapshots) and its status history (append-only),
and it is the only place a status value can change. Consistency rules kept
here:
  - every status mutation goes through the transition table in status.go
  - every status mutation appends a StatusChange entry, so the current
    status always equals the latest history entry
  - details are created once, with the order, and never mutated
  - the version field backs optimistic locking at the repository layer
*/
package order

import (
	"fmt"
	"time"

	"orderflow/domain/checkout"
	"orderflow/domain/shared"
	"orderflow/domain/voucher"

	"github.com/google/uuid"
)

// Order 订单聚合根
type Order struct {
	id              string
	userID          string
	addressID       string
	paymentMethodID string
	paymentKind     checkout.PaymentKind
	voucherID       string // empty when no voucher was applied
	cancelReasonID  string // empty until cancelled with a reason
	details         []Detail
	statusChanges   []StatusChange
	totalAmount     shared.Money
	status          Status
	version         int // Optimistic lock version number for concurrency control
	createdAt       time.Time
	updatedAt       time.Time
	updatedBy       string
	deleted         bool // soft-delete flag; orders are never hard-deleted

	events []shared.DomainEvent

	// Dirty tracking for efficient persistence: history entries appended
	// since the aggregate was loaded, and whether the aggregate is new.
	pendingStatusChanges []StatusChange
	isNew                bool
}

// Detail 订单明细 - 聚合内实体，不能脱离 Order 访问
// The unit price is frozen at order time, independent of later catalog
// price changes.
type Detail struct {
	id            string
	productItemID string
	quantity      int
	unitPrice     shared.Money
	subtotal      shared.Money
}

// StatusChange 状态历史条目 - 追加写入，永不更新或删除
type StatusChange struct {
	id        string
	orderID   string
	status    Status
	createdAt time.Time
}

// DetailRequest 创建订单时的单个商品项
type DetailRequest struct {
	ProductItemID string
	Quantity      int
	UnitPrice     shared.Money
}

// PostOptions 创建订单参数
type PostOptions struct {
	UserID          string
	AddressID       string
	PaymentMethodID string
	PaymentKind     checkout.PaymentKind
	VoucherID       string
	DiscountRate    int // percentage, 0 when no voucher
	Actor           string
	Details         []DetailRequest
}

// NewOrder Create new Order aggregate root.
// This is the only entry point for creating an Order: it freezes unit
// prices into details, applies the voucher discount to the subtotal,
// validates the final total and assigns the initial status from the
// payment method kind.
func NewOrder(opts PostOptions) (*Order, error) {
	if opts.UserID == "" {
		return nil, shared.NewValidationError("order", "user_id", "user id is required")
	}
	if opts.AddressID == "" {
		return nil, shared.NewValidationError("order", "address_id", "address id is required")
	}
	if opts.PaymentMethodID == "" {
		return nil, shared.NewValidationError("order", "payment_method_id", "payment method id is required")
	}
	if len(opts.Details) == 0 {
		return nil, ErrEmptyOrderItems
	}

	details := make([]Detail, len(opts.Details))
	subtotal := shared.VND(0)
	for i, req := range opts.Details {
		if req.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		lineTotal, err := req.UnitPrice.Multiply(req.Quantity)
		if err != nil {
			return nil, err
		}

		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate order detail ID: %w", err)
		}

		details[i] = Detail{
			id:            id.String(),
			productItemID: req.ProductItemID,
			quantity:      req.Quantity,
			unitPrice:     req.UnitPrice,
			subtotal:      *lineTotal,
		}

		sum, err := subtotal.Add(*lineTotal)
		if err != nil {
			return nil, err
		}
		subtotal = *sum
	}

	total, err := voucher.Discount(subtotal, opts.DiscountRate)
	if err != nil {
		return nil, err
	}
	if !total.IsPositive() {
		return nil, ErrTotalNotPositive
	}

	orderID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order ID: %w", err)
	}

	now := time.Now()
	o := &Order{
		id:              orderID.String(),
		userID:          opts.UserID,
		addressID:       opts.AddressID,
		paymentMethodID: opts.PaymentMethodID,
		paymentKind:     opts.PaymentKind,
		voucherID:       opts.VoucherID,
		details:         details,
		totalAmount:     total,
		status:          InitialStatus(opts.PaymentKind),
		version:         0,
		createdAt:       now,
		updatedAt:       now,
		updatedBy:       opts.Actor,
		events:          make([]shared.DomainEvent, 0),
		isNew:           true,
	}

	if err := o.appendStatusChange(o.status, now); err != nil {
		return nil, err
	}
	o.events = append(o.events, NewOrderPlacedEvent(o.id, o.userID, o.totalAmount, o.status))

	return o, nil
}

// appendStatusChange records a history entry for the given status.
// The order's current status must already equal status when this returns.
func (o *Order) appendStatusChange(status Status, at time.Time) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate status change ID: %w", err)
	}
	sc := StatusChange{
		id:        id.String(),
		orderID:   o.id,
		status:    status,
		createdAt: at,
	}
	o.statusChanges = append(o.statusChanges, sc)
	o.pendingStatusChanges = append(o.pendingStatusChanges, sc)
	return nil
}

// ============================================================================
// State Change Methods - Domain Behavior
// ============================================================================

// TransitionTo moves the order to a new status.
// Rejects transitions missing from the validity table (Delivered and
// Cancelled are terminal) and transitions on soft-deleted orders. On
// success the status is updated, the actor and time are stamped and a
// history entry is appended. Compensating side effects (restock on
// cancellation, sold-count accrual on delivery) belong to the workflow
// service, not the aggregate.
func (o *Order) TransitionTo(target Status, actor string) error {
	if o.deleted {
		return NewOrderNotFoundError(o.id)
	}
	if !CanTransition(o.status, target) {
		return NewInvalidStateTransitionError(o.status, target)
	}

	now := time.Now()
	o.status = target
	o.updatedAt = now
	o.updatedBy = actor
	if err := o.appendStatusChange(target, now); err != nil {
		return err
	}

	switch target {
	case StatusCancelled:
		o.events = append(o.events, NewOrderCancelledEvent(o.id, o.cancelReasonID))
	case StatusDelivered:
		o.events = append(o.events, NewOrderDeliveredEvent(o.id))
	case StatusPaymentFailed:
		o.events = append(o.events, NewOrderPaymentFailedEvent(o.id))
	}
	return nil
}

// AttachCancelReason links a cancellation reason to the order.
// Call before transitioning to Cancelled so the cancelled event carries it.
func (o *Order) AttachCancelReason(reasonID string) {
	o.cancelReasonID = reasonID
}

// ChangePaymentMethod swaps the payment method while the order is still
// awaiting payment. Switching to a cash-on-delivery method additionally
// forces the order into Processing, with its own history entry.
func (o *Order) ChangePaymentMethod(pm *checkout.PaymentMethod, actor string) error {
	if o.deleted {
		return NewOrderNotFoundError(o.id)
	}
	if o.status != StatusAwaitingPayment {
		return ErrPaymentMethodLocked
	}

	o.paymentMethodID = pm.ID
	o.paymentKind = pm.Kind
	o.updatedAt = time.Now()
	o.updatedBy = actor

	if pm.Kind == checkout.PaymentKindCOD {
		return o.TransitionTo(StatusProcessing, actor)
	}
	return nil
}

// IncrementVersionForSave Increments the version after successful persistence.
// Called by the repository after a successful save; optimistic locking uses
// the version read from the database until then.
func (o *Order) IncrementVersionForSave() {
	o.version++
}

// ============================================================================
// Reconstruction - For Repository Layer Use Only
// ============================================================================

// ReconstructionDTO Order reconstruction data transfer object.
// Limited to repository usage, for rebuilding the aggregate from storage
// without exposing setters.
type ReconstructionDTO struct {
	ID              string
	UserID          string
	AddressID       string
	PaymentMethodID string
	PaymentKind     checkout.PaymentKind
	VoucherID       string
	CancelReasonID  string
	Details         []Detail
	StatusChanges   []StatusChange
	TotalAmount     shared.Money
	Status          Status
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	UpdatedBy       string
	Deleted         bool
}

// RebuildFromDTO Reconstruct Order aggregate root from DTO.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:              dto.ID,
		userID:          dto.UserID,
		addressID:       dto.AddressID,
		paymentMethodID: dto.PaymentMethodID,
		paymentKind:     dto.PaymentKind,
		voucherID:       dto.VoucherID,
		cancelReasonID:  dto.CancelReasonID,
		details:         dto.Details,
		statusChanges:   dto.StatusChanges,
		totalAmount:     dto.TotalAmount,
		status:          dto.Status,
		version:         dto.Version,
		createdAt:       dto.CreatedAt,
		updatedAt:       dto.UpdatedAt,
		updatedBy:       dto.UpdatedBy,
		deleted:         dto.Deleted,
		events:          nil,
		isNew:           false,
	}
}

// DetailReconstructionDTO Order detail reconstruction data transfer object
type DetailReconstructionDTO struct {
	ID            string
	ProductItemID string
	Quantity      int
	UnitPrice     shared.Money
	Subtotal      shared.Money
}

// RebuildDetailFromDTO Rebuild Detail from DTO
func RebuildDetailFromDTO(dto DetailReconstructionDTO) Detail {
	return Detail{
		id:            dto.ID,
		productItemID: dto.ProductItemID,
		quantity:      dto.Quantity,
		unitPrice:     dto.UnitPrice,
		subtotal:      dto.Subtotal,
	}
}

// StatusChangeReconstructionDTO Status history reconstruction DTO
type StatusChangeReconstructionDTO struct {
	ID        string
	OrderID   string
	Status    Status
	CreatedAt time.Time
}

// RebuildStatusChangeFromDTO Rebuild StatusChange from DTO
func RebuildStatusChangeFromDTO(dto StatusChangeReconstructionDTO) StatusChange {
	return StatusChange{
		id:        dto.ID,
		orderID:   dto.OrderID,
		status:    dto.Status,
		createdAt: dto.CreatedAt,
	}
}

// ============================================================================
// Getters - Read-only Accessors
// ============================================================================

func (o *Order) ID() string                        { return o.id }
func (o *Order) UserID() string                    { return o.userID }
func (o *Order) AddressID() string                 { return o.addressID }
func (o *Order) PaymentMethodID() string           { return o.paymentMethodID }
func (o *Order) PaymentKind() checkout.PaymentKind { return o.paymentKind }
func (o *Order) VoucherID() string                 { return o.voucherID }
func (o *Order) CancelReasonID() string            { return o.cancelReasonID }
func (o *Order) TotalAmount() shared.Money         { return o.totalAmount }
func (o *Order) Status() Status                    { return o.status }
func (o *Order) Version() int                      { return o.version }
func (o *Order) CreatedAt() time.Time              { return o.createdAt }
func (o *Order) UpdatedAt() time.Time              { return o.updatedAt }
func (o *Order) UpdatedBy() string                 { return o.updatedBy }
func (o *Order) Deleted() bool                     { return o.deleted }

// Details Return copy of order details, preserving encapsulation.
func (o *Order) Details() []Detail {
	details := make([]Detail, len(o.details))
	copy(details, o.details)
	return details
}

// StatusHistory Return copy of the status history, oldest first.
func (o *Order) StatusHistory() []StatusChange {
	history := make([]StatusChange, len(o.statusChanges))
	copy(history, o.statusChanges)
	return history
}

// LatestStatusChange returns the most recent history entry, if any.
func (o *Order) LatestStatusChange() (StatusChange, bool) {
	if len(o.statusChanges) == 0 {
		return StatusChange{}, false
	}
	return o.statusChanges[len(o.statusChanges)-1], true
}

// ============================================================================
// Dirty Tracking - For Repository Layer Use Only
// ============================================================================

// IsNew Returns true if this aggregate was newly created (not loaded from DB)
func (o *Order) IsNew() bool { return o.isNew }

// PendingStatusChanges Returns history entries appended since the aggregate
// was loaded. The repository inserts exactly these; earlier entries are
// already persisted and must never be rewritten.
func (o *Order) PendingStatusChanges() []StatusChange {
	pending := make([]StatusChange, len(o.pendingStatusChanges))
	copy(pending, o.pendingStatusChanges)
	return pending
}

// ClearDirtyTracking Clears dirty tracking state after a successful save.
func (o *Order) ClearDirtyTracking() {
	o.pendingStatusChanges = nil
	o.isNew = false
}

// PullEvents Get and clear the aggregate's recorded domain events.
func (o *Order) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(o.events))
	copy(events, o.events)
	o.events = make([]shared.DomainEvent, 0)
	return events
}

// Detail Getters - Allow reading but no external modification

func (d Detail) ID() string               { return d.id }
func (d Detail) ProductItemID() string    { return d.productItemID }
func (d Detail) Quantity() int            { return d.quantity }
func (d Detail) UnitPrice() shared.Money  { return d.unitPrice }
func (d Detail) Subtotal() shared.Money   { return d.subtotal }

// StatusChange Getters

func (sc StatusChange) ID() string           { return sc.id }
func (sc StatusChange) OrderID() string      { return sc.orderID }
func (sc StatusChange) Status() Status       { return sc.status }
func (sc StatusChange) CreatedAt() time.Time { return sc.createdAt }

// Compile-time check that Order implements AggregateRoot
var _ shared.AggregateRoot = (*Order)(nil)
