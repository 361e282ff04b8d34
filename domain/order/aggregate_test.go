package order

import (
	"errors"
	"testing"

	"orderflow/domain/checkout"
	"orderflow/domain/shared"
)

func newTestOptions() PostOptions {
	return PostOptions{
		UserID:          "user-1",
		AddressID:       "addr-1",
		PaymentMethodID: "pm-gateway",
		PaymentKind:     checkout.PaymentKindGateway,
		Actor:           "user-1",
		Details: []DetailRequest{
			{ProductItemID: "item-1", Quantity: 2, UnitPrice: shared.VND(100000)},
			{ProductItemID: "item-2", Quantity: 1, UnitPrice: shared.VND(50000)},
		},
	}
}

func TestNewOrderComputesTotals(t *testing.T) {
	o, err := NewOrder(newTestOptions())
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}

	if o.ID() == "" {
		t.Error("Expected a generated order ID")
	}
	if got := o.TotalAmount().Amount(); got != 250000 {
		t.Errorf("Expected total 250000, got %d", got)
	}
	if o.Version() != 0 {
		t.Errorf("Expected new order version 0, got %d", o.Version())
	}
	if !o.IsNew() {
		t.Error("Expected freshly created order to be marked new")
	}

	details := o.Details()
	if len(details) != 2 {
		t.Fatalf("Expected 2 details, got %d", len(details))
	}
	if got := details[0].Subtotal().Amount(); got != 200000 {
		t.Errorf("Expected first line subtotal 200000, got %d", got)
	}
	if details[0].ID() == "" {
		t.Error("Expected generated detail ID")
	}

	t.Log("✓ Order creation totals tests passed")
}

func TestNewOrderAppliesVoucherDiscount(t *testing.T) {
	opts := newTestOptions()
	opts.Details = []DetailRequest{
		{ProductItemID: "item-1", Quantity: 2, UnitPrice: shared.VND(100000)},
	}
	opts.VoucherID = "voucher-1"
	opts.DiscountRate = 10

	o, err := NewOrder(opts)
	if err != nil {
		t.Fatalf("Failed to create order with voucher: %v", err)
	}
	if got := o.TotalAmount().Amount(); got != 180000 {
		t.Errorf("Expected discounted total 180000, got %d", got)
	}
	if o.VoucherID() != "voucher-1" {
		t.Errorf("Expected recorded voucher ID, got %q", o.VoucherID())
	}

	t.Log("✓ Voucher discount tests passed")
}

func TestNewOrderInitialHistory(t *testing.T) {
	// Gateway payment waits for the outcome
	o, err := NewOrder(newTestOptions())
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}
	if o.Status() != StatusAwaitingPayment {
		t.Errorf("Expected AWAITING_PAYMENT, got %s", o.Status())
	}

	history := o.StatusHistory()
	if len(history) != 1 {
		t.Fatalf("Expected one history entry, got %d", len(history))
	}
	if history[0].Status() != StatusAwaitingPayment {
		t.Errorf("Expected first history entry AWAITING_PAYMENT, got %s", history[0].Status())
	}
	if history[0].OrderID() != o.ID() {
		t.Error("Expected history entry to reference the order")
	}

	// COD skips the payment wait
	opts := newTestOptions()
	opts.PaymentMethodID = "pm-cod"
	opts.PaymentKind = checkout.PaymentKindCOD
	cod, err := NewOrder(opts)
	if err != nil {
		t.Fatalf("Failed to create COD order: %v", err)
	}
	if cod.Status() != StatusProcessing {
		t.Errorf("Expected COD order to start in PROCESSING, got %s", cod.Status())
	}

	t.Log("✓ Initial history tests passed")
}

func TestNewOrderValidation(t *testing.T) {
	opts := newTestOptions()
	opts.UserID = ""
	if _, err := NewOrder(opts); err == nil {
		t.Error("Expected error for missing user ID")
	}

	opts = newTestOptions()
	opts.Details = nil
	if _, err := NewOrder(opts); !errors.Is(err, ErrEmptyOrderItems) {
		t.Errorf("Expected ErrEmptyOrderItems, got %v", err)
	}

	opts = newTestOptions()
	opts.Details[0].Quantity = 0
	if _, err := NewOrder(opts); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("Expected ErrInvalidQuantity, got %v", err)
	}

	opts = newTestOptions()
	opts.Details = []DetailRequest{
		{ProductItemID: "item-1", Quantity: 1, UnitPrice: shared.VND(0)},
	}
	if _, err := NewOrder(opts); !errors.Is(err, ErrTotalNotPositive) {
		t.Errorf("Expected ErrTotalNotPositive, got %v", err)
	}

	// A full discount brings the total to zero, which is rejected
	opts = newTestOptions()
	opts.VoucherID = "voucher-free"
	opts.DiscountRate = 100
	if _, err := NewOrder(opts); !errors.Is(err, ErrTotalNotPositive) {
		t.Errorf("Expected ErrTotalNotPositive on 100%% discount, got %v", err)
	}

	// Out-of-range rates are rejected by the shared discount formula
	opts = newTestOptions()
	opts.VoucherID = "voucher-bad"
	opts.DiscountRate = -5
	if _, err := NewOrder(opts); !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("Expected validation error on negative discount rate, got %v", err)
	}
	opts.DiscountRate = 101
	if _, err := NewOrder(opts); !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("Expected validation error on rate above 100, got %v", err)
	}

	t.Log("✓ Order creation validation tests passed")
}

func TestTransitionTo(t *testing.T) {
	o, err := NewOrder(newTestOptions())
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}

	if err := o.TransitionTo(StatusProcessing, "payment-gateway"); err != nil {
		t.Fatalf("Failed valid transition: %v", err)
	}
	if o.Status() != StatusProcessing {
		t.Errorf("Expected PROCESSING, got %s", o.Status())
	}
	if o.UpdatedBy() != "payment-gateway" {
		t.Errorf("Expected actor stamp, got %q", o.UpdatedBy())
	}

	history := o.StatusHistory()
	if len(history) != 2 {
		t.Fatalf("Expected 2 history entries, got %d", len(history))
	}
	if latest, ok := o.LatestStatusChange(); !ok || latest.Status() != o.Status() {
		t.Error("Expected latest history entry to match current status")
	}

	// Invalid transition leaves the order untouched
	if err := o.TransitionTo(StatusAwaitingPayment, "user-1"); !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("Expected ErrInvalidStateTransition, got %v", err)
	}
	if o.Status() != StatusProcessing {
		t.Error("Expected status unchanged after rejected transition")
	}
	if len(o.StatusHistory()) != 2 {
		t.Error("Expected no history entry after rejected transition")
	}

	// Terminal state rejects everything
	if err := o.TransitionTo(StatusDelivered, "admin"); err != nil {
		t.Fatalf("Failed to deliver order: %v", err)
	}
	if err := o.TransitionTo(StatusCancelled, "user-1"); !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("Expected terminal state to reject transitions, got %v", err)
	}

	t.Log("✓ Status transition tests passed")
}

func TestTransitionOnDeletedOrder(t *testing.T) {
	o, err := NewOrder(newTestOptions())
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}

	deleted := RebuildFromDTO(ReconstructionDTO{
		ID:              o.ID(),
		UserID:          o.UserID(),
		AddressID:       o.AddressID(),
		PaymentMethodID: o.PaymentMethodID(),
		PaymentKind:     o.PaymentKind(),
		TotalAmount:     o.TotalAmount(),
		Status:          StatusAwaitingPayment,
		Deleted:         true,
	})
	if err := deleted.TransitionTo(StatusProcessing, "admin"); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("Expected ErrOrderNotFound on deleted order, got %v", err)
	}

	t.Log("✓ Deleted order transition tests passed")
}

func TestChangePaymentMethod(t *testing.T) {
	o, err := NewOrder(newTestOptions())
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}

	gateway := &checkout.PaymentMethod{ID: "pm-other", Name: "Other Gateway", Kind: checkout.PaymentKindGateway}
	if err := o.ChangePaymentMethod(gateway, "user-1"); err != nil {
		t.Fatalf("Failed to change payment method: %v", err)
	}
	if o.PaymentMethodID() != "pm-other" {
		t.Errorf("Expected payment method pm-other, got %s", o.PaymentMethodID())
	}
	if o.Status() != StatusAwaitingPayment {
		t.Errorf("Expected status to stay AWAITING_PAYMENT, got %s", o.Status())
	}

	// Switching to COD moves the order into fulfillment
	cod := &checkout.PaymentMethod{ID: "pm-cod", Name: "Cash on Delivery", Kind: checkout.PaymentKindCOD}
	if err := o.ChangePaymentMethod(cod, "user-1"); err != nil {
		t.Fatalf("Failed to switch to COD: %v", err)
	}
	if o.Status() != StatusProcessing {
		t.Errorf("Expected PROCESSING after COD switch, got %s", o.Status())
	}
	if latest, ok := o.LatestStatusChange(); !ok || latest.Status() != StatusProcessing {
		t.Error("Expected history entry for the COD switch")
	}

	// Once fulfillment started the method is locked
	if err := o.ChangePaymentMethod(gateway, "user-1"); !errors.Is(err, ErrPaymentMethodLocked) {
		t.Errorf("Expected ErrPaymentMethodLocked, got %v", err)
	}

	t.Log("✓ Payment method change tests passed")
}

func TestDirtyTracking(t *testing.T) {
	o, err := NewOrder(newTestOptions())
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}

	if got := len(o.PendingStatusChanges()); got != 1 {
		t.Errorf("Expected 1 pending history entry after creation, got %d", got)
	}

	o.ClearDirtyTracking()
	if o.IsNew() {
		t.Error("Expected order to no longer be new after save")
	}
	if got := len(o.PendingStatusChanges()); got != 0 {
		t.Errorf("Expected no pending entries after save, got %d", got)
	}

	if err := o.TransitionTo(StatusProcessing, "payment-gateway"); err != nil {
		t.Fatalf("Failed to transition: %v", err)
	}
	pending := o.PendingStatusChanges()
	if len(pending) != 1 {
		t.Fatalf("Expected 1 pending entry after transition, got %d", len(pending))
	}
	if pending[0].Status() != StatusProcessing {
		t.Errorf("Expected pending PROCESSING entry, got %s", pending[0].Status())
	}
	if got := len(o.StatusHistory()); got != 2 {
		t.Errorf("Expected full history to keep 2 entries, got %d", got)
	}

	t.Log("✓ Dirty tracking tests passed")
}

func TestPullEvents(t *testing.T) {
	o, err := NewOrder(newTestOptions())
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}

	events := o.PullEvents()
	if len(events) != 1 {
		t.Fatalf("Expected 1 event after creation, got %d", len(events))
	}
	if events[0].EventName() != "order.placed" {
		t.Errorf("Expected order.placed, got %s", events[0].EventName())
	}
	if events[0].GetAggregateID() != o.ID() {
		t.Error("Expected event to carry the order ID")
	}

	// Pulling drains the buffer
	if got := len(o.PullEvents()); got != 0 {
		t.Errorf("Expected drained event buffer, got %d events", got)
	}

	o.AttachCancelReason("reason-1")
	if err := o.TransitionTo(StatusCancelled, "user-1"); err != nil {
		t.Fatalf("Failed to cancel: %v", err)
	}
	events = o.PullEvents()
	if len(events) != 1 || events[0].EventName() != "order.cancelled" {
		t.Fatalf("Expected a single cancelled event, got %v", events)
	}

	t.Log("✓ Domain event tests passed")
}

func TestVersionBookkeeping(t *testing.T) {
	o, err := NewOrder(newTestOptions())
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}

	o.IncrementVersionForSave()
	if o.Version() != 1 {
		t.Errorf("Expected version 1 after save, got %d", o.Version())
	}

	rebuilt := RebuildFromDTO(ReconstructionDTO{
		ID:          o.ID(),
		UserID:      o.UserID(),
		TotalAmount: o.TotalAmount(),
		Status:      o.Status(),
		Version:     5,
	})
	if rebuilt.Version() != 5 {
		t.Errorf("Expected rebuilt version 5, got %d", rebuilt.Version())
	}
	if rebuilt.IsNew() {
		t.Error("Expected rebuilt aggregate to not be new")
	}

	t.Log("✓ Version bookkeeping tests passed")
}
