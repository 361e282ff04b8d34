package report_test

import (
	"context"
	"testing"

	orderapp "orderflow/application/order"
	"orderflow/application/report"
	"orderflow/domain/cancellation"
	"orderflow/domain/checkout"
	"orderflow/domain/inventory"
	"orderflow/domain/order"
	"orderflow/domain/shared"
	"orderflow/domain/user"
	"orderflow/infrastructure/persistence/memory"
)

// reportEnv drives the workflow service to build real order data, then
// reads it back through the reporting service.
type reportEnv struct {
	store    *memory.Store
	workflow *orderapp.ApplicationService
	reports  *report.Service
}

func newReportEnv() *reportEnv {
	store := memory.NewStore()

	workflow := orderapp.NewApplicationService(orderapp.Dependencies{
		OrderRepo:         memory.NewOrderRepository(store),
		UserRepo:          memory.NewUserRepository(store),
		AddressRepo:       memory.NewAddressRepository(store),
		PaymentRepo:       memory.NewPaymentMethodRepository(store),
		CartRepo:          memory.NewCartRepository(store),
		VoucherRepo:       memory.NewVoucherRepository(store),
		ReasonRepo:        memory.NewCancelReasonRepository(store),
		Ledger:            inventory.NewLedger(memory.NewInventoryRepository(store)),
		UnitOfWorkFactory: memory.NewUnitOfWorkFactory(store),
	})

	store.AddUser(user.User{ID: "user-1", Name: "Alice", Active: true})
	store.AddAddress(checkout.Address{ID: "addr-1", UserID: "user-1", Line: "12 Hang Bac, Hanoi"})
	store.AddPaymentMethod(checkout.PaymentMethod{ID: "pm-cod", Name: "Cash on Delivery", Kind: checkout.PaymentKindCOD})
	store.AddProduct("prod-1", "Keyboard")
	store.AddProductItem(inventory.ProductItem{
		ID:              "item-1",
		ProductID:       "prod-1",
		QuantityInStock: 20,
		UnitPrice:       shared.VND(100000),
		PurchasePrice:   shared.VND(60000),
	})
	store.AddCancelReason(cancellation.CancelReason{ID: "reason-1", Description: "Changed my mind", RefundRate: 80})

	return &reportEnv{
		store:    store,
		workflow: workflow,
		reports:  report.NewService(memory.NewReportQuery(store)),
	}
}

// placeOrder creates a COD order of the given quantity and returns its ID.
func (e *reportEnv) placeOrder(t *testing.T, quantity int) string {
	t.Helper()
	resp, err := e.workflow.CreateOrder(context.Background(), orderapp.CreateOrderRequest{
		UserID:          "user-1",
		AddressID:       "addr-1",
		PaymentMethodID: "pm-cod",
		Items:           []orderapp.LineItemRequest{{ProductItemID: "item-1", Quantity: quantity}},
	})
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}
	return resp.ID
}

func (e *reportEnv) moveTo(t *testing.T, orderID string, target order.Status, reasonID string) {
	t.Helper()
	err := e.workflow.UpdateStatus(context.Background(), orderapp.UpdateOrderStatusRequest{
		OrderID:        orderID,
		Status:         string(target),
		Actor:          "admin",
		CancelReasonID: reasonID,
	})
	if err != nil {
		t.Fatalf("Failed to move order to %s: %v", target, err)
	}
}

func TestCancelledOrdersReport(t *testing.T) {
	env := newReportEnv()
	ctx := context.Background()

	cancelled := env.placeOrder(t, 2) // total 200000
	env.moveTo(t, cancelled, order.StatusCancelled, "reason-1")

	noReason := env.placeOrder(t, 1) // total 100000
	env.moveTo(t, noReason, order.StatusCancelled, "")

	// A still-processing order stays out of the report
	env.placeOrder(t, 1)

	rows, err := env.reports.CancelledOrders(ctx)
	if err != nil {
		t.Fatalf("Failed to list cancelled orders: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 cancelled rows, got %d", len(rows))
	}

	byID := make(map[string]report.CancelledOrderRow, len(rows))
	for _, row := range rows {
		byID[row.OrderID] = row
	}

	withReason, ok := byID[cancelled]
	if !ok {
		t.Fatalf("Expected row for cancelled order %s", cancelled)
	}
	if withReason.CustomerName != "Alice" {
		t.Errorf("Expected customer name Alice, got %q", withReason.CustomerName)
	}
	if withReason.Total.Amount != 200000 {
		t.Errorf("Expected total 200000, got %d", withReason.Total.Amount)
	}
	if withReason.RefundReason != "Changed my mind" || withReason.RefundRate != 80 {
		t.Errorf("Expected reason with 80%% rate, got %q %d%%", withReason.RefundReason, withReason.RefundRate)
	}
	// 80% of 200000
	if withReason.RefundAmount.Amount != 160000 {
		t.Errorf("Expected refund 160000, got %d", withReason.RefundAmount.Amount)
	}
	if withReason.RefundTime.IsZero() {
		t.Error("Expected refund time from the Cancelled history entry")
	}

	bare, ok := byID[noReason]
	if !ok {
		t.Fatalf("Expected row for cancelled order %s", noReason)
	}
	if bare.RefundReason != "" || bare.RefundRate != 0 {
		t.Errorf("Expected zero-valued reason fields, got %q %d%%", bare.RefundReason, bare.RefundRate)
	}
	if bare.RefundAmount.Amount != 0 {
		t.Errorf("Expected zero refund without a reason, got %d", bare.RefundAmount.Amount)
	}

	t.Log("✓ Cancelled orders report tests passed")
}

func TestFinancialSummary(t *testing.T) {
	env := newReportEnv()
	ctx := context.Background()

	// Two delivered orders: 2 and 3 units at 100000 revenue / 60000 cost each
	first := env.placeOrder(t, 2)
	env.moveTo(t, first, order.StatusDelivered, "")
	second := env.placeOrder(t, 3)
	env.moveTo(t, second, order.StatusDelivered, "")

	// One cancelled order of 1 unit with an 80% refund
	third := env.placeOrder(t, 1)
	env.moveTo(t, third, order.StatusCancelled, "reason-1")

	// One still processing, excluded from every aggregate
	env.placeOrder(t, 1)

	summary, err := env.reports.Summary(ctx)
	if err != nil {
		t.Fatalf("Failed to build financial summary: %v", err)
	}

	if summary.DeliveredOrders != 2 {
		t.Errorf("Expected 2 delivered orders, got %d", summary.DeliveredOrders)
	}
	if summary.Revenue.Amount != 500000 {
		t.Errorf("Expected revenue 500000, got %d", summary.Revenue.Amount)
	}
	if summary.Cost.Amount != 300000 {
		t.Errorf("Expected cost 300000, got %d", summary.Cost.Amount)
	}
	if summary.Profit.Amount != 200000 {
		t.Errorf("Expected profit 200000, got %d", summary.Profit.Amount)
	}
	if summary.CancelledOrders != 1 {
		t.Errorf("Expected 1 cancelled order, got %d", summary.CancelledOrders)
	}
	if summary.Refunds.Amount != 80000 {
		t.Errorf("Expected refunds 80000, got %d", summary.Refunds.Amount)
	}
	if summary.Revenue.Currency != shared.DefaultCurrency {
		t.Errorf("Expected currency %s, got %s", shared.DefaultCurrency, summary.Revenue.Currency)
	}

	t.Log("✓ Financial summary tests passed")
}

func TestEmptyReports(t *testing.T) {
	env := newReportEnv()
	ctx := context.Background()

	rows, err := env.reports.CancelledOrders(ctx)
	if err != nil {
		t.Fatalf("Failed to list cancelled orders: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected no rows on empty data, got %d", len(rows))
	}

	summary, err := env.reports.Summary(ctx)
	if err != nil {
		t.Fatalf("Failed to build summary: %v", err)
	}
	if summary.DeliveredOrders != 0 || summary.Revenue.Amount != 0 || summary.Refunds.Amount != 0 {
		t.Errorf("Expected zero-valued summary, got %+v", summary)
	}

	t.Log("✓ Empty report tests passed")
}
