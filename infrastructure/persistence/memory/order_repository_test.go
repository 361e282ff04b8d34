package memory

import (
	"context"
	"errors"
	"testing"

	"orderflow/domain/checkout"
	"orderflow/domain/order"
	"orderflow/domain/shared"
)

func newStoredOrder(t *testing.T) (*OrderRepository, *order.Order) {
	t.Helper()
	repo := NewOrderRepository(NewStore())

	o, err := order.NewOrder(order.PostOptions{
		UserID:          "user-1",
		AddressID:       "addr-1",
		PaymentMethodID: "pm-gateway",
		PaymentKind:     checkout.PaymentKindGateway,
		Actor:           "user-1",
		Details: []order.DetailRequest{
			{ProductItemID: "item-1", Quantity: 1, UnitPrice: shared.VND(100000)},
		},
	})
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}
	if err := repo.Save(context.Background(), o); err != nil {
		t.Fatalf("Failed to save order: %v", err)
	}
	return repo, o
}

func TestSaveAndReload(t *testing.T) {
	repo, o := newStoredOrder(t)
	ctx := context.Background()

	if o.IsNew() {
		t.Error("Expected saved aggregate to no longer be new")
	}
	if o.Version() != 0 {
		t.Errorf("Expected version to stay 0 after create, got %d", o.Version())
	}

	loaded, err := repo.FindByID(ctx, o.ID())
	if err != nil {
		t.Fatalf("Failed to reload order: %v", err)
	}
	if loaded.Version() != 0 {
		t.Errorf("Expected stored version 0, got %d", loaded.Version())
	}
	if loaded.Status() != order.StatusAwaitingPayment {
		t.Errorf("Expected AWAITING_PAYMENT, got %s", loaded.Status())
	}
	if len(loaded.Details()) != 1 {
		t.Errorf("Expected 1 detail, got %d", len(loaded.Details()))
	}

	if _, err := repo.FindByID(ctx, "no-such-order"); !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("Expected ErrOrderNotFound, got %v", err)
	}

	t.Log("✓ Save and reload tests passed")
}

func TestSaveBumpsVersionOnUpdate(t *testing.T) {
	repo, o := newStoredOrder(t)
	ctx := context.Background()

	loaded, err := repo.FindByID(ctx, o.ID())
	if err != nil {
		t.Fatalf("Failed to reload order: %v", err)
	}
	if err := loaded.TransitionTo(order.StatusProcessing, "payment-gateway"); err != nil {
		t.Fatalf("Failed to transition: %v", err)
	}
	if err := repo.Save(ctx, loaded); err != nil {
		t.Fatalf("Failed to save update: %v", err)
	}

	// The in-memory aggregate tracks the bumped stored version
	if loaded.Version() != 1 {
		t.Errorf("Expected version 1 after update, got %d", loaded.Version())
	}
	reloaded, err := repo.FindByID(ctx, o.ID())
	if err != nil {
		t.Fatalf("Failed to reload order: %v", err)
	}
	if reloaded.Version() != 1 {
		t.Errorf("Expected stored version 1, got %d", reloaded.Version())
	}
	if reloaded.Status() != order.StatusProcessing {
		t.Errorf("Expected PROCESSING, got %s", reloaded.Status())
	}

	t.Log("✓ Version bump tests passed")
}

func TestSaveRejectsStaleVersion(t *testing.T) {
	repo, o := newStoredOrder(t)
	ctx := context.Background()

	// Two readers load the same version
	first, err := repo.FindByID(ctx, o.ID())
	if err != nil {
		t.Fatalf("Failed to load first copy: %v", err)
	}
	second, err := repo.FindByID(ctx, o.ID())
	if err != nil {
		t.Fatalf("Failed to load second copy: %v", err)
	}

	if err := first.TransitionTo(order.StatusProcessing, "payment-gateway"); err != nil {
		t.Fatalf("Failed to transition first copy: %v", err)
	}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Failed to save first copy: %v", err)
	}

	// The second writer now holds a stale version and must be rejected
	if err := second.TransitionTo(order.StatusCancelled, "user-1"); err != nil {
		t.Fatalf("Failed to transition second copy: %v", err)
	}
	if err := repo.Save(ctx, second); !errors.Is(err, order.ErrConcurrentModification) {
		t.Fatalf("Expected ErrConcurrentModification, got %v", err)
	}

	// The first writer's state won
	reloaded, err := repo.FindByID(ctx, o.ID())
	if err != nil {
		t.Fatalf("Failed to reload order: %v", err)
	}
	if reloaded.Status() != order.StatusProcessing {
		t.Errorf("Expected PROCESSING to win, got %s", reloaded.Status())
	}

	t.Log("✓ Stale version rejection tests passed")
}

func TestUnitOfWorkRollback(t *testing.T) {
	store := NewStore()
	repo := NewOrderRepository(store)
	uow := NewUnitOfWork(store)
	ctx := context.Background()

	boom := errors.New("boom")
	var savedID string
	err := uow.Execute(ctx, func(ctx context.Context) error {
		o, err := order.NewOrder(order.PostOptions{
			UserID:          "user-1",
			AddressID:       "addr-1",
			PaymentMethodID: "pm-cod",
			PaymentKind:     checkout.PaymentKindCOD,
			Actor:           "user-1",
			Details: []order.DetailRequest{
				{ProductItemID: "item-1", Quantity: 1, UnitPrice: shared.VND(100000)},
			},
		})
		if err != nil {
			return err
		}
		if err := repo.Save(ctx, o); err != nil {
			return err
		}
		savedID = o.ID()
		uow.RegisterNew(o)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected the wrapped error back, got %v", err)
	}

	// The save inside the failed unit of work was rolled back
	if _, err := repo.FindByID(ctx, savedID); !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("Expected rolled-back order to be gone, got %v", err)
	}
	if len(uow.ExecutedEvents) != 0 {
		t.Errorf("Expected no events from a failed unit of work, got %d", len(uow.ExecutedEvents))
	}

	t.Log("✓ Unit of work rollback tests passed")
}
