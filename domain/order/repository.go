package order

import "context"

// Repository Order repository interface.
// Save persists the aggregate together with its details and pending status
// history entries in the enclosing transaction; details are insert-only and
// history entries are append-only. Updates are guarded by the aggregate's
// version (optimistic locking) and must fail with
// ErrConcurrentModification on a version mismatch.
type Repository interface {
	Save(ctx context.Context, order *Order) error

	// FindByID loads the aggregate with its details and full status
	// history. Soft-deleted orders are treated as not found.
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindByUserID lists a user's orders, newest first.
	FindByUserID(ctx context.Context, userID string) ([]*Order, error)
}
