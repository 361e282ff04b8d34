package memory

import (
	"context"
	"sort"

	"orderflow/domain/order"
)

// OrderRepository in-memory order storage.
// Aggregates are stored as reconstruction DTOs so reloading always yields
// an independent aggregate instance, like a real row round trip.
type OrderRepository struct {
	store *Store
}

// NewOrderRepository Create in-memory order repository
func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func dtoFromAggregate(o *order.Order) order.ReconstructionDTO {
	return order.ReconstructionDTO{
		ID:              o.ID(),
		UserID:          o.UserID(),
		AddressID:       o.AddressID(),
		PaymentMethodID: o.PaymentMethodID(),
		PaymentKind:     o.PaymentKind(),
		VoucherID:       o.VoucherID(),
		CancelReasonID:  o.CancelReasonID(),
		Details:         o.Details(),
		StatusChanges:   o.StatusHistory(),
		TotalAmount:     o.TotalAmount(),
		Status:          o.Status(),
		Version:         o.Version(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		UpdatedBy:       o.UpdatedBy(),
		Deleted:         o.Deleted(),
	}
}

// Save persists the aggregate with the same optimistic lock semantics as
// the SQL repository: updating a stale version fails with
// ErrConcurrentModification.
func (r *OrderRepository) Save(_ context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, exists := r.store.orders[o.ID()]
	if o.IsNew() {
		if exists {
			return order.NewConcurrentModificationError(o.ID())
		}
		r.store.orders[o.ID()] = dtoFromAggregate(o)
	} else {
		if !exists || stored.Version != o.Version() {
			return order.NewConcurrentModificationError(o.ID())
		}
		dto := dtoFromAggregate(o)
		dto.Version = o.Version() + 1
		r.store.orders[o.ID()] = dto
		o.IncrementVersionForSave()
	}

	o.ClearDirtyTracking()
	return nil
}

// FindByID loads the aggregate; soft-deleted orders are not found.
func (r *OrderRepository) FindByID(_ context.Context, id string) (*order.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	dto, ok := r.store.orders[id]
	if !ok || dto.Deleted {
		return nil, order.NewOrderNotFoundError(id)
	}
	return order.RebuildFromDTO(dto), nil
}

// FindByUserID lists a user's orders, newest first.
func (r *OrderRepository) FindByUserID(_ context.Context, userID string) ([]*order.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var orders []*order.Order
	for _, dto := range r.store.orders {
		if dto.UserID == userID && !dto.Deleted {
			orders = append(orders, order.RebuildFromDTO(dto))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt().After(orders[j].CreatedAt())
	})
	return orders, nil
}

// Compile-time interface implementation check
var _ order.Repository = (*OrderRepository)(nil)
