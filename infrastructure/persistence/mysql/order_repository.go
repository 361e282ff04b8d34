package mysql

import (
	"context"
	"errors"

	"orderflow/domain/order"
	"orderflow/infrastructure/persistence"
	"orderflow/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// OrderRepository MySQL/GORM implementation of order repository
// DDD principle: Repository is only responsible for persistence of aggregate roots, not event publishing
// GORM usage specification: Association features are prohibited to maintain DDD aggregate boundaries
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository Create order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save Save order (create or update)
// Note: Manually manage saving of order, details and status history, do not use GORM associations
// Details are insert-only; history rows are append-only. Updates carry the
// optimistic lock guard: UPDATE ... WHERE id = ? AND version = ?, failing
// with ErrConcurrentModification when no row matches.
// When called within UoW.Execute(), it uses the transaction from context
// When called standalone, it creates its own transaction for atomicity
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, o)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, o)
	})
}

// saveWithTx performs the actual save operations within a transaction
func (r *OrderRepository) saveWithTx(tx *gorm.DB, o *order.Order) error {
	orderPO, detailPOs := po.FromOrderDomain(o)

	switch {
	case o.IsNew():
		if err := tx.Create(orderPO).Error; err != nil {
			return err
		}
		if len(detailPOs) > 0 {
			if err := tx.Create(&detailPOs).Error; err != nil {
				return err
			}
		}
	default:
		// Version-guarded update; the stored version was read at load
		// time, so zero affected rows means another transaction won.
		result := tx.Model(&po.OrderPO{}).
			Where("id = ? AND version = ?", o.ID(), o.Version()).
			Updates(map[string]interface{}{
				"status":            orderPO.Status,
				"payment_method_id": orderPO.PaymentMethodID,
				"payment_kind":      orderPO.PaymentKind,
				"cancel_reason_id":  orderPO.CancelReasonID,
				"deleted":           orderPO.Deleted,
				"updated_at":        orderPO.UpdatedAt,
				"updated_by":        orderPO.UpdatedBy,
				"version":           o.Version() + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return order.NewConcurrentModificationError(o.ID())
		}
		// Keep the in-memory version in step with the stored one
		o.IncrementVersionForSave()
	}

	// Insert only the history entries appended in this session
	pending := po.FromStatusChangeDomain(o.PendingStatusChanges())
	if len(pending) > 0 {
		if err := tx.Create(&pending).Error; err != nil {
			return err
		}
	}

	o.ClearDirtyTracking()
	return nil
}

// FindByID Find order by ID
// Soft-deleted orders are reported as not found.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	db := r.getDB(ctx)
	var orderPO po.OrderPO

	result := db.First(&orderPO, "id = ? AND deleted = ?", id, false)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, result.Error
	}

	return r.loadAggregate(db, &orderPO)
}

// FindByUserID Find order list by user ID, newest first
func (r *OrderRepository) FindByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	db := r.getDB(ctx)
	var orderPOs []po.OrderPO

	if err := db.Where("user_id = ? AND deleted = ?", userID, false).
		Order("created_at DESC").
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, len(orderPOs))
	for i := range orderPOs {
		o, err := r.loadAggregate(db, &orderPOs[i])
		if err != nil {
			return nil, err
		}
		orders[i] = o
	}

	return orders, nil
}

// loadAggregate queries details and status history for an order row.
// Manual queries, no Preload, to keep aggregate boundaries clear.
func (r *OrderRepository) loadAggregate(db *gorm.DB, orderPO *po.OrderPO) (*order.Order, error) {
	var detailPOs []po.OrderDetailPO
	if err := db.Where("order_id = ?", orderPO.ID).Find(&detailPOs).Error; err != nil {
		return nil, err
	}

	var changePOs []po.StatusChangePO
	if err := db.Where("order_id = ?", orderPO.ID).
		Order("created_at ASC").
		Find(&changePOs).Error; err != nil {
		return nil, err
	}

	return orderPO.ToDomain(detailPOs, changePOs), nil
}

// Compile-time interface implementation check
var _ order.Repository = (*OrderRepository)(nil)
