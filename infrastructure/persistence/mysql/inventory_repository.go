package mysql

import (
	"context"
	"errors"

	"orderflow/domain/inventory"
	"orderflow/infrastructure/persistence"
	"orderflow/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// InventoryRepository MySQL/GORM implementation of the stock ledger storage.
// Stock mutations are single conditional UPDATEs so the availability check
// and the decrement can never be split by a concurrent transaction.
type InventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository Create inventory repository
func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindItem Find product item by ID
func (r *InventoryRepository) FindItem(ctx context.Context, id string) (*inventory.ProductItem, error) {
	var itemPO po.ProductItemPO
	result := r.getDB(ctx).First(&itemPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, inventory.NewItemNotFoundError(id)
		}
		return nil, result.Error
	}
	return itemPO.ToDomain(), nil
}

// DecrementStock atomic check-and-decrement:
// UPDATE product_items SET quantity_in_stock = quantity_in_stock - ?
// WHERE id = ? AND quantity_in_stock >= ?
func (r *InventoryRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	db := r.getDB(ctx)

	result := db.Model(&po.ProductItemPO{}).
		Where("id = ? AND quantity_in_stock >= ?", id, quantity).
		Update("quantity_in_stock", gorm.Expr("quantity_in_stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Missing row and exhausted stock both land here; the follow-up
		// read tells them apart.
		var count int64
		if err := db.Model(&po.ProductItemPO{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return inventory.NewItemNotFoundError(id)
		}
		return inventory.NewInsufficientStockError(id, quantity)
	}
	return nil
}

// IncrementStock returns previously reserved stock
func (r *InventoryRepository) IncrementStock(ctx context.Context, id string, quantity int) error {
	result := r.getDB(ctx).Model(&po.ProductItemPO{}).
		Where("id = ?", id).
		Update("quantity_in_stock", gorm.Expr("quantity_in_stock + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return inventory.NewItemNotFoundError(id)
	}
	return nil
}

// IncrementSoldCount bumps the owning product's aggregate sold counter
func (r *InventoryRepository) IncrementSoldCount(ctx context.Context, productID string, quantity int) error {
	result := r.getDB(ctx).Model(&po.ProductPO{}).
		Where("id = ?", productID).
		Update("sold_count", gorm.Expr("sold_count + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return inventory.NewItemNotFoundError(productID)
	}
	return nil
}

// Compile-time interface implementation check
var _ inventory.Repository = (*InventoryRepository)(nil)
