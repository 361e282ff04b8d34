// Package inventory owns per-item stock counts. The Ledger is the only
// writer of quantity_in_stock: creation reserves stock, cancellation
// releases it, delivery accrues the catalog-side sold counter. Stock can
// never go negative - the reserve path is a single conditional decrement,
// so two concurrent reservations cannot both pass the availability check.
package inventory

import (
	"context"

	"orderflow/domain/shared"
)

// ProductItem 库存单品读模型
type ProductItem struct {
	ID              string
	ProductID       string
	QuantityInStock int
	UnitPrice       shared.Money
	PurchasePrice   shared.Money
}

// Repository is the storage contract behind the Ledger.
type Repository interface {
	FindItem(ctx context.Context, id string) (*ProductItem, error)

	// DecrementStock atomically performs the check-and-decrement
	// (UPDATE ... WHERE quantity_in_stock >= qty). Returns
	// ErrInsufficientStock when the condition does not hold and
	// ErrItemNotFound when the item does not exist.
	DecrementStock(ctx context.Context, id string, quantity int) error

	// IncrementStock returns previously reserved stock.
	IncrementStock(ctx context.Context, id string, quantity int) error

	// IncrementSoldCount bumps the owning product's aggregate sold
	// counter. Catalog analytics, not inventory.
	IncrementSoldCount(ctx context.Context, productID string, quantity int) error
}

// Ledger exposes reserve/release over the repository.
type Ledger struct {
	repo Repository
}

// NewLedger 创建库存账本
func NewLedger(repo Repository) *Ledger {
	return &Ledger{repo: repo}
}

// Item resolves a product item read model.
func (l *Ledger) Item(ctx context.Context, itemID string) (*ProductItem, error) {
	return l.repo.FindItem(ctx, itemID)
}

// Reserve decrements stock to back an order line. Fails with
// ErrItemNotFound or ErrInsufficientStock; the caller's transaction must
// roll back every reservation made so far in the batch.
func (l *Ledger) Reserve(ctx context.Context, itemID string, quantity int) error {
	if quantity <= 0 {
		return shared.NewValidationError("product_item", "quantity", "quantity must be positive")
	}
	return l.repo.DecrementStock(ctx, itemID, quantity)
}

// Release increments stock on cancellation.
// No upper bound is enforced on the returned quantity.
func (l *Ledger) Release(ctx context.Context, itemID string, quantity int) error {
	if quantity <= 0 {
		return shared.NewValidationError("product_item", "quantity", "quantity must be positive")
	}
	return l.repo.IncrementStock(ctx, itemID, quantity)
}

// RecordSale accrues the sold counter of the product owning the item.
// Used on delivery; independent of stock.
func (l *Ledger) RecordSale(ctx context.Context, itemID string, quantity int) error {
	item, err := l.repo.FindItem(ctx, itemID)
	if err != nil {
		return err
	}
	return l.repo.IncrementSoldCount(ctx, item.ProductID, quantity)
}
