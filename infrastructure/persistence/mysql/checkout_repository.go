package mysql

import (
	"context"
	"errors"

	"orderflow/domain/checkout"
	"orderflow/domain/shared"
	"orderflow/infrastructure/persistence"
	"orderflow/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// AddressRepository MySQL/GORM implementation of the address read model
type AddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository Create address repository
func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

func (r *AddressRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByID Find address by ID
func (r *AddressRepository) FindByID(ctx context.Context, id string) (*checkout.Address, error) {
	var addressPO po.AddressPO
	result := r.getDB(ctx).First(&addressPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("address")
		}
		return nil, result.Error
	}
	return addressPO.ToDomain(), nil
}

var _ checkout.AddressRepository = (*AddressRepository)(nil)

// PaymentMethodRepository MySQL/GORM implementation of the payment method read model
type PaymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository Create payment method repository
func NewPaymentMethodRepository(db *gorm.DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: db}
}

func (r *PaymentMethodRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByID Find payment method by ID
func (r *PaymentMethodRepository) FindByID(ctx context.Context, id string) (*checkout.PaymentMethod, error) {
	var methodPO po.PaymentMethodPO
	result := r.getDB(ctx).First(&methodPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("payment method")
		}
		return nil, result.Error
	}
	return methodPO.ToDomain(), nil
}

var _ checkout.PaymentMethodRepository = (*PaymentMethodRepository)(nil)

// CartRepository MySQL/GORM implementation of cart cleanup
type CartRepository struct {
	db *gorm.DB
}

// NewCartRepository Create cart repository
func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// RemoveItems deletes the user's cart rows matching the ordered product
// items. Removing nothing is not an error.
func (r *CartRepository) RemoveItems(ctx context.Context, userID string, productItemIDs []string) error {
	if len(productItemIDs) == 0 {
		return nil
	}
	return r.getDB(ctx).
		Where("user_id = ? AND product_item_id IN ?", userID, productItemIDs).
		Delete(&po.CartItemPO{}).Error
}

var _ checkout.CartRepository = (*CartRepository)(nil)
