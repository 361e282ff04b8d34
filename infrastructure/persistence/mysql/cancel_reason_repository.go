package mysql

import (
	"context"
	"errors"

	"orderflow/domain/cancellation"
	"orderflow/infrastructure/persistence"
	"orderflow/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// CancelReasonRepository MySQL/GORM implementation of the cancel reason catalog
type CancelReasonRepository struct {
	db *gorm.DB
}

// NewCancelReasonRepository Create cancel reason repository
func NewCancelReasonRepository(db *gorm.DB) *CancelReasonRepository {
	return &CancelReasonRepository{db: db}
}

func (r *CancelReasonRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByID Find cancel reason by ID
func (r *CancelReasonRepository) FindByID(ctx context.Context, id string) (*cancellation.CancelReason, error) {
	var reasonPO po.CancelReasonPO
	result := r.getDB(ctx).First(&reasonPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, cancellation.NewReasonNotFoundError(id)
		}
		return nil, result.Error
	}
	return reasonPO.ToDomain(), nil
}

// Compile-time interface implementation check
var _ cancellation.Repository = (*CancelReasonRepository)(nil)
