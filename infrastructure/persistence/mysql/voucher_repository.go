package mysql

import (
	"context"
	"errors"

	"orderflow/domain/voucher"
	"orderflow/infrastructure/persistence"
	"orderflow/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// VoucherRepository MySQL/GORM implementation of voucher storage
type VoucherRepository struct {
	db *gorm.DB
}

// NewVoucherRepository Create voucher repository
func NewVoucherRepository(db *gorm.DB) *VoucherRepository {
	return &VoucherRepository{db: db}
}

func (r *VoucherRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByID Find voucher by ID
func (r *VoucherRepository) FindByID(ctx context.Context, id string) (*voucher.Voucher, error) {
	var voucherPO po.VoucherPO
	result := r.getDB(ctx).First(&voucherPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, voucher.NewVoucherNotFoundError(id)
		}
		return nil, result.Error
	}
	return voucherPO.ToDomain(), nil
}

// ConsumeUsage burns exactly one usage as an atomic conditional update:
// UPDATE vouchers SET remaining_usage = remaining_usage - 1
// WHERE id = ? AND remaining_usage > 0
func (r *VoucherRepository) ConsumeUsage(ctx context.Context, id string) error {
	db := r.getDB(ctx)

	result := db.Model(&po.VoucherPO{}).
		Where("id = ? AND remaining_usage > 0", id).
		Update("remaining_usage", gorm.Expr("remaining_usage - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&po.VoucherPO{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return voucher.NewVoucherNotFoundError(id)
		}
		return voucher.NewVoucherExhaustedError(id)
	}
	return nil
}

// Compile-time interface implementation check
var _ voucher.Repository = (*VoucherRepository)(nil)
