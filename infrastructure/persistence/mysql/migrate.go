package mysql

import (
	"fmt"

	"orderflow/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the workflow tables.
// Development convenience; production schemas are managed by migrations.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&po.UserPO{},
		&po.AddressPO{},
		&po.PaymentMethodPO{},
		&po.ProductPO{},
		&po.ProductItemPO{},
		&po.CartItemPO{},
		&po.VoucherPO{},
		&po.CancelReasonPO{},
		&po.OrderPO{},
		&po.OrderDetailPO{},
		&po.StatusChangePO{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
