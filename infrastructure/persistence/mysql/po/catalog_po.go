package po

import (
	"orderflow/domain/inventory"
	"orderflow/domain/shared"
)

// ProductPO Product persistence object.
// The workflow only touches the aggregate sold counter; the rest of the
// product catalog belongs to another subsystem.
type ProductPO struct {
	ID        string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"size:255;not null"`
	SoldCount int    `gorm:"default:0"`
}

// TableName Specify table name
func (ProductPO) TableName() string {
	return "products"
}

// ProductItemPO Product item (sellable variant) persistence object
type ProductItemPO struct {
	ID                    string `gorm:"primaryKey;size:64"`
	ProductID             string `gorm:"size:64;index;not null"`
	QuantityInStock       int    `gorm:"not null"`
	UnitPrice             int64  `gorm:"not null"`
	UnitCurrency          string `gorm:"size:3;not null"`
	PurchasePrice         int64  `gorm:"not null"`
	PurchasePriceCurrency string `gorm:"size:3;not null"`
}

// TableName Specify table name
func (ProductItemPO) TableName() string {
	return "product_items"
}

// ToDomain Convert persistence object to read model
func (po *ProductItemPO) ToDomain() *inventory.ProductItem {
	return &inventory.ProductItem{
		ID:              po.ID,
		ProductID:       po.ProductID,
		QuantityInStock: po.QuantityInStock,
		UnitPrice:       *shared.NewMoney(po.UnitPrice, po.UnitCurrency),
		PurchasePrice:   *shared.NewMoney(po.PurchasePrice, po.PurchasePriceCurrency),
	}
}
