package po

import "orderflow/domain/voucher"

// VoucherPO Voucher persistence object
type VoucherPO struct {
	ID             string `gorm:"primaryKey;size:64"`
	Code           string `gorm:"size:64;uniqueIndex;not null"`
	DiscountRate   int    `gorm:"not null"`
	RemainingUsage int    `gorm:"not null"`
}

// TableName Specify table name
func (VoucherPO) TableName() string {
	return "vouchers"
}

// ToDomain Convert persistence object to read model
func (po *VoucherPO) ToDomain() *voucher.Voucher {
	return &voucher.Voucher{
		ID:             po.ID,
		Code:           po.Code,
		DiscountRate:   po.DiscountRate,
		RemainingUsage: po.RemainingUsage,
	}
}
