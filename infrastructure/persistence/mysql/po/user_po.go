package po

import "orderflow/domain/user"

// UserPO User persistence object
type UserPO struct {
	ID     string `gorm:"primaryKey;size:64"`
	Name   string `gorm:"size:255;not null"`
	Active bool   `gorm:"default:true"`
}

// TableName Specify table name
func (UserPO) TableName() string {
	return "users"
}

// ToDomain Convert persistence object to read model
func (po *UserPO) ToDomain() *user.User {
	return &user.User{
		ID:     po.ID,
		Name:   po.Name,
		Active: po.Active,
	}
}
