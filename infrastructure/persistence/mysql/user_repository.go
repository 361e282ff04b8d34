package mysql

import (
	"context"
	"errors"

	"orderflow/domain/user"
	"orderflow/infrastructure/persistence"
	"orderflow/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// UserRepository MySQL/GORM implementation of the user read model
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository Create user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByID Find user by ID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var userPO po.UserPO
	result := r.getDB(ctx).First(&userPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, user.NewUserNotFoundError(id)
		}
		return nil, result.Error
	}
	return userPO.ToDomain(), nil
}

// Compile-time interface implementation check
var _ user.Repository = (*UserRepository)(nil)
