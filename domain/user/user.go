// Package user is the account collaborator's read model. Order creation
// only needs to know that the user exists and is active; account
// management itself is another subsystem.
package user

import (
	"context"
	"errors"

	"orderflow/domain/shared"
)

var (
	// ErrUserNotFound 用户未找到
	ErrUserNotFound = errors.New("user not found")

	// ErrUserNotActive 用户未激活，无法下单
	ErrUserNotActive = errors.New("user is not active")
)

// NewUserNotFoundError 创建用户未找到错误（带堆栈）
func NewUserNotFoundError(userID string) error {
	return &userError{
		sentinel: ErrUserNotFound,
		message:  "user not found: " + userID,
		stack:    shared.CaptureStack(3),
	}
}

// NewUserNotActiveError 创建用户未激活错误
func NewUserNotActiveError(userID string) error {
	return &userError{
		sentinel: ErrUserNotActive,
		message:  "user " + userID + " is not active",
		stack:    shared.CaptureStack(3),
	}
}

type userError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *userError) Error() string   { return e.message }
func (e *userError) Unwrap() error   { return e.sentinel }
func (e *userError) Stack() []string { return shared.FormatStack(e.stack) }

// User 用户读模型
type User struct {
	ID     string
	Name   string
	Active bool
}

// Repository resolves users.
type Repository interface {
	FindByID(ctx context.Context, id string) (*User, error)
}
