package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"orderflow/domain/cancellation"
	"orderflow/domain/inventory"
	"orderflow/domain/order"
	"orderflow/domain/shared"
	"orderflow/domain/user"
	"orderflow/domain/voucher"
)

func TestFromDomainError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code ErrorCode
	}{
		{"user not found", user.NewUserNotFoundError("user-1"), CodeUserNotFound},
		{"user not active", user.NewUserNotActiveError("user-1"), CodeUserNotActive},
		{"order not found", order.NewOrderNotFoundError("order-1"), CodeOrderNotFound},
		{"concurrent modification", order.NewConcurrentModificationError("order-1"), CodeConcurrentModify},
		{"invalid transition", order.NewInvalidStateTransitionError(order.StatusDelivered, order.StatusProcessing), CodeInvalidOrderState},
		{"payment method locked", order.ErrPaymentMethodLocked, CodeInvalidOrderState},
		{"empty items", order.ErrEmptyOrderItems, CodeValidation},
		{"invalid quantity", order.ErrInvalidQuantity, CodeValidation},
		{"total not positive", order.ErrTotalNotPositive, CodeValidation},
		{"insufficient stock", inventory.NewInsufficientStockError("item-1", 5), CodeInsufficientStock},
		{"item not found", inventory.NewItemNotFoundError("item-1"), CodeNotFound},
		{"voucher exhausted", voucher.NewVoucherExhaustedError("voucher-1"), CodeVoucherExhausted},
		{"voucher not found", voucher.NewVoucherNotFoundError("voucher-1"), CodeNotFound},
		{"reason not found", cancellation.NewReasonNotFoundError("reason-1"), CodeNotFound},
		{"shared not found", shared.NewNotFoundError("address"), CodeNotFound},
		{"shared validation", shared.NewValidationError("order", "status", "unknown status"), CodeValidation},
		{"shared conflict", shared.NewConflictError("order", "duplicate order"), CodeConflict},
		{"unknown error", stderrors.New("boom"), CodeInternal},
	}

	for _, tc := range cases {
		appErr := FromDomainError(tc.err)
		if appErr.Code != tc.code {
			t.Errorf("%s: expected code %s, got %s", tc.name, tc.code, appErr.Code)
		}
		if !stderrors.Is(appErr, tc.err) {
			t.Errorf("%s: expected mapped error to wrap the original", tc.name)
		}
	}

	// Wrapped sentinels still map by errors.Is
	wrapped := fmt.Errorf("create order: %w", order.NewConcurrentModificationError("order-1"))
	if got := FromDomainError(wrapped).Code; got != CodeConcurrentModify {
		t.Errorf("Expected wrapped error to map to %s, got %s", CodeConcurrentModify, got)
	}

	// An AppError passes through untouched
	original := NotFound("gone")
	if FromDomainError(original) != original {
		t.Error("Expected AppError to pass through unchanged")
	}

	if FromDomainError(nil) != nil {
		t.Error("Expected nil in, nil out")
	}

	t.Log("✓ Domain error mapping tests passed")
}

func TestHTTPStatusCode(t *testing.T) {
	cases := []struct {
		code   ErrorCode
		status int
	}{
		{CodeBadRequest, http.StatusBadRequest},
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeUserNotFound, http.StatusNotFound},
		{CodeOrderNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeConcurrentModify, http.StatusConflict},
		{CodeTooManyRequest, http.StatusTooManyRequests},
		{CodeUserNotActive, http.StatusUnprocessableEntity},
		{CodeInvalidOrderState, http.StatusUnprocessableEntity},
		{CodeInsufficientStock, http.StatusUnprocessableEntity},
		{CodeVoucherExhausted, http.StatusUnprocessableEntity},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := New(tc.code, "x").HTTPStatusCode(); got != tc.status {
			t.Errorf("Expected %s to map to %d, got %d", tc.code, tc.status, got)
		}
	}

	t.Log("✓ HTTP status mapping tests passed")
}

func TestAppErrorHelpers(t *testing.T) {
	appErr := Wrap(stderrors.New("dial tcp: refused"), CodeInternal, "internal server error")
	if appErr.Unwrap() == nil {
		t.Error("Expected Wrap to preserve the cause")
	}
	if appErr.Error() == "" {
		t.Error("Expected non-empty error string")
	}

	if !Is(appErr, CodeInternal) {
		t.Error("Expected Is to match the code")
	}
	if Is(appErr, CodeNotFound) {
		t.Error("Expected Is to reject a different code")
	}
	if Is(stderrors.New("plain"), CodeInternal) {
		t.Error("Expected Is to reject non-AppError values")
	}

	if got := AsAppError(appErr); got != appErr {
		t.Error("Expected AsAppError to return the same AppError")
	}
	converted := AsAppError(stderrors.New("plain"))
	if converted.Code != CodeInternal {
		t.Errorf("Expected plain errors to convert to %s, got %s", CodeInternal, converted.Code)
	}

	t.Log("✓ AppError helper tests passed")
}
