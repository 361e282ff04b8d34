package order

import (
	"testing"

	"orderflow/domain/checkout"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{
		"AWAITING_PAYMENT", "PROCESSING", "DELIVERED", "CANCELLED", "PAYMENT_FAILED",
	} {
		s, ok := ParseStatus(raw)
		if !ok {
			t.Errorf("Expected %q to parse as a known status", raw)
		}
		if string(s) != raw {
			t.Errorf("Expected parsed status %q, got %q", raw, s)
		}
	}

	if _, ok := ParseStatus("SHIPPED"); ok {
		t.Error("Expected unknown status to be rejected")
	}
	if _, ok := ParseStatus(""); ok {
		t.Error("Expected empty status to be rejected")
	}
	if _, ok := ParseStatus("processing"); ok {
		t.Error("Expected lowercase status to be rejected")
	}

	t.Log("✓ Status parsing tests passed")
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusAwaitingPayment, StatusProcessing},
		{StatusAwaitingPayment, StatusPaymentFailed},
		{StatusAwaitingPayment, StatusCancelled},
		{StatusProcessing, StatusDelivered},
		{StatusProcessing, StatusCancelled},
		{StatusPaymentFailed, StatusAwaitingPayment},
		{StatusPaymentFailed, StatusProcessing},
		{StatusPaymentFailed, StatusCancelled},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("Expected transition %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	forbidden := []struct{ from, to Status }{
		{StatusAwaitingPayment, StatusDelivered},
		{StatusProcessing, StatusAwaitingPayment},
		{StatusProcessing, StatusPaymentFailed},
		{StatusPaymentFailed, StatusDelivered},
		{StatusDelivered, StatusCancelled},
		{StatusDelivered, StatusProcessing},
		{StatusCancelled, StatusProcessing},
		{StatusCancelled, StatusAwaitingPayment},
		{StatusProcessing, StatusProcessing},
	}
	for _, tc := range forbidden {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("Expected transition %s -> %s to be rejected", tc.from, tc.to)
		}
	}

	t.Log("✓ Transition table tests passed")
}

func TestIsTerminal(t *testing.T) {
	if !StatusDelivered.IsTerminal() {
		t.Error("Expected DELIVERED to be terminal")
	}
	if !StatusCancelled.IsTerminal() {
		t.Error("Expected CANCELLED to be terminal")
	}
	for _, s := range []Status{StatusAwaitingPayment, StatusProcessing, StatusPaymentFailed} {
		if s.IsTerminal() {
			t.Errorf("Expected %s to not be terminal", s)
		}
	}

	t.Log("✓ Terminal status tests passed")
}

func TestInitialStatus(t *testing.T) {
	if got := InitialStatus(checkout.PaymentKindCOD); got != StatusProcessing {
		t.Errorf("Expected COD orders to start in PROCESSING, got %s", got)
	}
	if got := InitialStatus(checkout.PaymentKindGateway); got != StatusAwaitingPayment {
		t.Errorf("Expected gateway orders to start in AWAITING_PAYMENT, got %s", got)
	}

	t.Log("✓ Initial status tests passed")
}
