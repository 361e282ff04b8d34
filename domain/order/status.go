package order

import "orderflow/domain/checkout"

// Status Order status enum
type Status string

const (
	StatusAwaitingPayment Status = "AWAITING_PAYMENT" // waiting for a gateway outcome
	StatusProcessing      Status = "PROCESSING"       // paid or COD, being fulfilled
	StatusDelivered       Status = "DELIVERED"        // terminal
	StatusCancelled       Status = "CANCELLED"        // terminal
	StatusPaymentFailed   Status = "PAYMENT_FAILED"   // gateway reported failure
)

// validTransitions is the explicit transition-validity table keyed by the
// current state. Delivered and Cancelled are terminal: no row leaves them.
var validTransitions = map[Status][]Status{
	StatusAwaitingPayment: {StatusProcessing, StatusPaymentFailed, StatusCancelled},
	StatusProcessing:      {StatusDelivered, StatusCancelled},
	StatusPaymentFailed:   {StatusAwaitingPayment, StatusProcessing, StatusCancelled},
	StatusDelivered:       {},
	StatusCancelled:       {},
}

// ParseStatus validates a raw status value.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	_, known := validTransitions[s]
	return s, known
}

// CanTransition reports whether moving from one state to another is allowed.
func CanTransition(from, to Status) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves the state.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// InitialStatus picks the creation-time state from the payment method kind:
// cash-on-delivery orders go straight to fulfillment, gateway orders wait
// for the payment outcome.
func InitialStatus(kind checkout.PaymentKind) Status {
	if kind == checkout.PaymentKindCOD {
		return StatusProcessing
	}
	return StatusAwaitingPayment
}
