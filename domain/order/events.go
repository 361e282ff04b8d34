package order

import (
	"time"

	"orderflow/domain/shared"
)

type OrderPlacedEvent struct {
	orderID       string
	userID        string
	totalAmount   shared.Money
	initialStatus Status
	occurredOn    time.Time
}

func NewOrderPlacedEvent(orderID, userID string, totalAmount shared.Money, initialStatus Status) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		orderID:       orderID,
		userID:        userID,
		totalAmount:   totalAmount,
		initialStatus: initialStatus,
		occurredOn:    time.Now(),
	}
}

func (e *OrderPlacedEvent) EventName() string         { return "order.placed" }
func (e *OrderPlacedEvent) OccurredOn() time.Time     { return e.occurredOn }
func (e *OrderPlacedEvent) GetAggregateID() string    { return e.orderID }
func (e *OrderPlacedEvent) OrderID() string           { return e.orderID }
func (e *OrderPlacedEvent) UserID() string            { return e.userID }
func (e *OrderPlacedEvent) TotalAmount() shared.Money { return e.totalAmount }
func (e *OrderPlacedEvent) InitialStatus() Status     { return e.initialStatus }

type OrderCancelledEvent struct {
	orderID    string
	reasonID   string
	occurredOn time.Time
}

func NewOrderCancelledEvent(orderID, reasonID string) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		orderID:    orderID,
		reasonID:   reasonID,
		occurredOn: time.Now(),
	}
}

func (e *OrderCancelledEvent) EventName() string      { return "order.cancelled" }
func (e *OrderCancelledEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderCancelledEvent) GetAggregateID() string { return e.orderID }
func (e *OrderCancelledEvent) OrderID() string        { return e.orderID }
func (e *OrderCancelledEvent) ReasonID() string       { return e.reasonID }

type OrderDeliveredEvent struct {
	orderID    string
	occurredOn time.Time
}

func NewOrderDeliveredEvent(orderID string) *OrderDeliveredEvent {
	return &OrderDeliveredEvent{
		orderID:    orderID,
		occurredOn: time.Now(),
	}
}

func (e *OrderDeliveredEvent) EventName() string      { return "order.delivered" }
func (e *OrderDeliveredEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderDeliveredEvent) GetAggregateID() string { return e.orderID }
func (e *OrderDeliveredEvent) OrderID() string        { return e.orderID }

type OrderPaymentFailedEvent struct {
	orderID    string
	occurredOn time.Time
}

func NewOrderPaymentFailedEvent(orderID string) *OrderPaymentFailedEvent {
	return &OrderPaymentFailedEvent{
		orderID:    orderID,
		occurredOn: time.Now(),
	}
}

func (e *OrderPaymentFailedEvent) EventName() string      { return "order.payment_failed" }
func (e *OrderPaymentFailedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderPaymentFailedEvent) GetAggregateID() string { return e.orderID }
func (e *OrderPaymentFailedEvent) OrderID() string        { return e.orderID }
