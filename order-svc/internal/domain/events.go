package domain

import "time"

type EventType string

const (
	EventOrderCreated EventType = "order_created"
	EventOrderUpdated EventType = "order_updated"
	EventOrderDeleted EventType = "order_deleted"
)

// OrderEvent is published after every committed order mutation. Version is
// the order version the mutation produced. A delete carries the last version
// plus one so observers can order it after every update.
type OrderEvent struct {
	Type         EventType `json:"type"`
	RestaurantID string    `json:"restaurant_id"`
	OrderID      int64     `json:"order_id"`
	Version      int       `json:"version"`
	Order        *Order    `json:"order,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewOrderEvent(eventType EventType, order Order, at time.Time) OrderEvent {
	event := OrderEvent{
		Type:         eventType,
		RestaurantID: order.RestaurantID,
		OrderID:      order.ID,
		Version:      order.Version,
		Timestamp:    at,
	}
	if eventType == EventOrderDeleted {
		event.Version = order.Version + 1
		return event
	}
	clone := order.Clone()
	event.Order = &clone
	return event
}
