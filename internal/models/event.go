package models

import "time"

// OrderCreatedEvent is published after an order is durably persisted.
type OrderCreatedEvent struct {
	OrderID      int       `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
	Total        float64   `json:"total"`
	Timestamp    time.Time `json:"timestamp"`
}

// OrderStatusChangedEvent is published after an order status transition.
type OrderStatusChangedEvent struct {
	OrderID   int       `json:"order_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Timestamp time.Time `json:"timestamp"`
}
