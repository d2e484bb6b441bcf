package models

import (
	"math"
	"strings"
	"time"

	"menu-system/internal/apperrors"
)

// OrderStatus represents the status of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists the valid statuses in lifecycle order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusPreparing,
	StatusReady,
	StatusDelivered,
	StatusCancelled,
}

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(raw)
	for _, s := range OrderStatuses {
		if status == s {
			return status, nil
		}
	}
	return "", apperrors.NewValidation("status",
		"status must be one of: pending, preparing, ready, delivered, cancelled")
}

// OrderItem is a line of an order. Treat values as immutable once constructed.
type OrderItem struct {
	ID        int     `json:"id,omitempty"`
	OrderID   int     `json:"order_id,omitempty"`
	ItemID    int     `json:"item_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// NewOrderItem validates and builds an order line. Quantity must be a positive
// integer; unit price must be a real number >= 0 (zero is allowed).
func NewOrderItem(itemID, quantity int, unitPrice float64) (OrderItem, error) {
	if itemID <= 0 {
		return OrderItem{}, apperrors.NewValidation("item_id", "item id is required")
	}
	if quantity <= 0 {
		return OrderItem{}, apperrors.NewValidation("quantity", "quantity must be a positive integer")
	}
	if math.IsNaN(unitPrice) || math.IsInf(unitPrice, 0) || unitPrice < 0 {
		return OrderItem{}, apperrors.NewValidation("unit_price", "unit price must be a real number greater than or equal to 0")
	}
	return OrderItem{ItemID: itemID, Quantity: quantity, UnitPrice: unitPrice}, nil
}

// RestoreOrderItem rehydrates a persisted order line, re-running validation.
func RestoreOrderItem(id, orderID, itemID, quantity int, unitPrice float64) (OrderItem, error) {
	item, err := NewOrderItem(itemID, quantity, unitPrice)
	if err != nil {
		return OrderItem{}, err
	}
	item.ID = id
	item.OrderID = orderID
	return item, nil
}

// Subtotal is quantity times unit price, computed on demand.
func (i OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// Order is the order aggregate. An order without items is not constructible;
// the repositories rely on that to detect corrupted rows.
type Order struct {
	ID           int         `json:"id,omitempty"`
	CustomerName string      `json:"customer_name"`
	Status       OrderStatus `json:"status"`
	Items        []OrderItem `json:"items"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// NewOrder validates and builds a pending order.
func NewOrder(customerName string, items []OrderItem) (Order, error) {
	name := strings.TrimSpace(customerName)
	if name == "" {
		return Order{}, apperrors.NewValidation("customer_name", "customer name is required")
	}
	if len(items) == 0 {
		return Order{}, apperrors.NewValidation("items", "order must contain at least one item")
	}

	now := time.Now().UTC()
	return Order{
		CustomerName: name,
		Status:       StatusPending,
		Items:        copyItems(items),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// RestoreOrder rehydrates a persisted order, re-running every construction
// invariant. A stored row that no longer satisfies them fails with a
// ValidationError, which the repository read path treats as corruption.
func RestoreOrder(id int, customerName, status string, items []OrderItem, createdAt, updatedAt time.Time) (Order, error) {
	parsed, err := ParseOrderStatus(status)
	if err != nil {
		return Order{}, err
	}

	order, err := NewOrder(customerName, items)
	if err != nil {
		return Order{}, err
	}
	order.ID = id
	order.Status = parsed
	order.CreatedAt = createdAt
	order.UpdatedAt = updatedAt
	return order, nil
}

// ChangeStatus returns a copy of the order with the new status. Transitions
// between the five statuses are unrestricted.
func (o Order) ChangeStatus(status OrderStatus) (Order, error) {
	if _, err := ParseOrderStatus(string(status)); err != nil {
		return Order{}, err
	}
	next := o
	next.Items = copyItems(o.Items)
	next.Status = status
	next.UpdatedAt = time.Now().UTC()
	return next, nil
}

// Rename returns a copy of the order with a new customer name.
func (o Order) Rename(customerName string) (Order, error) {
	name := strings.TrimSpace(customerName)
	if name == "" {
		return Order{}, apperrors.NewValidation("customer_name", "customer name is required")
	}
	next := o
	next.Items = copyItems(o.Items)
	next.CustomerName = name
	next.UpdatedAt = time.Now().UTC()
	return next, nil
}

// Total sums the item subtotals.
func (o Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Subtotal()
	}
	return total
}

func copyItems(items []OrderItem) []OrderItem {
	out := make([]OrderItem, len(items))
	copy(out, items)
	return out
}
