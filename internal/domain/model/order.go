package model

import "time"

// OrderStatus describes the order lifecycle. The chain is strictly forward:
// pending and in_progress are kitchen states, accepted onward are transport states.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusInProgress     OrderStatus = "in_progress"
	OrderStatusReadyForPickup OrderStatus = "ready_for_pickup"
	OrderStatusAccepted       OrderStatus = "accepted"
	OrderStatusPickedUp       OrderStatus = "picked_up"
	OrderStatusInTransit      OrderStatus = "in_transit"
	OrderStatusDelivered      OrderStatus = "delivered"
)

var statusOrder = []OrderStatus{
	OrderStatusPending,
	OrderStatusInProgress,
	OrderStatusReadyForPickup,
	OrderStatusAccepted,
	OrderStatusPickedUp,
	OrderStatusInTransit,
	OrderStatusDelivered,
}

// Next returns the successor status, or false from the terminal state.
func (s OrderStatus) Next() (OrderStatus, bool) {
	for i, st := range statusOrder {
		if st == s && i+1 < len(statusOrder) {
			return statusOrder[i+1], true
		}
	}
	return "", false
}

// CanTransition reports whether to is the immediate successor of s.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	next, ok := s.Next()
	return ok && next == to
}

// Terminal reports whether no further transition exists.
func (s OrderStatus) Terminal() bool {
	_, ok := s.Next()
	return !ok
}

// Order is a settled purchase. ChefID is set by the kitchen claim, DriverID by
// bid approval; both start unset.
type Order struct {
	ID              int64
	CustomerID      int64
	RestaurantID    int64
	Status          OrderStatus
	TotalPrice      Money
	DeliveryAddress string
	ChefID          *int64
	DriverID        *int64
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem carries the dish price snapshot taken at order time; later catalog
// price changes never alter it.
type OrderItem struct {
	ID        int64
	OrderID   int64
	DishID    int64
	Name      string
	Quantity  int
	UnitPrice Money
}

// CartLine is a priced line of a checkout payload before the order exists.
type CartLine struct {
	DishID    int64
	Name      string
	Quantity  int
	UnitPrice Money
}
