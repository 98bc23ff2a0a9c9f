package model

import "time"

// DeliveryRequestStatus describes the assignment state of a delivery request.
type DeliveryRequestStatus string

const (
	DeliveryRequestOpen     DeliveryRequestStatus = "open"
	DeliveryRequestAssigned DeliveryRequestStatus = "assigned"
)

// DeliveryRequest is opened exactly once when an order becomes ready for
// pickup, and assigned to exactly one driver by bid approval.
type DeliveryRequest struct {
	ID           int64
	OrderID      int64
	RestaurantID int64
	Address      string
	Status       DeliveryRequestStatus
	DriverID     *int64
	CreatedAt    time.Time
}

// BidStatus describes the lifecycle of a driver's delivery bid.
type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusAccepted BidStatus = "accepted"
	BidStatusRejected BidStatus = "rejected"
)

// Bid is a driver's proposed price for an open delivery request. At most one
// bid per request ever becomes accepted.
type Bid struct {
	ID        int64
	RequestID int64
	DriverID  int64
	Price     Money
	Status    BidStatus
	Memo      string
	CreatedAt time.Time
}
