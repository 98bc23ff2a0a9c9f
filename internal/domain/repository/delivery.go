package repository

import (
	"context"

	"github.com/tabledash/tabledash/internal/domain/model"
)

// AssignmentGap is an integrity finding: assignment state that was applied
// only partially. Impossible under transactional approval, surfaced anyway.
type AssignmentGap struct {
	RequestID int64
	OrderID   int64
	Detail    string
}

// DeliveryRepository describes persistence operations for delivery requests
// and driver bids.
type DeliveryRepository interface {
	GetRequest(ctx context.Context, requestID int64) (*model.DeliveryRequest, error)
	ListOpen(ctx context.Context, limit int) ([]model.DeliveryRequest, error)
	PlaceBid(ctx context.Context, requestID, driverID int64, price model.Money) (*model.Bid, error)
	ListBids(ctx context.Context, requestID int64) ([]model.Bid, error)
	// Approve accepts one bid, rejects the remaining pending bids, assigns the
	// request and the order to the winning driver, all in one transaction.
	Approve(ctx context.Context, requestID, bidID int64, memo string) (*model.Bid, error)
	RejectBid(ctx context.Context, bidID int64) error
	FindAssignmentGaps(ctx context.Context, limit int) ([]AssignmentGap, error)
}
