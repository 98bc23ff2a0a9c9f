package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/tabledash/tabledash/internal/domain/errors"
	"github.com/tabledash/tabledash/internal/domain/model"
	"github.com/tabledash/tabledash/internal/domain/repository"
)

// ClaimUseCase resolves both at-most-one races: the chef claiming an order
// and the manager accepting exactly one bid per delivery request.
type ClaimUseCase struct {
	orders     repository.OrderRepository
	deliveries repository.DeliveryRepository
}

// NewClaimUseCase constructs ClaimUseCase.
func NewClaimUseCase(orders repository.OrderRepository, deliveries repository.DeliveryRepository) *ClaimUseCase {
	return &ClaimUseCase{orders: orders, deliveries: deliveries}
}

// ClaimOrder assigns a pending order to the chef; a lost race reports
// ErrAlreadyClaimed and the caller picks another order.
func (u *ClaimUseCase) ClaimOrder(ctx context.Context, orderID, chefID int64) error {
	return u.orders.Claim(ctx, orderID, chefID)
}

// MarkReady finishes preparation and opens the delivery request.
func (u *ClaimUseCase) MarkReady(ctx context.Context, orderID, chefID int64) (*model.DeliveryRequest, error) {
	return u.orders.MarkReady(ctx, orderID, chefID)
}

// OpenRequests lists delivery requests still waiting for a driver.
func (u *ClaimUseCase) OpenRequests(ctx context.Context, limit int) ([]model.DeliveryRequest, error) {
	if limit <= 0 {
		limit = 50
	}
	return u.deliveries.ListOpen(ctx, limit)
}

// SubmitBid records a driver's proposed delivery price for an open request.
func (u *ClaimUseCase) SubmitBid(ctx context.Context, requestID, driverID int64, price model.Money) (*model.Bid, error) {
	if price <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	return u.deliveries.PlaceBid(ctx, requestID, driverID, price)
}

// RequestBids lists all bids for a delivery request, cheapest first.
func (u *ClaimUseCase) RequestBids(ctx context.Context, requestID int64) ([]model.Bid, error) {
	return u.deliveries.ListBids(ctx, requestID)
}

// ApproveBid accepts one bid and rejects the remaining pending ones. Choosing
// a non-lowest bid requires a memo explaining the call.
func (u *ClaimUseCase) ApproveBid(ctx context.Context, requestID, bidID int64, memo string) (*model.Bid, error) {
	return u.deliveries.Approve(ctx, requestID, bidID, strings.TrimSpace(memo))
}

// RejectBid turns a single pending bid down without resolving the request.
func (u *ClaimUseCase) RejectBid(ctx context.Context, bidID int64) error {
	return u.deliveries.RejectBid(ctx, bidID)
}

// AdvanceTransport moves an assigned order one step along the transport
// states. Only the steps after assignment are driver-driven.
func (u *ClaimUseCase) AdvanceTransport(ctx context.Context, orderID, driverID int64, to model.OrderStatus) error {
	from, ok := transportPredecessor(to)
	if !ok {
		return domainErrors.ErrInvalidTransition
	}
	return u.orders.AdvanceTransport(ctx, orderID, driverID, from, to)
}

func transportPredecessor(to model.OrderStatus) (model.OrderStatus, bool) {
	switch to {
	case model.OrderStatusPickedUp:
		return model.OrderStatusAccepted, true
	case model.OrderStatusInTransit:
		return model.OrderStatusPickedUp, true
	case model.OrderStatusDelivered:
		return model.OrderStatusInTransit, true
	}
	return "", false
}
