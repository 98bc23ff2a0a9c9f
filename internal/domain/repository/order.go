package repository

import (
	"context"

	"github.com/tabledash/tabledash/internal/domain/model"
)

// OrderRepository describes persistence operations for orders and the kitchen
// and transport transitions that mutate them.
type OrderRepository interface {
	// Place settles the checkout in one transaction: promo redemption,
	// conditional debit, order and line-item inserts. On insufficient funds
	// nothing is created and a warning is recorded against the customer.
	Place(ctx context.Context, customerID, restaurantID int64, lines []model.CartLine, address, promoCode string, deliveryFee model.Money) (*model.Order, error)
	GetByID(ctx context.Context, orderID int64) (*model.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	ListPending(ctx context.Context, limit int) ([]model.Order, error)
	// Claim assigns a chef to an unclaimed pending order; losers of the race
	// get ErrAlreadyClaimed.
	Claim(ctx context.Context, orderID, chefID int64) error
	// MarkReady flips in_progress to ready_for_pickup and opens the single
	// delivery request for the order.
	MarkReady(ctx context.Context, orderID, chefID int64) (*model.DeliveryRequest, error)
	// AdvanceTransport moves an order one step along the transport states,
	// conditioned on the current status and the assigned driver.
	AdvanceTransport(ctx context.Context, orderID, driverID int64, from, to model.OrderStatus) error
}
