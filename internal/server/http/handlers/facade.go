package handlers

import (
	"context"

	"github.com/tabledash/tabledash/internal/domain/model"
	"github.com/tabledash/tabledash/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string, role model.Role) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, model.Role, error)
}

// WalletFacade provides wallet related operations.
type WalletFacade interface {
	Account(ctx context.Context, userID int64) (*model.Account, error)
	TopUp(ctx context.Context, userID int64, amount model.Money) error
}

// OrderFacade encapsulates customer order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, customerID int64, items []usecase.CartItem, address, promoCode string) (*model.Order, error)
	Orders(ctx context.Context, customerID int64) ([]model.Order, error)
	Order(ctx context.Context, orderID int64) (*model.Order, error)
}

// KitchenFacade covers the chef's claim workflow.
type KitchenFacade interface {
	KitchenQueue(ctx context.Context, limit int) ([]model.Order, error)
	ClaimOrder(ctx context.Context, orderID, chefID int64) error
	MarkReady(ctx context.Context, orderID, chefID int64) (*model.DeliveryRequest, error)
}

// CourierFacade covers the driver's bidding and transport workflow.
type CourierFacade interface {
	OpenRequests(ctx context.Context, limit int) ([]model.DeliveryRequest, error)
	SubmitBid(ctx context.Context, requestID, driverID int64, price model.Money) (*model.Bid, error)
	AdvanceTransport(ctx context.Context, orderID, driverID int64, to model.OrderStatus) error
}

// ManagerFacade covers bid approval and account administration.
type ManagerFacade interface {
	RequestBids(ctx context.Context, requestID int64) ([]model.Bid, error)
	ApproveBid(ctx context.Context, requestID, bidID int64, memo string) (*model.Bid, error)
	RejectBid(ctx context.Context, bidID int64) error
	SetVIP(ctx context.Context, userID int64, vip bool) error
	GrantPromo(ctx context.Context, code string, customerID int64) error
	ResolveDispute(ctx context.Context, ratingID int64, action string) error
}

// RatingFacade covers review submission and the dispute flow.
type RatingFacade interface {
	SubmitRating(ctx context.Context, orderID, reviewerID, targetID int64, score int, reviewType, comment string) (*model.Rating, error)
	DisputeRating(ctx context.Context, ratingID int64) error
	Performance(ctx context.Context, userID int64) (*model.Performance, error)
}

// TabledashFacade aggregates the full set of operations used across handlers.
type TabledashFacade interface {
	AuthFacade
	WalletFacade
	OrderFacade
	KitchenFacade
	CourierFacade
	ManagerFacade
	RatingFacade
}
