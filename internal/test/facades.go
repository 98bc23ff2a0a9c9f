package test

import (
	"context"

	domainErrors "github.com/tabledash/tabledash/internal/domain/errors"
	"github.com/tabledash/tabledash/internal/domain/model"
	"github.com/tabledash/tabledash/internal/domain/repository"
	"github.com/tabledash/tabledash/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, model.Role) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (int64, model.Role, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, login, password string, role model.Role) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password, role)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken returns stored identity for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (int64, model.Role, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, model.RoleCustomer, nil
}

// WalletFacadeStub simulates wallet facade interactions.
type WalletFacadeStub struct {
	AccountFn func(context.Context, int64) (*model.Account, error)
	TopUpFn   func(context.Context, int64, model.Money) error
}

// Account returns configured wallet summary.
func (s WalletFacadeStub) Account(ctx context.Context, userID int64) (*model.Account, error) {
	if s.AccountFn != nil {
		return s.AccountFn(ctx, userID)
	}
	return &model.Account{UserID: userID}, nil
}

// TopUp applies override when provided.
func (s WalletFacadeStub) TopUp(ctx context.Context, userID int64, amount model.Money) error {
	if s.TopUpFn != nil {
		return s.TopUpFn(ctx, userID, amount)
	}
	return nil
}

// OrderFacadeStub simulates customer order facade interactions.
type OrderFacadeStub struct {
	PlaceOrderFn func(context.Context, int64, []usecase.CartItem, string, string) (*model.Order, error)
	OrdersFn     func(context.Context, int64) ([]model.Order, error)
	OrderFn      func(context.Context, int64) (*model.Order, error)
}

// PlaceOrder returns configured order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, customerID int64, items []usecase.CartItem, address, promoCode string) (*model.Order, error) {
	if s.PlaceOrderFn != nil {
		return s.PlaceOrderFn(ctx, customerID, items, address, promoCode)
	}
	return &model.Order{ID: 1, CustomerID: customerID, Status: model.OrderStatusPending, DeliveryAddress: address}, nil
}

// Orders returns configured order list.
func (s OrderFacadeStub) Orders(ctx context.Context, customerID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, customerID)
	}
	return nil, nil
}

// Order returns configured order lookup result.
func (s OrderFacadeStub) Order(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return nil, domainErrors.ErrNotFound
}

// KitchenFacadeStub simulates the chef workflow facade.
type KitchenFacadeStub struct {
	KitchenQueueFn func(context.Context, int) ([]model.Order, error)
	ClaimOrderFn   func(context.Context, int64, int64) error
	MarkReadyFn    func(context.Context, int64, int64) (*model.DeliveryRequest, error)
}

// KitchenQueue returns configured pending orders.
func (s KitchenFacadeStub) KitchenQueue(ctx context.Context, limit int) ([]model.Order, error) {
	if s.KitchenQueueFn != nil {
		return s.KitchenQueueFn(ctx, limit)
	}
	return nil, nil
}

// ClaimOrder applies override when provided.
func (s KitchenFacadeStub) ClaimOrder(ctx context.Context, orderID, chefID int64) error {
	if s.ClaimOrderFn != nil {
		return s.ClaimOrderFn(ctx, orderID, chefID)
	}
	return nil
}

// MarkReady returns the opened delivery request.
func (s KitchenFacadeStub) MarkReady(ctx context.Context, orderID, chefID int64) (*model.DeliveryRequest, error) {
	if s.MarkReadyFn != nil {
		return s.MarkReadyFn(ctx, orderID, chefID)
	}
	return &model.DeliveryRequest{ID: 1, OrderID: orderID, Status: model.DeliveryRequestOpen}, nil
}

// CourierFacadeStub simulates the driver workflow facade.
type CourierFacadeStub struct {
	OpenRequestsFn     func(context.Context, int) ([]model.DeliveryRequest, error)
	SubmitBidFn        func(context.Context, int64, int64, model.Money) (*model.Bid, error)
	AdvanceTransportFn func(context.Context, int64, int64, model.OrderStatus) error
}

// OpenRequests returns configured delivery requests.
func (s CourierFacadeStub) OpenRequests(ctx context.Context, limit int) ([]model.DeliveryRequest, error) {
	if s.OpenRequestsFn != nil {
		return s.OpenRequestsFn(ctx, limit)
	}
	return nil, nil
}

// SubmitBid returns configured bid.
func (s CourierFacadeStub) SubmitBid(ctx context.Context, requestID, driverID int64, price model.Money) (*model.Bid, error) {
	if s.SubmitBidFn != nil {
		return s.SubmitBidFn(ctx, requestID, driverID, price)
	}
	return &model.Bid{ID: 1, RequestID: requestID, DriverID: driverID, Price: price, Status: model.BidStatusPending}, nil
}

// AdvanceTransport applies override when provided.
func (s CourierFacadeStub) AdvanceTransport(ctx context.Context, orderID, driverID int64, to model.OrderStatus) error {
	if s.AdvanceTransportFn != nil {
		return s.AdvanceTransportFn(ctx, orderID, driverID, to)
	}
	return nil
}

// ManagerFacadeStub simulates the manager workflow facade.
type ManagerFacadeStub struct {
	RequestBidsFn    func(context.Context, int64) ([]model.Bid, error)
	ApproveBidFn     func(context.Context, int64, int64, string) (*model.Bid, error)
	RejectBidFn      func(context.Context, int64) error
	SetVIPFn         func(context.Context, int64, bool) error
	GrantPromoFn     func(context.Context, string, int64) error
	ResolveDisputeFn func(context.Context, int64, string) error
}

// RequestBids returns configured bids.
func (s ManagerFacadeStub) RequestBids(ctx context.Context, requestID int64) ([]model.Bid, error) {
	if s.RequestBidsFn != nil {
		return s.RequestBidsFn(ctx, requestID)
	}
	return nil, nil
}

// ApproveBid returns the accepted bid.
func (s ManagerFacadeStub) ApproveBid(ctx context.Context, requestID, bidID int64, memo string) (*model.Bid, error) {
	if s.ApproveBidFn != nil {
		return s.ApproveBidFn(ctx, requestID, bidID, memo)
	}
	return &model.Bid{ID: bidID, RequestID: requestID, Status: model.BidStatusAccepted, Memo: memo}, nil
}

// RejectBid applies override when provided.
func (s ManagerFacadeStub) RejectBid(ctx context.Context, bidID int64) error {
	if s.RejectBidFn != nil {
		return s.RejectBidFn(ctx, bidID)
	}
	return nil
}

// SetVIP applies override when provided.
func (s ManagerFacadeStub) SetVIP(ctx context.Context, userID int64, vip bool) error {
	if s.SetVIPFn != nil {
		return s.SetVIPFn(ctx, userID, vip)
	}
	return nil
}

// GrantPromo applies override when provided.
func (s ManagerFacadeStub) GrantPromo(ctx context.Context, code string, customerID int64) error {
	if s.GrantPromoFn != nil {
		return s.GrantPromoFn(ctx, code, customerID)
	}
	return nil
}

// ResolveDispute applies override when provided.
func (s ManagerFacadeStub) ResolveDispute(ctx context.Context, ratingID int64, action string) error {
	if s.ResolveDisputeFn != nil {
		return s.ResolveDisputeFn(ctx, ratingID, action)
	}
	return nil
}

// RatingFacadeStub simulates the rating facade.
type RatingFacadeStub struct {
	SubmitRatingFn  func(context.Context, int64, int64, int64, int, string, string) (*model.Rating, error)
	DisputeRatingFn func(context.Context, int64) error
	PerformanceFn   func(context.Context, int64) (*model.Performance, error)
}

// SubmitRating returns the stored rating.
func (s RatingFacadeStub) SubmitRating(ctx context.Context, orderID, reviewerID, targetID int64, score int, reviewType, comment string) (*model.Rating, error) {
	if s.SubmitRatingFn != nil {
		return s.SubmitRatingFn(ctx, orderID, reviewerID, targetID, score, reviewType, comment)
	}
	return &model.Rating{ID: 1, OrderID: orderID, ReviewerID: reviewerID, TargetID: targetID, Score: score, ReviewType: model.ReviewType(reviewType), DisputeStatus: model.DisputeNone}, nil
}

// DisputeRating applies override when provided.
func (s RatingFacadeStub) DisputeRating(ctx context.Context, ratingID int64) error {
	if s.DisputeRatingFn != nil {
		return s.DisputeRatingFn(ctx, ratingID)
	}
	return nil
}

// Performance returns configured summary.
func (s RatingFacadeStub) Performance(ctx context.Context, userID int64) (*model.Performance, error) {
	if s.PerformanceFn != nil {
		return s.PerformanceFn(ctx, userID)
	}
	return &model.Performance{Grade: model.GradeNeutral}, nil
}

// TabledashFacadeStub aggregates facade dependencies for HTTP layer tests.
type TabledashFacadeStub struct {
	AuthFacadeStub
	WalletFacadeStub
	OrderFacadeStub
	KitchenFacadeStub
	CourierFacadeStub
	ManagerFacadeStub
	RatingFacadeStub
}

// GapSourceStub feeds assignment gap findings to the reconcile worker.
type GapSourceStub struct {
	GapsFn func(context.Context, int) ([]repository.AssignmentGap, error)
	Gaps   []repository.AssignmentGap
}

// AssignmentGaps returns configured findings.
func (s *GapSourceStub) AssignmentGaps(ctx context.Context, limit int) ([]repository.AssignmentGap, error) {
	if s.GapsFn != nil {
		return s.GapsFn(ctx, limit)
	}
	return s.Gaps, nil
}
