package app

import (
	"context"
	"errors"

	domainErrors "github.com/tabledash/tabledash/internal/domain/errors"
	"github.com/tabledash/tabledash/internal/domain/model"
	"github.com/tabledash/tabledash/internal/domain/repository"
	"github.com/tabledash/tabledash/internal/usecase"
)

// TabledashFacade aggregates the use cases behind a single surface consumed by
// the HTTP handlers and the reconcile worker.
type TabledashFacade struct {
	auth    *usecase.AuthUseCase
	ledger  *usecase.LedgerUseCase
	orders  *usecase.OrderUseCase
	claims  *usecase.ClaimUseCase
	ratings *usecase.RatingUseCase
	gaps    repository.DeliveryRepository
}

func NewTabledashFacade(
	auth *usecase.AuthUseCase,
	ledger *usecase.LedgerUseCase,
	orders *usecase.OrderUseCase,
	claims *usecase.ClaimUseCase,
	ratings *usecase.RatingUseCase,
	deliveries repository.DeliveryRepository,
) *TabledashFacade {
	return &TabledashFacade{
		auth:    auth,
		ledger:  ledger,
		orders:  orders,
		claims:  claims,
		ratings: ratings,
		gaps:    deliveries,
	}
}

func (f *TabledashFacade) Register(ctx context.Context, login, password string, role model.Role) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, role)
	return token, err
}

func (f *TabledashFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *TabledashFacade) ParseToken(token string) (int64, model.Role, error) {
	return f.auth.ParseToken(token)
}

func (f *TabledashFacade) Account(ctx context.Context, userID int64) (*model.Account, error) {
	account, err := f.ledger.Summary(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return &model.Account{UserID: userID}, nil
		}
		return nil, err
	}
	return account, nil
}

func (f *TabledashFacade) TopUp(ctx context.Context, userID int64, amount model.Money) error {
	return f.ledger.TopUp(ctx, userID, amount)
}

func (f *TabledashFacade) SetVIP(ctx context.Context, userID int64, vip bool) error {
	return f.ledger.SetVIP(ctx, userID, vip)
}

func (f *TabledashFacade) GrantPromo(ctx context.Context, code string, customerID int64) error {
	return f.ledger.GrantPromo(ctx, code, customerID)
}

func (f *TabledashFacade) PlaceOrder(ctx context.Context, customerID int64, items []usecase.CartItem, address, promoCode string) (*model.Order, error) {
	return f.orders.Place(ctx, customerID, items, address, promoCode)
}

func (f *TabledashFacade) Orders(ctx context.Context, customerID int64) ([]model.Order, error) {
	return f.orders.ListByCustomer(ctx, customerID)
}

func (f *TabledashFacade) Order(ctx context.Context, orderID int64) (*model.Order, error) {
	return f.orders.GetByID(ctx, orderID)
}

func (f *TabledashFacade) KitchenQueue(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.KitchenQueue(ctx, limit)
}

func (f *TabledashFacade) ClaimOrder(ctx context.Context, orderID, chefID int64) error {
	return f.claims.ClaimOrder(ctx, orderID, chefID)
}

func (f *TabledashFacade) MarkReady(ctx context.Context, orderID, chefID int64) (*model.DeliveryRequest, error) {
	return f.claims.MarkReady(ctx, orderID, chefID)
}

func (f *TabledashFacade) OpenRequests(ctx context.Context, limit int) ([]model.DeliveryRequest, error) {
	return f.claims.OpenRequests(ctx, limit)
}

func (f *TabledashFacade) SubmitBid(ctx context.Context, requestID, driverID int64, price model.Money) (*model.Bid, error) {
	return f.claims.SubmitBid(ctx, requestID, driverID, price)
}

func (f *TabledashFacade) RequestBids(ctx context.Context, requestID int64) ([]model.Bid, error) {
	return f.claims.RequestBids(ctx, requestID)
}

func (f *TabledashFacade) ApproveBid(ctx context.Context, requestID, bidID int64, memo string) (*model.Bid, error) {
	return f.claims.ApproveBid(ctx, requestID, bidID, memo)
}

func (f *TabledashFacade) RejectBid(ctx context.Context, bidID int64) error {
	return f.claims.RejectBid(ctx, bidID)
}

func (f *TabledashFacade) AdvanceTransport(ctx context.Context, orderID, driverID int64, to model.OrderStatus) error {
	return f.claims.AdvanceTransport(ctx, orderID, driverID, to)
}

func (f *TabledashFacade) SubmitRating(ctx context.Context, orderID, reviewerID, targetID int64, score int, reviewType, comment string) (*model.Rating, error) {
	return f.ratings.Submit(ctx, orderID, reviewerID, targetID, score, reviewType, comment)
}

func (f *TabledashFacade) DisputeRating(ctx context.Context, ratingID int64) error {
	return f.ratings.Dispute(ctx, ratingID)
}

func (f *TabledashFacade) ResolveDispute(ctx context.Context, ratingID int64, action string) error {
	return f.ratings.Resolve(ctx, ratingID, action)
}

func (f *TabledashFacade) Performance(ctx context.Context, userID int64) (*model.Performance, error) {
	return f.ratings.Performance(ctx, userID)
}

func (f *TabledashFacade) AssignmentGaps(ctx context.Context, limit int) ([]repository.AssignmentGap, error) {
	return f.gaps.FindAssignmentGaps(ctx, limit)
}
