package test

import (
	"context"

	domainErrors "github.com/tabledash/tabledash/internal/domain/errors"
	"github.com/tabledash/tabledash/internal/domain/model"
	"github.com/tabledash/tabledash/internal/domain/repository"
)

// UserRepositoryStub stores participants in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// AccountRepositoryStub lets tests control wallet data.
type AccountRepositoryStub struct {
	GetFn        func(context.Context, int64) (*model.Account, error)
	CreditFn     func(context.Context, int64, model.Money) error
	SetVIPFn     func(context.Context, int64, bool) error
	GrantPromoFn func(context.Context, string, int64) error

	Account *model.Account
	Credits []model.Money
	Promos  []string
}

// Get returns the configured account or an empty lazily-created one.
func (s *AccountRepositoryStub) Get(ctx context.Context, userID int64) (*model.Account, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID)
	}
	if s.Account != nil {
		return s.Account, nil
	}
	return &model.Account{UserID: userID}, nil
}

// Credit records credited amounts for assertions.
func (s *AccountRepositoryStub) Credit(ctx context.Context, userID int64, amount model.Money) error {
	if s.CreditFn != nil {
		return s.CreditFn(ctx, userID, amount)
	}
	s.Credits = append(s.Credits, amount)
	return nil
}

// SetVIP applies override when provided.
func (s *AccountRepositoryStub) SetVIP(ctx context.Context, userID int64, vip bool) error {
	if s.SetVIPFn != nil {
		return s.SetVIPFn(ctx, userID, vip)
	}
	return nil
}

// GrantPromo records granted codes for assertions.
func (s *AccountRepositoryStub) GrantPromo(ctx context.Context, code string, customerID int64) error {
	if s.GrantPromoFn != nil {
		return s.GrantPromoFn(ctx, code, customerID)
	}
	s.Promos = append(s.Promos, code)
	return nil
}

// PlaceCall captures one settlement invocation on OrderRepositoryStub.
type PlaceCall struct {
	CustomerID   int64
	RestaurantID int64
	Lines        []model.CartLine
	Address      string
	PromoCode    string
	DeliveryFee  model.Money
}

// TransportCall captures one transport advance on OrderRepositoryStub.
type TransportCall struct {
	OrderID  int64
	DriverID int64
	From     model.OrderStatus
	To       model.OrderStatus
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	PlaceFn            func(context.Context, int64, int64, []model.CartLine, string, string, model.Money) (*model.Order, error)
	GetByIDFn          func(context.Context, int64) (*model.Order, error)
	ListByCustomerFn   func(context.Context, int64) ([]model.Order, error)
	ListPendingFn      func(context.Context, int) ([]model.Order, error)
	ClaimFn            func(context.Context, int64, int64) error
	MarkReadyFn        func(context.Context, int64, int64) (*model.DeliveryRequest, error)
	AdvanceTransportFn func(context.Context, int64, int64, model.OrderStatus, model.OrderStatus) error

	Orders         []model.Order
	Placed         []PlaceCall
	Claims         []int64
	TransportCalls []TransportCall
}

// Place tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) Place(ctx context.Context, customerID, restaurantID int64, lines []model.CartLine, address, promoCode string, deliveryFee model.Money) (*model.Order, error) {
	s.Placed = append(s.Placed, PlaceCall{
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		Lines:        lines,
		Address:      address,
		PromoCode:    promoCode,
		DeliveryFee:  deliveryFee,
	})
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, customerID, restaurantID, lines, address, promoCode, deliveryFee)
	}
	return &model.Order{ID: 1, CustomerID: customerID, RestaurantID: restaurantID, Status: model.OrderStatusPending, DeliveryAddress: address}, nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, orderID)
	}
	for _, o := range s.Orders {
		if o.ID == orderID {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByCustomer returns orders from configured slice.
func (s *OrderRepositoryStub) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	if s.ListByCustomerFn != nil {
		return s.ListByCustomerFn(ctx, customerID)
	}
	return s.Orders, nil
}

// ListPending returns unclaimed orders for the kitchen queue.
func (s *OrderRepositoryStub) ListPending(ctx context.Context, limit int) ([]model.Order, error) {
	if s.ListPendingFn != nil {
		return s.ListPendingFn(ctx, limit)
	}
	return s.Orders, nil
}

// Claim records claim invocations.
func (s *OrderRepositoryStub) Claim(ctx context.Context, orderID, chefID int64) error {
	s.Claims = append(s.Claims, orderID)
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, orderID, chefID)
	}
	return nil
}

// MarkReady returns the opened delivery request.
func (s *OrderRepositoryStub) MarkReady(ctx context.Context, orderID, chefID int64) (*model.DeliveryRequest, error) {
	if s.MarkReadyFn != nil {
		return s.MarkReadyFn(ctx, orderID, chefID)
	}
	return &model.DeliveryRequest{ID: 1, OrderID: orderID, Status: model.DeliveryRequestOpen}, nil
}

// AdvanceTransport records transition invocations.
func (s *OrderRepositoryStub) AdvanceTransport(ctx context.Context, orderID, driverID int64, from, to model.OrderStatus) error {
	s.TransportCalls = append(s.TransportCalls, TransportCall{OrderID: orderID, DriverID: driverID, From: from, To: to})
	if s.AdvanceTransportFn != nil {
		return s.AdvanceTransportFn(ctx, orderID, driverID, from, to)
	}
	return nil
}

// ApproveCall captures one bid approval on DeliveryRepositoryStub.
type ApproveCall struct {
	RequestID int64
	BidID     int64
	Memo      string
}

// DeliveryRepositoryStub allows tests to customize delivery behaviour.
type DeliveryRepositoryStub struct {
	GetRequestFn         func(context.Context, int64) (*model.DeliveryRequest, error)
	ListOpenFn           func(context.Context, int) ([]model.DeliveryRequest, error)
	PlaceBidFn           func(context.Context, int64, int64, model.Money) (*model.Bid, error)
	ListBidsFn           func(context.Context, int64) ([]model.Bid, error)
	ApproveFn            func(context.Context, int64, int64, string) (*model.Bid, error)
	RejectBidFn          func(context.Context, int64) error
	FindAssignmentGapsFn func(context.Context, int) ([]repository.AssignmentGap, error)

	Requests  []model.DeliveryRequest
	Bids      []model.Bid
	Approvals []ApproveCall
	Rejected  []int64
	Gaps      []repository.AssignmentGap
}

// GetRequest returns matched request either via override or stored slice.
func (s *DeliveryRepositoryStub) GetRequest(ctx context.Context, requestID int64) (*model.DeliveryRequest, error) {
	if s.GetRequestFn != nil {
		return s.GetRequestFn(ctx, requestID)
	}
	for _, r := range s.Requests {
		if r.ID == requestID {
			req := r
			return &req, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListOpen returns configured open requests.
func (s *DeliveryRepositoryStub) ListOpen(ctx context.Context, limit int) ([]model.DeliveryRequest, error) {
	if s.ListOpenFn != nil {
		return s.ListOpenFn(ctx, limit)
	}
	return s.Requests, nil
}

// PlaceBid returns a pending bid for the supplied request.
func (s *DeliveryRepositoryStub) PlaceBid(ctx context.Context, requestID, driverID int64, price model.Money) (*model.Bid, error) {
	if s.PlaceBidFn != nil {
		return s.PlaceBidFn(ctx, requestID, driverID, price)
	}
	return &model.Bid{ID: 1, RequestID: requestID, DriverID: driverID, Price: price, Status: model.BidStatusPending}, nil
}

// ListBids returns configured bids.
func (s *DeliveryRepositoryStub) ListBids(ctx context.Context, requestID int64) ([]model.Bid, error) {
	if s.ListBidsFn != nil {
		return s.ListBidsFn(ctx, requestID)
	}
	return s.Bids, nil
}

// Approve records approval invocations.
func (s *DeliveryRepositoryStub) Approve(ctx context.Context, requestID, bidID int64, memo string) (*model.Bid, error) {
	s.Approvals = append(s.Approvals, ApproveCall{RequestID: requestID, BidID: bidID, Memo: memo})
	if s.ApproveFn != nil {
		return s.ApproveFn(ctx, requestID, bidID, memo)
	}
	return &model.Bid{ID: bidID, RequestID: requestID, Status: model.BidStatusAccepted, Memo: memo}, nil
}

// RejectBid records rejected bid identifiers.
func (s *DeliveryRepositoryStub) RejectBid(ctx context.Context, bidID int64) error {
	s.Rejected = append(s.Rejected, bidID)
	if s.RejectBidFn != nil {
		return s.RejectBidFn(ctx, bidID)
	}
	return nil
}

// FindAssignmentGaps returns configured integrity findings.
func (s *DeliveryRepositoryStub) FindAssignmentGaps(ctx context.Context, limit int) ([]repository.AssignmentGap, error) {
	if s.FindAssignmentGapsFn != nil {
		return s.FindAssignmentGapsFn(ctx, limit)
	}
	return s.Gaps, nil
}

// RatingRepositoryStub allows tests to customize rating behaviour.
type RatingRepositoryStub struct {
	CreateFn         func(context.Context, model.Rating) (*model.Rating, error)
	GetByIDFn        func(context.Context, int64) (*model.Rating, error)
	OpenDisputeFn    func(context.Context, int64) error
	ResolveDisputeFn func(context.Context, int64, model.ManagerAction) error
	PerformanceFn    func(context.Context, int64) (*model.Performance, error)

	Created  []model.Rating
	Disputes []int64
	Resolved []model.ManagerAction
}

// Create records submitted ratings and echoes them back with an identifier.
func (s *RatingRepositoryStub) Create(ctx context.Context, rating model.Rating) (*model.Rating, error) {
	s.Created = append(s.Created, rating)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, rating)
	}
	stored := rating
	stored.ID = int64(len(s.Created))
	stored.DisputeStatus = model.DisputeNone
	return &stored, nil
}

// GetByID returns rating via override or not found.
func (s *RatingRepositoryStub) GetByID(ctx context.Context, ratingID int64) (*model.Rating, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, ratingID)
	}
	return nil, domainErrors.ErrNotFound
}

// OpenDispute records disputed rating identifiers.
func (s *RatingRepositoryStub) OpenDispute(ctx context.Context, ratingID int64) error {
	s.Disputes = append(s.Disputes, ratingID)
	if s.OpenDisputeFn != nil {
		return s.OpenDisputeFn(ctx, ratingID)
	}
	return nil
}

// ResolveDispute records manager verdicts.
func (s *RatingRepositoryStub) ResolveDispute(ctx context.Context, ratingID int64, action model.ManagerAction) error {
	s.Resolved = append(s.Resolved, action)
	if s.ResolveDisputeFn != nil {
		return s.ResolveDisputeFn(ctx, ratingID, action)
	}
	return nil
}

// Performance returns configured performance summary.
func (s *RatingRepositoryStub) Performance(ctx context.Context, userID int64) (*model.Performance, error) {
	if s.PerformanceFn != nil {
		return s.PerformanceFn(ctx, userID)
	}
	return &model.Performance{Grade: model.GradeNeutral}, nil
}
