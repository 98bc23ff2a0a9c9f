package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/tabledash/tabledash/internal/domain/errors"
	"github.com/tabledash/tabledash/internal/domain/model"
	"github.com/tabledash/tabledash/internal/server/http/dto"
	"github.com/tabledash/tabledash/internal/server/http/middleware"
	testhelpers "github.com/tabledash/tabledash/internal/test"
	"github.com/tabledash/tabledash/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path, target string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, path, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
	}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestCurrentRole(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentRole(c); got != "" {
		t.Fatalf("expected empty role when not set, got %q", got)
	}

	c.Set(middleware.RoleContextKey, model.RoleDriver)
	if got := CurrentRole(c); got != model.RoleDriver {
		t.Fatalf("expected driver, got %q", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass", Role: "chef"})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(ctx context.Context, login, password string, role model.Role) (string, error) {
		if role != model.RoleChef {
			t.Fatalf("unexpected role passed to facade: %q", role)
		}
		return "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, nil, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}
	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	cookies := result.Cookies()
	if len(cookies) == 0 || cookies[0].Name != "tabledash_token" || cookies[0].Value != "session-token" {
		t.Fatalf("expected tabledash_token cookie, got %+v", cookies)
	}
}

func TestAuthHandlerRegisterDefaultsToCustomer(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass"})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(ctx context.Context, login, password string, role model.Role) (string, error) {
		if role != model.RoleCustomer {
			t.Fatalf("expected customer fallback, got %q", role)
		}
		return "token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, nil, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid credentials", body: []byte(`{"login":"","password":""}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, model.Role) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusBadRequest},
		{name: "invalid role", body: []byte(`{"login":"a","password":"b","role":"admin"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, model.Role) (string, error) {
			return "", domainErrors.ErrInvalidRole
		}}, status: http.StatusBadRequest},
		{name: "already exists", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, model.Role) (string, error) {
			return "", domainErrors.ErrAlreadyExists
		}}, status: http.StatusConflict},
		{name: "internal", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, model.Role) (string, error) {
			return "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(tt.facade).Register, nil, tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusUnauthorized},
		{name: "internal", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
			return "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(tt.facade).Login, nil, tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestWalletHandlerSummary(t *testing.T) {
	facade := testhelpers.WalletFacadeStub{AccountFn: func(context.Context, int64) (*model.Account, error) {
		return &model.Account{UserID: 1, Balance: 2500, NumOrders: 3, TotalSpent: 7100, VIP: true}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/balance", "/balance", NewWalletHandler(facade).Summary, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.AccountResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Balance != 25 || decoded.TotalSpent != 71 || !decoded.VIP {
		t.Fatalf("unexpected summary: %+v", decoded)
	}
}

func TestWalletHandlerTopUp(t *testing.T) {
	var credited model.Money
	facade := testhelpers.WalletFacadeStub{TopUpFn: func(ctx context.Context, userID int64, amount model.Money) error {
		credited = amount
		return nil
	}}
	body := []byte(`{"amount":12.34}`)
	resp := performRequest(t, http.MethodPost, "/topup", "/topup", NewWalletHandler(facade).TopUp, asUser(1), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if credited != 1234 {
		t.Fatalf("expected 1234 cents credited, got %d", credited)
	}
}

func TestWalletHandlerTopUpFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.WalletFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("oops"), status: http.StatusBadRequest},
		{name: "invalid amount", body: []byte(`{"amount":-1}`), facade: testhelpers.WalletFacadeStub{TopUpFn: func(context.Context, int64, model.Money) error {
			return domainErrors.ErrInvalidAmount
		}}, status: http.StatusUnprocessableEntity},
		{name: "internal", body: []byte(`{"amount":10}`), facade: testhelpers.WalletFacadeStub{TopUpFn: func(context.Context, int64, model.Money) error {
			return errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/topup", "/topup", NewWalletHandler(tt.facade).TopUp, asUser(1), tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerPlace(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{PlaceOrderFn: func(ctx context.Context, customerID int64, items []usecase.CartItem, address, promoCode string) (*model.Order, error) {
		if len(items) != 2 || items[0].DishID != 10 || items[1].Quantity != 3 {
			t.Fatalf("unexpected items passed to facade: %+v", items)
		}
		if promoCode != "WELCOME" {
			t.Fatalf("unexpected promo code %q", promoCode)
		}
		return &model.Order{ID: 7, CustomerID: customerID, Status: model.OrderStatusPending, TotalPrice: 2367, DeliveryAddress: address}, nil
	}}
	body := []byte(`{"items":[{"dish_id":10,"quantity":1},{"dish_id":11,"quantity":3}],"address":"12 Main St","promo_code":"WELCOME"}`)
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(facade).Place, asUser(1), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var decoded dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.ID != 7 || decoded.TotalPrice != 23.67 {
		t.Fatalf("unexpected order response: %+v", decoded)
	}
}

func TestOrderHandlerPlaceFailures(t *testing.T) {
	placeErr := func(err error) testhelpers.OrderFacadeStub {
		return testhelpers.OrderFacadeStub{PlaceOrderFn: func(context.Context, int64, []usecase.CartItem, string, string) (*model.Order, error) {
			return nil, err
		}}
	}
	body := []byte(`{"items":[{"dish_id":1,"quantity":1}],"address":"12 Main St"}`)
	tests := []struct {
		name   string
		facade testhelpers.OrderFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("oops"), status: http.StatusBadRequest},
		{name: "empty cart", body: body, facade: placeErr(domainErrors.ErrEmptyCart), status: http.StatusUnprocessableEntity},
		{name: "bad address", body: body, facade: placeErr(domainErrors.ErrInvalidAddress), status: http.StatusUnprocessableEntity},
		{name: "mixed restaurants", body: body, facade: placeErr(domainErrors.ErrMixedRestaurants), status: http.StatusUnprocessableEntity},
		{name: "bad promo", body: body, facade: placeErr(domainErrors.ErrInvalidPromoCode), status: http.StatusUnprocessableEntity},
		{name: "insufficient funds", body: body, facade: placeErr(domainErrors.ErrInsufficientFunds), status: http.StatusPaymentRequired},
		{name: "internal", body: body, facade: placeErr(errors.New("boom")), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(tt.facade).Place, asUser(1), tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerList(t *testing.T) {
	orders := []model.Order{{ID: 1, Status: model.OrderStatusPending}, {ID: 2, Status: model.OrderStatusDelivered}}
	facade := testhelpers.OrderFacadeStub{OrdersFn: func(context.Context, int64) ([]model.Order, error) {
		return orders, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders", "/orders", NewOrderHandler(facade).List, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded []dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != len(orders) {
		t.Fatalf("expected %d orders, got %d", len(orders), len(decoded))
	}
}

func TestOrderHandlerListEmpty(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/orders", "/orders", NewOrderHandler(testhelpers.OrderFacadeStub{}).List, asUser(1), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
}

func TestOrderHandlerGet(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{OrderFn: func(ctx context.Context, orderID int64) (*model.Order, error) {
		return &model.Order{ID: orderID, CustomerID: 1, Status: model.OrderStatusPending}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/5", NewOrderHandler(facade).Get, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/5", NewOrderHandler(facade).Get, asUser(2), nil, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another customer, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/5", NewOrderHandler(testhelpers.OrderFacadeStub{}).Get, asUser(1), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown order, got %d", resp.Code)
	}
}

func TestKitchenHandlerQueue(t *testing.T) {
	facade := testhelpers.KitchenFacadeStub{KitchenQueueFn: func(context.Context, int) ([]model.Order, error) {
		return []model.Order{{ID: 1, Status: model.OrderStatusPending}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders", "/orders", NewKitchenHandler(facade).Queue, asUser(3), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/orders", "/orders", NewKitchenHandler(testhelpers.KitchenFacadeStub{}).Queue, asUser(3), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for empty queue, got %d", resp.Code)
	}
}

func TestKitchenHandlerClaim(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "claimed", err: nil, status: http.StatusOK},
		{name: "missing", err: domainErrors.ErrNotFound, status: http.StatusNotFound},
		{name: "lost race", err: domainErrors.ErrAlreadyClaimed, status: http.StatusConflict},
		{name: "internal", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.KitchenFacadeStub{ClaimOrderFn: func(context.Context, int64, int64) error {
				return tt.err
			}}
			resp := performRequest(t, http.MethodPost, "/orders/:id/claim", "/orders/9/claim", NewKitchenHandler(facade).Claim, asUser(3), nil, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestKitchenHandlerReady(t *testing.T) {
	facade := testhelpers.KitchenFacadeStub{MarkReadyFn: func(ctx context.Context, orderID, chefID int64) (*model.DeliveryRequest, error) {
		return &model.DeliveryRequest{ID: 4, OrderID: orderID, Status: model.DeliveryRequestOpen}, nil
	}}
	resp := performRequest(t, http.MethodPost, "/orders/:id/ready", "/orders/9/ready", NewKitchenHandler(facade).Ready, asUser(3), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.DeliveryRequestResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.OrderID != 9 || decoded.Status != "open" {
		t.Fatalf("unexpected request response: %+v", decoded)
	}

	wrongChef := testhelpers.KitchenFacadeStub{MarkReadyFn: func(context.Context, int64, int64) (*model.DeliveryRequest, error) {
		return nil, domainErrors.ErrAlreadyClaimed
	}}
	resp = performRequest(t, http.MethodPost, "/orders/:id/ready", "/orders/9/ready", NewKitchenHandler(wrongChef).Ready, asUser(3), nil, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another chef's order, got %d", resp.Code)
	}
}

func TestDeliveryHandlerOpenRequests(t *testing.T) {
	facade := testhelpers.CourierFacadeStub{OpenRequestsFn: func(context.Context, int) ([]model.DeliveryRequest, error) {
		return []model.DeliveryRequest{{ID: 1, OrderID: 2, Status: model.DeliveryRequestOpen}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/requests", "/requests", NewDeliveryHandler(facade).OpenRequests, asUser(4), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestDeliveryHandlerBid(t *testing.T) {
	var gotPrice model.Money
	facade := testhelpers.CourierFacadeStub{SubmitBidFn: func(ctx context.Context, requestID, driverID int64, price model.Money) (*model.Bid, error) {
		gotPrice = price
		return &model.Bid{ID: 1, RequestID: requestID, DriverID: driverID, Price: price, Status: model.BidStatusPending}, nil
	}}
	body := []byte(`{"price":4.50}`)
	resp := performRequest(t, http.MethodPost, "/requests/:id/bids", "/requests/3/bids", NewDeliveryHandler(facade).Bid, asUser(4), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if gotPrice != 450 {
		t.Fatalf("expected 450 cents, got %d", gotPrice)
	}
}

func TestDeliveryHandlerBidFailures(t *testing.T) {
	bidErr := func(err error) testhelpers.CourierFacadeStub {
		return testhelpers.CourierFacadeStub{SubmitBidFn: func(context.Context, int64, int64, model.Money) (*model.Bid, error) {
			return nil, err
		}}
	}
	body := []byte(`{"price":4.50}`)
	tests := []struct {
		name   string
		facade testhelpers.CourierFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("oops"), status: http.StatusBadRequest},
		{name: "bad price", body: []byte(`{"price":-1}`), facade: bidErr(domainErrors.ErrInvalidAmount), status: http.StatusUnprocessableEntity},
		{name: "missing request", body: body, facade: bidErr(domainErrors.ErrNotFound), status: http.StatusNotFound},
		{name: "duplicate", body: body, facade: bidErr(domainErrors.ErrAlreadyExists), status: http.StatusConflict},
		{name: "resolved", body: body, facade: bidErr(domainErrors.ErrAlreadyResolved), status: http.StatusConflict},
		{name: "internal", body: body, facade: bidErr(errors.New("boom")), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/requests/:id/bids", "/requests/3/bids", NewDeliveryHandler(tt.facade).Bid, asUser(4), tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestDeliveryHandlerAdvance(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "advanced", err: nil, status: http.StatusOK},
		{name: "missing", err: domainErrors.ErrNotFound, status: http.StatusNotFound},
		{name: "not assigned", err: domainErrors.ErrNotAssignedDriver, status: http.StatusForbidden},
		{name: "out of order", err: domainErrors.ErrInvalidTransition, status: http.StatusConflict},
		{name: "internal", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.CourierFacadeStub{AdvanceTransportFn: func(context.Context, int64, int64, model.OrderStatus) error {
				return tt.err
			}}
			body := []byte(`{"status":"picked_up"}`)
			resp := performRequest(t, http.MethodPost, "/orders/:id/status", "/orders/5/status", NewDeliveryHandler(facade).Advance, asUser(4), body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestManagerHandlerBids(t *testing.T) {
	facade := testhelpers.ManagerFacadeStub{RequestBidsFn: func(context.Context, int64) ([]model.Bid, error) {
		return []model.Bid{{ID: 1, Price: 400, Status: model.BidStatusPending}, {ID: 2, Price: 500, Status: model.BidStatusPending}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/requests/:id/bids", "/requests/3/bids", NewManagerHandler(facade).Bids, asUser(5), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded []dto.BidResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Price != 4 {
		t.Fatalf("unexpected bids: %+v", decoded)
	}
}

func TestManagerHandlerApprove(t *testing.T) {
	approveErr := func(err error) testhelpers.ManagerFacadeStub {
		return testhelpers.ManagerFacadeStub{ApproveBidFn: func(context.Context, int64, int64, string) (*model.Bid, error) {
			return nil, err
		}}
	}
	body := []byte(`{"bid_id":2,"memo":"closest driver"}`)
	tests := []struct {
		name   string
		facade testhelpers.ManagerFacadeStub
		body   []byte
		status int
	}{
		{name: "approved", body: body, status: http.StatusOK},
		{name: "bad json", body: []byte("oops"), status: http.StatusBadRequest},
		{name: "missing", body: body, facade: approveErr(domainErrors.ErrNotFound), status: http.StatusNotFound},
		{name: "resolved", body: body, facade: approveErr(domainErrors.ErrAlreadyResolved), status: http.StatusConflict},
		{name: "memo required", body: []byte(`{"bid_id":2}`), facade: approveErr(domainErrors.ErrMemoRequired), status: http.StatusUnprocessableEntity},
		{name: "internal", body: body, facade: approveErr(errors.New("boom")), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/requests/:id/approve", "/requests/3/approve", NewManagerHandler(tt.facade).Approve, asUser(5), tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestManagerHandlerReject(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/bids/:id/reject", "/bids/2/reject", NewManagerHandler(testhelpers.ManagerFacadeStub{}).Reject, asUser(5), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	facade := testhelpers.ManagerFacadeStub{RejectBidFn: func(context.Context, int64) error {
		return domainErrors.ErrAlreadyResolved
	}}
	resp = performRequest(t, http.MethodPost, "/bids/:id/reject", "/bids/2/reject", NewManagerHandler(facade).Reject, asUser(5), nil, nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for settled bid, got %d", resp.Code)
	}
}

func TestManagerHandlerSetVIP(t *testing.T) {
	var gotVIP bool
	facade := testhelpers.ManagerFacadeStub{SetVIPFn: func(ctx context.Context, userID int64, vip bool) error {
		gotVIP = vip
		return nil
	}}
	body := []byte(`{"vip":true}`)
	resp := performRequest(t, http.MethodPost, "/customers/:id/vip", "/customers/7/vip", NewManagerHandler(facade).SetVIP, asUser(5), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !gotVIP {
		t.Fatal("expected vip flag to reach facade")
	}
}

func TestManagerHandlerGrantPromo(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.ManagerFacadeStub
		body   []byte
		status int
	}{
		{name: "granted", body: []byte(`{"code":"WELCOME"}`), status: http.StatusOK},
		{name: "bad json", body: []byte("oops"), status: http.StatusBadRequest},
		{name: "empty code", body: []byte(`{"code":""}`), facade: testhelpers.ManagerFacadeStub{GrantPromoFn: func(context.Context, string, int64) error {
			return domainErrors.ErrInvalidPromoCode
		}}, status: http.StatusUnprocessableEntity},
		{name: "duplicate", body: []byte(`{"code":"WELCOME"}`), facade: testhelpers.ManagerFacadeStub{GrantPromoFn: func(context.Context, string, int64) error {
			return domainErrors.ErrAlreadyExists
		}}, status: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/customers/:id/promo", "/customers/7/promo", NewManagerHandler(tt.facade).GrantPromo, asUser(5), tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestManagerHandlerResolveDispute(t *testing.T) {
	resolveErr := func(err error) testhelpers.ManagerFacadeStub {
		return testhelpers.ManagerFacadeStub{ResolveDisputeFn: func(context.Context, int64, string) error {
			return err
		}}
	}
	body := []byte(`{"action":"warning"}`)
	tests := []struct {
		name   string
		facade testhelpers.ManagerFacadeStub
		body   []byte
		status int
	}{
		{name: "resolved", body: body, status: http.StatusOK},
		{name: "bad action", body: []byte(`{"action":"shrug"}`), facade: resolveErr(domainErrors.ErrInvalidAction), status: http.StatusUnprocessableEntity},
		{name: "missing", body: body, facade: resolveErr(domainErrors.ErrNotFound), status: http.StatusNotFound},
		{name: "settled", body: body, facade: resolveErr(domainErrors.ErrAlreadyResolved), status: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/ratings/:id/resolve", "/ratings/8/resolve", NewManagerHandler(tt.facade).ResolveDispute, asUser(5), tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestRatingHandlerSubmit(t *testing.T) {
	facade := testhelpers.RatingFacadeStub{SubmitRatingFn: func(ctx context.Context, orderID, reviewerID, targetID int64, score int, reviewType, comment string) (*model.Rating, error) {
		if reviewerID != 1 || targetID != 3 || score != 5 {
			t.Fatalf("unexpected rating args: reviewer=%d target=%d score=%d", reviewerID, targetID, score)
		}
		return &model.Rating{ID: 1, OrderID: orderID, ReviewerID: reviewerID, TargetID: targetID, Score: score, ReviewType: model.ReviewCompliment, DisputeStatus: model.DisputeNone}, nil
	}}
	body := []byte(`{"order_id":9,"target_id":3,"score":5,"review_type":"compliment","comment":"great"}`)
	resp := performRequest(t, http.MethodPost, "/ratings", "/ratings", NewRatingHandler(facade).Submit, asUser(1), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
}

func TestRatingHandlerSubmitFailures(t *testing.T) {
	submitErr := func(err error) testhelpers.RatingFacadeStub {
		return testhelpers.RatingFacadeStub{SubmitRatingFn: func(context.Context, int64, int64, int64, int, string, string) (*model.Rating, error) {
			return nil, err
		}}
	}
	body := []byte(`{"order_id":9,"target_id":3,"score":5,"review_type":"compliment"}`)
	tests := []struct {
		name   string
		facade testhelpers.RatingFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("oops"), status: http.StatusBadRequest},
		{name: "bad score", body: []byte(`{"order_id":9,"target_id":3,"score":9,"review_type":"compliment"}`), facade: submitErr(domainErrors.ErrInvalidScore), status: http.StatusUnprocessableEntity},
		{name: "bad type", body: body, facade: submitErr(domainErrors.ErrInvalidReviewType), status: http.StatusUnprocessableEntity},
		{name: "self review", body: body, facade: submitErr(domainErrors.ErrSelfReview), status: http.StatusUnprocessableEntity},
		{name: "duplicate", body: body, facade: submitErr(domainErrors.ErrAlreadyReviewed), status: http.StatusConflict},
		{name: "internal", body: body, facade: submitErr(errors.New("boom")), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/ratings", "/ratings", NewRatingHandler(tt.facade).Submit, asUser(1), tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestRatingHandlerDispute(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/ratings/:id/dispute", "/ratings/8/dispute", NewRatingHandler(testhelpers.RatingFacadeStub{}).Dispute, asUser(3), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	facade := testhelpers.RatingFacadeStub{DisputeRatingFn: func(context.Context, int64) error {
		return domainErrors.ErrAlreadyResolved
	}}
	resp = performRequest(t, http.MethodPost, "/ratings/:id/dispute", "/ratings/8/dispute", NewRatingHandler(facade).Dispute, asUser(3), nil, nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for repeated dispute, got %d", resp.Code)
	}
}

func TestRatingHandlerPerformance(t *testing.T) {
	facade := testhelpers.RatingFacadeStub{PerformanceFn: func(context.Context, int64) (*model.Performance, error) {
		return &model.Performance{Average: 4.6, Count: 12, Grade: model.GradeReward}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/users/:id/performance", "/users/3/performance", NewRatingHandler(facade).Performance, asUser(5), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.PerformanceResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Grade != "reward" || decoded.Count != 12 {
		t.Fatalf("unexpected performance: %+v", decoded)
	}
}
