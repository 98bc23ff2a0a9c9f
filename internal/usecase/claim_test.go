package usecase_test

import (
	"context"
	"testing"

	domainErrors "github.com/tabledash/tabledash/internal/domain/errors"
	"github.com/tabledash/tabledash/internal/domain/model"
	testhelpers "github.com/tabledash/tabledash/internal/test"
	"github.com/tabledash/tabledash/internal/usecase"
)

func TestClaimUseCaseClaimOrder(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	uc := usecase.NewClaimUseCase(orders, &testhelpers.DeliveryRepositoryStub{})

	if err := uc.ClaimOrder(context.Background(), 9, 3); err != nil {
		t.Fatalf("claim returned error: %v", err)
	}
	if len(orders.Claims) != 1 || orders.Claims[0] != 9 {
		t.Fatalf("expected claim for order 9, got %+v", orders.Claims)
	}
}

func TestClaimUseCaseSubmitBid(t *testing.T) {
	deliveries := &testhelpers.DeliveryRepositoryStub{}
	uc := usecase.NewClaimUseCase(&testhelpers.OrderRepositoryStub{}, deliveries)
	ctx := context.Background()

	bid, err := uc.SubmitBid(ctx, 3, 4, 450)
	if err != nil {
		t.Fatalf("submit returned error: %v", err)
	}
	if bid.Price != 450 || bid.Status != model.BidStatusPending {
		t.Fatalf("unexpected bid %+v", bid)
	}

	if _, err := uc.SubmitBid(ctx, 3, 4, 0); err != domainErrors.ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount for zero price, got %v", err)
	}
	if _, err := uc.SubmitBid(ctx, 3, 4, -50); err != domainErrors.ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount for negative price, got %v", err)
	}
}

func TestClaimUseCaseApproveBidTrimsMemo(t *testing.T) {
	deliveries := &testhelpers.DeliveryRepositoryStub{}
	uc := usecase.NewClaimUseCase(&testhelpers.OrderRepositoryStub{}, deliveries)

	if _, err := uc.ApproveBid(context.Background(), 3, 2, "  closest driver  "); err != nil {
		t.Fatalf("approve returned error: %v", err)
	}
	if len(deliveries.Approvals) != 1 || deliveries.Approvals[0].Memo != "closest driver" {
		t.Fatalf("expected trimmed memo, got %+v", deliveries.Approvals)
	}
}

func TestClaimUseCaseOpenRequestsDefaultLimit(t *testing.T) {
	var gotLimit int
	deliveries := &testhelpers.DeliveryRepositoryStub{ListOpenFn: func(ctx context.Context, limit int) ([]model.DeliveryRequest, error) {
		gotLimit = limit
		return nil, nil
	}}
	uc := usecase.NewClaimUseCase(&testhelpers.OrderRepositoryStub{}, deliveries)

	if _, err := uc.OpenRequests(context.Background(), 0); err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if gotLimit != 50 {
		t.Fatalf("expected default limit 50, got %d", gotLimit)
	}
}

func TestClaimUseCaseAdvanceTransport(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	uc := usecase.NewClaimUseCase(orders, &testhelpers.DeliveryRepositoryStub{})
	ctx := context.Background()

	steps := []struct {
		to   model.OrderStatus
		from model.OrderStatus
	}{
		{to: model.OrderStatusPickedUp, from: model.OrderStatusAccepted},
		{to: model.OrderStatusInTransit, from: model.OrderStatusPickedUp},
		{to: model.OrderStatusDelivered, from: model.OrderStatusInTransit},
	}
	for _, step := range steps {
		if err := uc.AdvanceTransport(ctx, 5, 4, step.to); err != nil {
			t.Fatalf("advance to %s returned error: %v", step.to, err)
		}
	}
	if len(orders.TransportCalls) != len(steps) {
		t.Fatalf("expected %d transitions, got %d", len(steps), len(orders.TransportCalls))
	}
	for i, step := range steps {
		call := orders.TransportCalls[i]
		if call.From != step.from || call.To != step.to {
			t.Fatalf("unexpected transition %+v, want %s -> %s", call, step.from, step.to)
		}
	}
}

func TestClaimUseCaseAdvanceTransportRejectsNonTransportStates(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	uc := usecase.NewClaimUseCase(orders, &testhelpers.DeliveryRepositoryStub{})
	ctx := context.Background()

	for _, to := range []model.OrderStatus{model.OrderStatusPending, model.OrderStatusInProgress, model.OrderStatusReadyForPickup, model.OrderStatusAccepted, "bogus"} {
		if err := uc.AdvanceTransport(ctx, 5, 4, to); err != domainErrors.ErrInvalidTransition {
			t.Fatalf("expected ErrInvalidTransition for %q, got %v", to, err)
		}
	}
	if len(orders.TransportCalls) != 0 {
		t.Fatalf("rejected transitions must not reach the repository: %+v", orders.TransportCalls)
	}
}
