package usecase

import (
	"go.uber.org/fx"

	"github.com/tabledash/tabledash/internal/adapter/catalog"
	"github.com/tabledash/tabledash/internal/config"
	"github.com/tabledash/tabledash/internal/domain/model"
	"github.com/tabledash/tabledash/internal/domain/repository"
)

func newOrderUseCase(cfg *config.Config, orders repository.OrderRepository, catalogClient catalog.Client) *OrderUseCase {
	return NewOrderUseCase(orders, catalogClient, model.Money(cfg.DeliveryFeeCents))
}

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewLedgerUseCase,
	newOrderUseCase,
	NewClaimUseCase,
	NewRatingUseCase,
)
