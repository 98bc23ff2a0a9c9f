package usecase

import (
	"context"
	"strings"

	"github.com/tabledash/tabledash/internal/adapter/catalog"
	domainErrors "github.com/tabledash/tabledash/internal/domain/errors"
	"github.com/tabledash/tabledash/internal/domain/model"
	"github.com/tabledash/tabledash/internal/domain/repository"
)

// CartItem is the raw checkout line submitted by a customer; the catalog
// supplies the price snapshot.
type CartItem struct {
	DishID   int64
	Quantity int
}

// OrderUseCase encapsulates checkout and the customer/kitchen order views.
type OrderUseCase struct {
	orders      repository.OrderRepository
	catalog     catalog.Client
	deliveryFee model.Money
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, catalogClient catalog.Client, deliveryFee model.Money) *OrderUseCase {
	return &OrderUseCase{orders: orders, catalog: catalogClient, deliveryFee: deliveryFee}
}

// Place validates the cart, snapshots dish prices from the catalog, and
// settles the order against the customer wallet.
func (u *OrderUseCase) Place(ctx context.Context, customerID int64, items []CartItem, address, promoCode string) (*model.Order, error) {
	if len(items) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}
	if strings.TrimSpace(address) == "" {
		return nil, domainErrors.ErrInvalidAddress
	}

	lines := make([]model.CartLine, 0, len(items))
	var restaurantID int64
	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, domainErrors.ErrInvalidAmount
		}
		dish, err := u.catalog.Fetch(ctx, item.DishID)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			restaurantID = dish.RestaurantID
		} else if dish.RestaurantID != restaurantID {
			return nil, domainErrors.ErrMixedRestaurants
		}
		lines = append(lines, model.CartLine{
			DishID:    dish.ID,
			Name:      dish.Name,
			Quantity:  item.Quantity,
			UnitPrice: dish.Price,
		})
	}

	return u.orders.Place(ctx, customerID, restaurantID, lines, address, strings.TrimSpace(promoCode), u.deliveryFee)
}

// ListByCustomer returns a customer's orders sorted by creation time.
func (u *OrderUseCase) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return u.orders.ListByCustomer(ctx, customerID)
}

// GetByID loads one order with its line items.
func (u *OrderUseCase) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// KitchenQueue returns unclaimed pending orders for the chef dashboard.
func (u *OrderUseCase) KitchenQueue(ctx context.Context, limit int) ([]model.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	return u.orders.ListPending(ctx, limit)
}
