package dto

import (
	"time"

	"github.com/tabledash/tabledash/internal/domain/model"
)

// CartItemRequest is one line of a checkout payload.
type CartItemRequest struct {
	DishID   int64 `json:"dish_id"`
	Quantity int   `json:"quantity"`
}

// PlaceOrderRequest describes a checkout payload.
type PlaceOrderRequest struct {
	Items     []CartItemRequest `json:"items"`
	Address   string            `json:"address"`
	PromoCode string            `json:"promo_code"`
}

// OrderItemResponse is one priced line of an order.
type OrderItemResponse struct {
	DishID    int64   `json:"dish_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderResponse describes an order for API consumers.
type OrderResponse struct {
	ID              int64               `json:"id"`
	Status          string              `json:"status"`
	TotalPrice      float64             `json:"total_price"`
	DeliveryAddress string              `json:"delivery_address"`
	ChefID          *int64              `json:"chef_id,omitempty"`
	DriverID        *int64              `json:"driver_id,omitempty"`
	Items           []OrderItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

// NewOrderResponse converts a domain order into its API form.
func NewOrderResponse(order model.Order) OrderResponse {
	resp := OrderResponse{
		ID:              order.ID,
		Status:          string(order.Status),
		TotalPrice:      order.TotalPrice.Float64(),
		DeliveryAddress: order.DeliveryAddress,
		ChefID:          order.ChefID,
		DriverID:        order.DriverID,
		CreatedAt:       order.CreatedAt,
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			DishID:    item.DishID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.Float64(),
		})
	}
	return resp
}

// StatusRequest advances an assigned order along the transport states.
type StatusRequest struct {
	Status string `json:"status"`
}
