package dto

import (
	"time"

	"github.com/tabledash/tabledash/internal/domain/model"
)

// DeliveryRequestResponse describes a delivery request awaiting a driver.
type DeliveryRequestResponse struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	Address   string    `json:"address"`
	Status    string    `json:"status"`
	DriverID  *int64    `json:"driver_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDeliveryRequestResponse converts a domain request into its API form.
func NewDeliveryRequestResponse(req model.DeliveryRequest) DeliveryRequestResponse {
	return DeliveryRequestResponse{
		ID:        req.ID,
		OrderID:   req.OrderID,
		Address:   req.Address,
		Status:    string(req.Status),
		DriverID:  req.DriverID,
		CreatedAt: req.CreatedAt,
	}
}

// BidRequest is a driver's proposed delivery price.
type BidRequest struct {
	Price float64 `json:"price"`
}

// BidResponse describes a bid for API consumers.
type BidResponse struct {
	ID        int64     `json:"id"`
	RequestID int64     `json:"request_id"`
	DriverID  int64     `json:"driver_id"`
	Price     float64   `json:"price"`
	Status    string    `json:"status"`
	Memo      string    `json:"memo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBidResponse converts a domain bid into its API form.
func NewBidResponse(bid model.Bid) BidResponse {
	return BidResponse{
		ID:        bid.ID,
		RequestID: bid.RequestID,
		DriverID:  bid.DriverID,
		Price:     bid.Price.Float64(),
		Status:    string(bid.Status),
		Memo:      bid.Memo,
		CreatedAt: bid.CreatedAt,
	}
}

// ApproveBidRequest accepts one bid, optionally explaining a non-lowest pick.
type ApproveBidRequest struct {
	BidID int64  `json:"bid_id"`
	Memo  string `json:"memo"`
}
