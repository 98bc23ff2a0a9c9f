package dto

// AccountResponse summarises the customer wallet.
type AccountResponse struct {
	Balance    float64 `json:"balance"`
	NumOrders  int     `json:"num_orders"`
	TotalSpent float64 `json:"total_spent"`
	VIP        bool    `json:"vip"`
}

// TopUpRequest describes a wallet top-up payload.
type TopUpRequest struct {
	Amount float64 `json:"amount"`
}

// VIPRequest toggles the VIP flag on a customer account.
type VIPRequest struct {
	VIP bool `json:"vip"`
}

// PromoGrantRequest issues a single-use promo code to a customer.
type PromoGrantRequest struct {
	Code string `json:"code"`
}
