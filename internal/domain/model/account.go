package model

// Account holds the spendable wallet balance and order statistics for a
// customer. Rows are created lazily: a customer without one has balance 0.
type Account struct {
	UserID     int64
	Balance    Money
	NumOrders  int
	TotalSpent Money
	VIP        bool
}
