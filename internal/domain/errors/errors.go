package errors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidAmount      = errors.New("invalid amount")

	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrEmptyCart         = errors.New("empty cart")
	ErrInvalidPromoCode  = errors.New("invalid promo code")
	ErrMixedRestaurants  = errors.New("cart spans multiple restaurants")
	ErrInvalidAddress    = errors.New("invalid delivery address")

	ErrAlreadyClaimed    = errors.New("order already claimed")
	ErrMemoRequired      = errors.New("memo required for non-lowest bid")
	ErrAlreadyResolved   = errors.New("already resolved")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotAssignedDriver = errors.New("driver is not assigned to order")

	ErrAlreadyReviewed   = errors.New("already reviewed")
	ErrInvalidScore      = errors.New("invalid score")
	ErrInvalidReviewType = errors.New("invalid review type")
	ErrSelfReview        = errors.New("self review")
	ErrInvalidAction     = errors.New("invalid manager action")
)
