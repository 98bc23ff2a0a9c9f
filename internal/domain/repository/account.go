package repository

import (
	"context"

	"github.com/tabledash/tabledash/internal/domain/model"
)

// AccountRepository manages the customer wallet ledger. Debits happen only
// inside OrderRepository.Place so that a debit and its order are inseparable.
type AccountRepository interface {
	Get(ctx context.Context, userID int64) (*model.Account, error)
	Credit(ctx context.Context, userID int64, amount model.Money) error
	SetVIP(ctx context.Context, userID int64, vip bool) error
	GrantPromo(ctx context.Context, code string, customerID int64) error
}
