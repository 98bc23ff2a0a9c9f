package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/tabledash/tabledash/internal/domain/errors"
	"github.com/tabledash/tabledash/internal/domain/model"
	"github.com/tabledash/tabledash/internal/domain/repository"
)

// LedgerUseCase manages the customer wallet: balance reads, top-ups, and the
// manager-side VIP and promo grants. Debits never happen here; they are part
// of order settlement.
type LedgerUseCase struct {
	accounts repository.AccountRepository
}

// NewLedgerUseCase constructs LedgerUseCase.
func NewLedgerUseCase(accounts repository.AccountRepository) *LedgerUseCase {
	return &LedgerUseCase{accounts: accounts}
}

// Summary returns wallet balance and order statistics for a customer.
func (u *LedgerUseCase) Summary(ctx context.Context, userID int64) (*model.Account, error) {
	return u.accounts.Get(ctx, userID)
}

// TopUp adds funds to the customer wallet.
func (u *LedgerUseCase) TopUp(ctx context.Context, userID int64, amount model.Money) error {
	if amount <= 0 {
		return domainErrors.ErrInvalidAmount
	}
	return u.accounts.Credit(ctx, userID, amount)
}

// SetVIP flips the VIP flag on a customer account.
func (u *LedgerUseCase) SetVIP(ctx context.Context, userID int64, vip bool) error {
	return u.accounts.SetVIP(ctx, userID, vip)
}

// GrantPromo issues a single-use promo code to a customer.
func (u *LedgerUseCase) GrantPromo(ctx context.Context, code string, customerID int64) error {
	if strings.TrimSpace(code) == "" {
		return domainErrors.ErrInvalidPromoCode
	}
	return u.accounts.GrantPromo(ctx, code, customerID)
}
