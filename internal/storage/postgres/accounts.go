package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/tabledash/tabledash/internal/domain/errors"
	"github.com/tabledash/tabledash/internal/domain/model"
)

func (r *accountRepository) Get(ctx context.Context, userID int64) (*model.Account, error) {
	const query = `SELECT balance, num_orders, total_spent, vip FROM accounts WHERE user_id=$1`
	acc := model.Account{UserID: userID}
	var balance, spent int64
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&balance, &acc.NumOrders, &spent, &acc.VIP)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// lazily initialized account: absent row reads as zero
			return &acc, nil
		}
		return nil, err
	}
	acc.Balance = model.Money(balance)
	acc.TotalSpent = model.Money(spent)
	return &acc, nil
}

func (r *accountRepository) Credit(ctx context.Context, userID int64, amount model.Money) error {
	const query = `INSERT INTO accounts (user_id, balance)
                   VALUES ($1, $2)
                   ON CONFLICT (user_id) DO UPDATE SET balance = accounts.balance + EXCLUDED.balance`
	if _, err := r.storage.pool.Exec(ctx, query, userID, int64(amount)); err != nil {
		return err
	}
	return nil
}

func (r *accountRepository) SetVIP(ctx context.Context, userID int64, vip bool) error {
	const query = `INSERT INTO accounts (user_id, vip)
                   VALUES ($1, $2)
                   ON CONFLICT (user_id) DO UPDATE SET vip = EXCLUDED.vip`
	if _, err := r.storage.pool.Exec(ctx, query, userID, vip); err != nil {
		return err
	}
	return nil
}

// GrantPromo issues a single-use promo code to a customer.
func (r *accountRepository) GrantPromo(ctx context.Context, code string, customerID int64) error {
	const query = `INSERT INTO promo_grants (code, customer_id) VALUES ($1, $2)`
	if _, err := r.storage.pool.Exec(ctx, query, code, customerID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}
