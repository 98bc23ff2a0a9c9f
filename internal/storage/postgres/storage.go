package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tabledash/tabledash/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on; tests swap in
// a pgxmock pool through it.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type accountRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type deliveryRepository struct {
	storage *Storage
}

type ratingRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Accounts() repository.AccountRepository {
	return &accountRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Deliveries() repository.DeliveryRepository {
	return &deliveryRepository{storage: s}
}

func (s *Storage) Ratings() repository.RatingRepository {
	return &ratingRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL,
            warnings INT NOT NULL DEFAULT 0,
            low_ratings INT NOT NULL DEFAULT 0,
            high_ratings INT NOT NULL DEFAULT 0,
            feedback_points INT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS accounts (
            user_id BIGINT PRIMARY KEY REFERENCES users(id),
            balance BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
            num_orders INT NOT NULL DEFAULT 0,
            total_spent BIGINT NOT NULL DEFAULT 0,
            vip BOOLEAN NOT NULL DEFAULT FALSE
        )`,
		`CREATE TABLE IF NOT EXISTS promo_grants (
            code TEXT PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES users(id),
            used BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES users(id),
            restaurant_id BIGINT NOT NULL,
            status TEXT NOT NULL,
            total_price BIGINT NOT NULL,
            delivery_address TEXT NOT NULL,
            chef_id BIGINT REFERENCES users(id),
            driver_id BIGINT REFERENCES users(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            dish_id BIGINT NOT NULL,
            name TEXT NOT NULL,
            quantity INT NOT NULL,
            unit_price BIGINT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS delivery_requests (
            id SERIAL PRIMARY KEY,
            order_id BIGINT UNIQUE NOT NULL REFERENCES orders(id),
            restaurant_id BIGINT NOT NULL,
            address TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'open',
            driver_id BIGINT REFERENCES users(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS bids (
            id SERIAL PRIMARY KEY,
            request_id BIGINT NOT NULL REFERENCES delivery_requests(id),
            driver_id BIGINT NOT NULL REFERENCES users(id),
            price BIGINT NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            memo TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE (request_id, driver_id)
        )`,
		`CREATE TABLE IF NOT EXISTS ratings (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            reviewer_id BIGINT NOT NULL REFERENCES users(id),
            target_id BIGINT NOT NULL REFERENCES users(id),
            score INT NOT NULL,
            review_type TEXT NOT NULL,
            comment TEXT NOT NULL DEFAULT '',
            dispute_status TEXT NOT NULL DEFAULT 'none',
            manager_action TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE (order_id, reviewer_id, target_id)
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_bids_one_accepted ON bids(request_id) WHERE status = 'accepted'`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
		`CREATE INDEX IF NOT EXISTS idx_bids_request ON bids(request_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_target ON ratings(target_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
