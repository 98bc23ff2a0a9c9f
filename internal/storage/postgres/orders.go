package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/tabledash/tabledash/internal/domain/errors"
	"github.com/tabledash/tabledash/internal/domain/model"
)

// Place settles a checkout. The promo redemption, the conditional debit and
// the order/item inserts share one transaction; the debit statement also
// advances num_orders and total_spent so the ledger can never show a debit
// without its order statistics or vice versa. The insufficient-funds warning
// is recorded after rollback, outside the transaction.
func (r *orderRepository) Place(ctx context.Context, customerID, restaurantID int64, lines []model.CartLine, address, promoCode string, deliveryFee model.Money) (*model.Order, error) {
	if len(lines) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}

	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		acc := model.Account{UserID: customerID}
		var balance, spent int64
		err := tx.QueryRow(ctx, `SELECT balance, num_orders, total_spent, vip FROM accounts WHERE user_id=$1 FOR UPDATE`, customerID).
			Scan(&balance, &acc.NumOrders, &spent, &acc.VIP)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		acc.Balance = model.Money(balance)
		acc.TotalSpent = model.Money(spent)

		promoApplied := false
		if promoCode != "" {
			tag, err := tx.Exec(ctx, `UPDATE promo_grants SET used=TRUE WHERE code=$1 AND customer_id=$2 AND NOT used`, promoCode, customerID)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 || !acc.VIP {
				return domainErrors.ErrInvalidPromoCode
			}
			promoApplied = true
		}

		quote := model.QuoteOrder(lines, acc.VIP, acc.NumOrders, promoApplied, deliveryFee)

		tag, err := tx.Exec(ctx, `UPDATE accounts
                                  SET balance = balance - $2, num_orders = num_orders + 1, total_spent = total_spent + $2
                                  WHERE user_id = $1 AND balance >= $2`, customerID, int64(quote.Total))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrInsufficientFunds
		}

		o := model.Order{
			CustomerID:      customerID,
			RestaurantID:    restaurantID,
			Status:          model.OrderStatusPending,
			TotalPrice:      quote.Total,
			DeliveryAddress: address,
		}
		err = tx.QueryRow(ctx, `INSERT INTO orders (customer_id, restaurant_id, status, total_price, delivery_address)
                                VALUES ($1, $2, $3, $4, $5)
                                RETURNING id, created_at, updated_at`,
			customerID, restaurantID, string(o.Status), int64(o.TotalPrice), address).
			Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return err
		}

		for _, l := range lines {
			item := model.OrderItem{OrderID: o.ID, DishID: l.DishID, Name: l.Name, Quantity: l.Quantity, UnitPrice: l.UnitPrice}
			err = tx.QueryRow(ctx, `INSERT INTO order_items (order_id, dish_id, name, quantity, unit_price)
                                    VALUES ($1, $2, $3, $4, $5) RETURNING id`,
				o.ID, l.DishID, l.Name, l.Quantity, int64(l.UnitPrice)).Scan(&item.ID)
			if err != nil {
				return err
			}
			o.Items = append(o.Items, item)
		}

		order = &o
		return nil
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrInsufficientFunds) {
			if _, wErr := r.storage.pool.Exec(ctx, `UPDATE users SET warnings = warnings + 1 WHERE id=$1`, customerID); wErr != nil {
				r.storage.logger.Error("record insufficient funds warning",
					slog.Int64("customer_id", customerID), slog.String("error", wErr.Error()))
			}
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	const query = `SELECT id, customer_id, restaurant_id, status, total_price, delivery_address, chef_id, driver_id, created_at, updated_at
                   FROM orders WHERE id=$1`
	o, err := scanOrder(r.storage.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		return nil, err
	}

	const itemsQuery = `SELECT id, order_id, dish_id, name, quantity, unit_price FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, itemsQuery, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		var price int64
		if err := rows.Scan(&item.ID, &item.OrderID, &item.DishID, &item.Name, &item.Quantity, &price); err != nil {
			return nil, err
		}
		item.UnitPrice = model.Money(price)
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	const query = `SELECT id, customer_id, restaurant_id, status, total_price, delivery_address, chef_id, driver_id, created_at, updated_at
                   FROM orders WHERE customer_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, customerID)
}

func (r *orderRepository) ListPending(ctx context.Context, limit int) ([]model.Order, error) {
	const query = `SELECT id, customer_id, restaurant_id, status, total_price, delivery_address, chef_id, driver_id, created_at, updated_at
                   FROM orders WHERE status='pending' AND chef_id IS NULL ORDER BY created_at LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrderRows(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Claim conditions the chef assignment on the column still being unset; a
// zero rows-affected result means another chef won the race.
func (r *orderRepository) Claim(ctx context.Context, orderID, chefID int64) error {
	const query = `UPDATE orders SET chef_id=$2, status=$3, updated_at=NOW()
                   WHERE id=$1 AND chef_id IS NULL AND status=$4`
	tag, err := r.storage.pool.Exec(ctx, query, orderID, chefID, string(model.OrderStatusInProgress), string(model.OrderStatusPending))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.storage.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id=$1)`, orderID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domainErrors.ErrNotFound
	}
	return domainErrors.ErrAlreadyClaimed
}

// MarkReady flips the claimed order to ready_for_pickup and opens its single
// delivery request. Re-running it for an already-ready order returns the
// existing request instead of creating a second one.
func (r *orderRepository) MarkReady(ctx context.Context, orderID, chefID int64) (*model.DeliveryRequest, error) {
	var request *model.DeliveryRequest
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE orders SET status=$3, updated_at=NOW()
                                  WHERE id=$1 AND chef_id=$2 AND status=$4`,
			orderID, chefID, string(model.OrderStatusReadyForPickup), string(model.OrderStatusInProgress))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			var status string
			var chef *int64
			err := tx.QueryRow(ctx, `SELECT status, chef_id FROM orders WHERE id=$1`, orderID).Scan(&status, &chef)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return domainErrors.ErrNotFound
				}
				return err
			}
			if chef == nil || *chef != chefID {
				return domainErrors.ErrAlreadyClaimed
			}
			if model.OrderStatus(status) != model.OrderStatusReadyForPickup {
				return domainErrors.ErrInvalidTransition
			}
		}

		var restaurantID int64
		var address string
		err = tx.QueryRow(ctx, `SELECT restaurant_id, delivery_address FROM orders WHERE id=$1`, orderID).Scan(&restaurantID, &address)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `INSERT INTO delivery_requests (order_id, restaurant_id, address)
                                   VALUES ($1, $2, $3) ON CONFLICT (order_id) DO NOTHING`,
			orderID, restaurantID, address); err != nil {
			return err
		}

		req, err := scanDeliveryRequest(tx.QueryRow(ctx, `SELECT id, order_id, restaurant_id, address, status, driver_id, created_at
                                                          FROM delivery_requests WHERE order_id=$1`, orderID))
		if err != nil {
			return err
		}
		request = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// AdvanceTransport moves an order one transport step, conditioned on both the
// current status and the assigned driver.
func (r *orderRepository) AdvanceTransport(ctx context.Context, orderID, driverID int64, from, to model.OrderStatus) error {
	const query = `UPDATE orders SET status=$4, updated_at=NOW()
                   WHERE id=$1 AND driver_id=$2 AND status=$3`
	tag, err := r.storage.pool.Exec(ctx, query, orderID, driverID, string(from), string(to))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var status string
	var driver *int64
	err = r.storage.pool.QueryRow(ctx, `SELECT status, driver_id FROM orders WHERE id=$1`, orderID).Scan(&status, &driver)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		return err
	}
	if driver == nil || *driver != driverID {
		return domainErrors.ErrNotAssignedDriver
	}
	return domainErrors.ErrInvalidTransition
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	o, err := scanOrderRows(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func scanOrderRows(row rowScanner) (*model.Order, error) {
	var o model.Order
	var status string
	var price int64
	if err := row.Scan(&o.ID, &o.CustomerID, &o.RestaurantID, &status, &price, &o.DeliveryAddress, &o.ChefID, &o.DriverID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Status = model.OrderStatus(status)
	o.TotalPrice = model.Money(price)
	return &o, nil
}
