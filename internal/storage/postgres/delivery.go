package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/tabledash/tabledash/internal/domain/errors"
	"github.com/tabledash/tabledash/internal/domain/model"
	"github.com/tabledash/tabledash/internal/domain/repository"
)

func (r *deliveryRepository) GetRequest(ctx context.Context, requestID int64) (*model.DeliveryRequest, error) {
	const query = `SELECT id, order_id, restaurant_id, address, status, driver_id, created_at
                   FROM delivery_requests WHERE id=$1`
	req, err := scanDeliveryRequest(r.storage.pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *deliveryRepository) ListOpen(ctx context.Context, limit int) ([]model.DeliveryRequest, error) {
	const query = `SELECT id, order_id, restaurant_id, address, status, driver_id, created_at
                   FROM delivery_requests WHERE status='open' ORDER BY created_at LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.DeliveryRequest
	for rows.Next() {
		req, err := scanDeliveryRequest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// PlaceBid inserts a pending bid only while the request is still open; the
// insert-select collapses the existence check and the insert into one statement.
func (r *deliveryRepository) PlaceBid(ctx context.Context, requestID, driverID int64, price model.Money) (*model.Bid, error) {
	const query = `INSERT INTO bids (request_id, driver_id, price)
                   SELECT $1, $2, $3 WHERE EXISTS (SELECT 1 FROM delivery_requests WHERE id=$1 AND status='open')
                   RETURNING id, created_at`
	bid := model.Bid{RequestID: requestID, DriverID: driverID, Price: price, Status: model.BidStatusPending}
	err := r.storage.pool.QueryRow(ctx, query, requestID, driverID, int64(price)).Scan(&bid.ID, &bid.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		if errors.Is(err, pgx.ErrNoRows) {
			if _, reqErr := r.GetRequest(ctx, requestID); reqErr != nil {
				return nil, reqErr
			}
			return nil, domainErrors.ErrAlreadyResolved
		}
		return nil, err
	}
	return &bid, nil
}

func (r *deliveryRepository) ListBids(ctx context.Context, requestID int64) ([]model.Bid, error) {
	const query = `SELECT id, request_id, driver_id, price, status, memo, created_at
                   FROM bids WHERE request_id=$1 ORDER BY price, id`
	rows, err := r.storage.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Bid
	for rows.Next() {
		b, err := scanBid(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Approve resolves the bid race for a delivery request. The request row is
// locked first, so two managers approving concurrently serialize on it; the
// chosen bid is accepted, every still-pending competitor rejected, and the
// request and order both pick up the winning driver before commit.
func (r *deliveryRepository) Approve(ctx context.Context, requestID, bidID int64, memo string) (*model.Bid, error) {
	var accepted *model.Bid
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		req, err := scanDeliveryRequest(tx.QueryRow(ctx, `SELECT id, order_id, restaurant_id, address, status, driver_id, created_at
                                                          FROM delivery_requests WHERE id=$1 FOR UPDATE`, requestID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if req.Status != model.DeliveryRequestOpen {
			return domainErrors.ErrAlreadyResolved
		}

		rows, err := tx.Query(ctx, `SELECT id, request_id, driver_id, price, status, memo, created_at
                                    FROM bids WHERE request_id=$1 AND status IN ('pending','rejected')
                                    ORDER BY price, id FOR UPDATE`, requestID)
		if err != nil {
			return err
		}
		var bids []model.Bid
		for rows.Next() {
			b, err := scanBid(rows)
			if err != nil {
				rows.Close()
				return err
			}
			bids = append(bids, *b)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		var chosen *model.Bid
		lowest := model.Money(0)
		for i := range bids {
			if i == 0 || bids[i].Price < lowest {
				lowest = bids[i].Price
			}
			if bids[i].ID == bidID {
				chosen = &bids[i]
			}
		}
		if chosen == nil {
			return domainErrors.ErrNotFound
		}
		if chosen.Status != model.BidStatusPending {
			return domainErrors.ErrAlreadyResolved
		}
		if chosen.Price > lowest && memo == "" {
			return domainErrors.ErrMemoRequired
		}

		if _, err := tx.Exec(ctx, `UPDATE bids SET status='accepted', memo=$2 WHERE id=$1`, bidID, memo); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE bids SET status='rejected' WHERE request_id=$1 AND status='pending' AND id<>$2`, requestID, bidID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE delivery_requests SET status='assigned', driver_id=$2 WHERE id=$1`, requestID, chosen.DriverID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `UPDATE orders SET status=$3, driver_id=$2, updated_at=NOW()
                                  WHERE id=$1 AND status=$4`,
			req.OrderID, chosen.DriverID, string(model.OrderStatusAccepted), string(model.OrderStatusReadyForPickup))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			// order drifted out of ready_for_pickup; roll the whole approval back
			return domainErrors.ErrAlreadyResolved
		}

		chosen.Status = model.BidStatusAccepted
		chosen.Memo = memo
		accepted = chosen
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

// RejectBid turns a pending bid down; resolved bids stay untouched.
func (r *deliveryRepository) RejectBid(ctx context.Context, bidID int64) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE bids SET status='rejected' WHERE id=$1 AND status='pending'`, bidID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.storage.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bids WHERE id=$1)`, bidID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domainErrors.ErrNotFound
	}
	return domainErrors.ErrAlreadyResolved
}

// FindAssignmentGaps surfaces half-applied assignment state. The approval
// transaction makes these impossible; the reconciler still watches for them.
func (r *deliveryRepository) FindAssignmentGaps(ctx context.Context, limit int) ([]repository.AssignmentGap, error) {
	const query = `SELECT dr.id, dr.order_id, 'assigned request but order has no driver' AS detail
                   FROM delivery_requests dr JOIN orders o ON o.id = dr.order_id
                   WHERE dr.status='assigned' AND o.driver_id IS NULL
                   UNION ALL
                   SELECT b.request_id, dr.order_id, 'accepted bid on open request' AS detail
                   FROM bids b JOIN delivery_requests dr ON dr.id = b.request_id
                   WHERE b.status='accepted' AND dr.status='open'
                   LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gaps []repository.AssignmentGap
	for rows.Next() {
		var g repository.AssignmentGap
		if err := rows.Scan(&g.RequestID, &g.OrderID, &g.Detail); err != nil {
			return nil, err
		}
		gaps = append(gaps, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return gaps, nil
}

func scanDeliveryRequest(row rowScanner) (*model.DeliveryRequest, error) {
	var req model.DeliveryRequest
	var status string
	if err := row.Scan(&req.ID, &req.OrderID, &req.RestaurantID, &req.Address, &status, &req.DriverID, &req.CreatedAt); err != nil {
		return nil, err
	}
	req.Status = model.DeliveryRequestStatus(status)
	return &req, nil
}

func scanBid(row rowScanner) (*model.Bid, error) {
	var b model.Bid
	var status string
	var price int64
	if err := row.Scan(&b.ID, &b.RequestID, &b.DriverID, &price, &status, &b.Memo, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.Price = model.Money(price)
	b.Status = model.BidStatus(status)
	return &b, nil
}
