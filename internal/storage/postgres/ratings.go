package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/tabledash/tabledash/internal/domain/errors"
	"github.com/tabledash/tabledash/internal/domain/model"
)

// Create inserts the review and folds its counter side effects into the same
// transaction. The (order, reviewer, target) uniqueness lives in the schema,
// so a lost duplicate race surfaces as a unique violation, never as a second row.
func (r *ratingRepository) Create(ctx context.Context, rating model.Rating) (*model.Rating, error) {
	var created *model.Rating
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var reviewerVIP bool
		err := tx.QueryRow(ctx, `SELECT vip FROM accounts WHERE user_id=$1`, rating.ReviewerID).Scan(&reviewerVIP)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		res := rating
		res.DisputeStatus = model.DisputeNone
		err = tx.QueryRow(ctx, `INSERT INTO ratings (order_id, reviewer_id, target_id, score, review_type, comment)
                                VALUES ($1, $2, $3, $4, $5, $6)
                                RETURNING id, created_at`,
			rating.OrderID, rating.ReviewerID, rating.TargetID, rating.Score, string(rating.ReviewType), rating.Comment).
			Scan(&res.ID, &res.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return domainErrors.ErrAlreadyReviewed
			}
			return err
		}

		var low, high, feedback int
		if rating.Score <= 2 {
			low = 1
		} else if rating.Score >= 4 {
			high = 1
		}
		if rating.ReviewType == model.ReviewCompliment {
			feedback = 1
			if reviewerVIP {
				feedback = 2
			}
		}
		if low != 0 || high != 0 || feedback != 0 {
			if _, err := tx.Exec(ctx, `UPDATE users
                                       SET low_ratings = low_ratings + $2,
                                           high_ratings = high_ratings + $3,
                                           feedback_points = feedback_points + $4
                                       WHERE id=$1`, rating.TargetID, low, high, feedback); err != nil {
				return err
			}
		}

		created = &res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *ratingRepository) GetByID(ctx context.Context, ratingID int64) (*model.Rating, error) {
	const query = `SELECT id, order_id, reviewer_id, target_id, score, review_type, comment, dispute_status, manager_action, created_at
                   FROM ratings WHERE id=$1`
	var rt model.Rating
	var reviewType, dispute, action string
	err := r.storage.pool.QueryRow(ctx, query, ratingID).
		Scan(&rt.ID, &rt.OrderID, &rt.ReviewerID, &rt.TargetID, &rt.Score, &reviewType, &rt.Comment, &dispute, &action, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	rt.ReviewType = model.ReviewType(reviewType)
	rt.DisputeStatus = model.DisputeStatus(dispute)
	rt.ManagerAction = model.ManagerAction(action)
	return &rt, nil
}

// OpenDispute moves none -> pending; a rating can be disputed only once.
func (r *ratingRepository) OpenDispute(ctx context.Context, ratingID int64) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE ratings SET dispute_status='pending' WHERE id=$1 AND dispute_status='none'`, ratingID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.storage.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ratings WHERE id=$1)`, ratingID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domainErrors.ErrNotFound
	}
	return domainErrors.ErrAlreadyResolved
}

// ResolveDispute closes a pending dispute; a warning action also increments
// the reviewed-about party's warning counter in the same transaction.
func (r *ratingRepository) ResolveDispute(ctx context.Context, ratingID int64, action model.ManagerAction) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var targetID int64
		err := tx.QueryRow(ctx, `UPDATE ratings SET dispute_status='resolved', manager_action=$2
                                 WHERE id=$1 AND dispute_status='pending'
                                 RETURNING target_id`, ratingID, string(action)).Scan(&targetID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				var exists bool
				if qErr := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ratings WHERE id=$1)`, ratingID).Scan(&exists); qErr != nil {
					return qErr
				}
				if !exists {
					return domainErrors.ErrNotFound
				}
				return domainErrors.ErrAlreadyResolved
			}
			return err
		}

		if action == model.ActionWarning {
			if _, err := tx.Exec(ctx, `UPDATE users SET warnings = warnings + 1 WHERE id=$1`, targetID); err != nil {
				return err
			}
		}
		return nil
	})
}

// Performance aggregates a participant's ratings into the display grade; with
// no ratings yet the grade is neutral.
func (r *ratingRepository) Performance(ctx context.Context, userID int64) (*model.Performance, error) {
	const query = `SELECT COALESCE(AVG(score), 0), COUNT(*) FROM ratings WHERE target_id=$1`
	var p model.Performance
	if err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&p.Average, &p.Count); err != nil {
		return nil, err
	}
	if p.Count == 0 {
		p.Grade = model.GradeNeutral
		return &p, nil
	}
	p.Grade = model.GradeFor(p.Average)
	return &p, nil
}
