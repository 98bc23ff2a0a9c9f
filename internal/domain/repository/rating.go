package repository

import (
	"context"

	"github.com/tabledash/tabledash/internal/domain/model"
)

// RatingRepository describes persistence for reviews and dispute resolution.
type RatingRepository interface {
	// Create inserts the rating and applies its counter side effects in one
	// transaction; a duplicate (order, reviewer, target) yields ErrAlreadyReviewed.
	Create(ctx context.Context, rating model.Rating) (*model.Rating, error)
	GetByID(ctx context.Context, ratingID int64) (*model.Rating, error)
	OpenDispute(ctx context.Context, ratingID int64) error
	ResolveDispute(ctx context.Context, ratingID int64, action model.ManagerAction) error
	Performance(ctx context.Context, userID int64) (*model.Performance, error)
}
