package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/tabledash/tabledash/internal/domain/errors"
	"github.com/tabledash/tabledash/internal/domain/model"
	"github.com/tabledash/tabledash/internal/domain/repository"
)

// RatingUseCase validates reviews before persisting them and exposes the
// dispute and performance flows.
type RatingUseCase struct {
	ratings repository.RatingRepository
}

// NewRatingUseCase constructs RatingUseCase.
func NewRatingUseCase(ratings repository.RatingRepository) *RatingUseCase {
	return &RatingUseCase{ratings: ratings}
}

// Submit records a review from one order participant about another.
func (u *RatingUseCase) Submit(ctx context.Context, orderID, reviewerID, targetID int64, score int, reviewType string, comment string) (*model.Rating, error) {
	if score < 1 || score > 5 {
		return nil, domainErrors.ErrInvalidScore
	}
	rt := model.ReviewType(reviewType)
	if rt != model.ReviewCompliment && rt != model.ReviewComplaint {
		return nil, domainErrors.ErrInvalidReviewType
	}
	if reviewerID == targetID {
		return nil, domainErrors.ErrSelfReview
	}
	return u.ratings.Create(ctx, model.Rating{
		OrderID:    orderID,
		ReviewerID: reviewerID,
		TargetID:   targetID,
		Score:      score,
		ReviewType: rt,
		Comment:    strings.TrimSpace(comment),
	})
}

// Dispute lets the rated participant contest a review once.
func (u *RatingUseCase) Dispute(ctx context.Context, ratingID int64) error {
	return u.ratings.OpenDispute(ctx, ratingID)
}

// Resolve closes a pending dispute with a manager's verdict.
func (u *RatingUseCase) Resolve(ctx context.Context, ratingID int64, action string) error {
	parsed, ok := model.ParseManagerAction(action)
	if !ok {
		return domainErrors.ErrInvalidAction
	}
	return u.ratings.ResolveDispute(ctx, ratingID, parsed)
}

// Performance summarises a participant's rating history.
func (u *RatingUseCase) Performance(ctx context.Context, userID int64) (*model.Performance, error) {
	return u.ratings.Performance(ctx, userID)
}
