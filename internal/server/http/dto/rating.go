package dto

import (
	"time"

	"github.com/tabledash/tabledash/internal/domain/model"
)

// RatingRequest submits a review about another order participant.
type RatingRequest struct {
	OrderID    int64  `json:"order_id"`
	TargetID   int64  `json:"target_id"`
	Score      int    `json:"score"`
	ReviewType string `json:"review_type"`
	Comment    string `json:"comment"`
}

// RatingResponse describes a stored review.
type RatingResponse struct {
	ID            int64     `json:"id"`
	OrderID       int64     `json:"order_id"`
	ReviewerID    int64     `json:"reviewer_id"`
	TargetID      int64     `json:"target_id"`
	Score         int       `json:"score"`
	ReviewType    string    `json:"review_type"`
	Comment       string    `json:"comment,omitempty"`
	DisputeStatus string    `json:"dispute_status"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewRatingResponse converts a domain rating into its API form.
func NewRatingResponse(rating model.Rating) RatingResponse {
	return RatingResponse{
		ID:            rating.ID,
		OrderID:       rating.OrderID,
		ReviewerID:    rating.ReviewerID,
		TargetID:      rating.TargetID,
		Score:         rating.Score,
		ReviewType:    string(rating.ReviewType),
		Comment:       rating.Comment,
		DisputeStatus: string(rating.DisputeStatus),
		CreatedAt:     rating.CreatedAt,
	}
}

// ResolveDisputeRequest records a manager's verdict on a disputed rating.
type ResolveDisputeRequest struct {
	Action string `json:"action"`
}

// PerformanceResponse summarises a participant's rating history.
type PerformanceResponse struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
	Grade   string  `json:"grade"`
}
