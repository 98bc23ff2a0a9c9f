package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/tabledash/tabledash/internal/domain/errors"
	"github.com/tabledash/tabledash/internal/server/http/dto"
)

// RatingHandler manages review submission, disputes, and performance lookups.
type RatingHandler struct {
	facade RatingFacade
}

// NewRatingHandler constructs RatingHandler.
func NewRatingHandler(facade RatingFacade) *RatingHandler {
	return &RatingHandler{facade: facade}
}

// Submit handles POST /api/ratings.
func (h *RatingHandler) Submit(c *gin.Context) {
	reviewerID := CurrentUserID(c)
	var req dto.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	rating, err := h.facade.SubmitRating(c.Request.Context(), req.OrderID, reviewerID, req.TargetID, req.Score, req.ReviewType, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidScore),
			errors.Is(err, domainErrors.ErrInvalidReviewType),
			errors.Is(err, domainErrors.ErrSelfReview):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrAlreadyReviewed):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.NewRatingResponse(*rating))
}

// Dispute handles POST /api/ratings/:id/dispute.
func (h *RatingHandler) Dispute(c *gin.Context) {
	ratingID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.DisputeRating(c.Request.Context(), ratingID); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrAlreadyResolved):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// Performance handles GET /api/users/:id/performance.
func (h *RatingHandler) Performance(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	perf, err := h.facade.Performance(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.PerformanceResponse{
		Average: perf.Average,
		Count:   perf.Count,
		Grade:   string(perf.Grade),
	})
}
