package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/tabledash/tabledash/internal/domain/errors"
	"github.com/tabledash/tabledash/internal/server/http/dto"
)

// ManagerHandler covers bid approval, dispute resolution, and account
// administration.
type ManagerHandler struct {
	facade ManagerFacade
}

// NewManagerHandler constructs ManagerHandler.
func NewManagerHandler(facade ManagerFacade) *ManagerHandler {
	return &ManagerHandler{facade: facade}
}

// Bids handles GET /api/manager/requests/:id/bids.
func (h *ManagerHandler) Bids(c *gin.Context) {
	requestID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	bids, err := h.facade.RequestBids(c.Request.Context(), requestID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(bids) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.BidResponse, 0, len(bids))
	for _, b := range bids {
		response = append(response, dto.NewBidResponse(b))
	}

	c.JSON(http.StatusOK, response)
}

// Approve handles POST /api/manager/requests/:id/approve.
func (h *ManagerHandler) Approve(c *gin.Context) {
	requestID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ApproveBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	bid, err := h.facade.ApproveBid(c.Request.Context(), requestID, req.BidID, req.Memo)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrAlreadyResolved):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrMemoRequired):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.NewBidResponse(*bid))
}

// Reject handles POST /api/manager/bids/:id/reject.
func (h *ManagerHandler) Reject(c *gin.Context) {
	bidID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.RejectBid(c.Request.Context(), bidID); err != nil {
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

// SetVIP handles POST /api/manager/customers/:id/vip.
func (h *ManagerHandler) SetVIP(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.VIPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.SetVIP(c.Request.Context(), customerID, req.VIP); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// GrantPromo handles POST /api/manager/customers/:id/promo.
func (h *ManagerHandler) GrantPromo(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.PromoGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.GrantPromo(c.Request.Context(), req.Code, customerID); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidPromoCode):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// ResolveDispute handles POST /api/manager/ratings/:id/resolve.
func (h *ManagerHandler) ResolveDispute(c *gin.Context) {
	ratingID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ResolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.ResolveDispute(c.Request.Context(), ratingID, req.Action); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAction):
			c.Status(http.StatusUnprocessableEntity)
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
