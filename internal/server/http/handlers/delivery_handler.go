package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/tabledash/tabledash/internal/domain/errors"
	"github.com/tabledash/tabledash/internal/domain/model"
	"github.com/tabledash/tabledash/internal/server/http/dto"
)

// DeliveryHandler manages the driver's bidding and transport endpoints.
type DeliveryHandler struct {
	facade CourierFacade
}

// NewDeliveryHandler constructs DeliveryHandler.
func NewDeliveryHandler(facade CourierFacade) *DeliveryHandler {
	return &DeliveryHandler{facade: facade}
}

// OpenRequests handles GET /api/delivery/requests.
func (h *DeliveryHandler) OpenRequests(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	requests, err := h.facade.OpenRequests(c.Request.Context(), limit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(requests) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.DeliveryRequestResponse, 0, len(requests))
	for _, r := range requests {
		response = append(response, dto.NewDeliveryRequestResponse(r))
	}

	c.JSON(http.StatusOK, response)
}

// Bid handles POST /api/delivery/requests/:id/bids.
func (h *DeliveryHandler) Bid(c *gin.Context) {
	driverID := CurrentUserID(c)
	requestID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.BidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	bid, err := h.facade.SubmitBid(c.Request.Context(), requestID, driverID, model.MoneyFromFloat(req.Price))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrAlreadyExists), errors.Is(err, domainErrors.ErrAlreadyResolved):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.NewBidResponse(*bid))
}

// Advance handles POST /api/delivery/orders/:id/status.
func (h *DeliveryHandler) Advance(c *gin.Context) {
	driverID := CurrentUserID(c)
	orderID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.AdvanceTransport(c.Request.Context(), orderID, driverID, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrNotAssignedDriver):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}
