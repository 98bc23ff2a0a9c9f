package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/tabledash/tabledash/internal/domain/errors"
	"github.com/tabledash/tabledash/internal/server/http/dto"
)

// KitchenHandler manages the chef's order claim workflow.
type KitchenHandler struct {
	facade KitchenFacade
}

// NewKitchenHandler constructs KitchenHandler.
func NewKitchenHandler(facade KitchenFacade) *KitchenHandler {
	return &KitchenHandler{facade: facade}
}

// Queue handles GET /api/kitchen/orders.
func (h *KitchenHandler) Queue(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	orders, err := h.facade.KitchenQueue(c.Request.Context(), limit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, dto.NewOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// Claim handles POST /api/kitchen/orders/:id/claim.
func (h *KitchenHandler) Claim(c *gin.Context) {
	chefID := CurrentUserID(c)
	orderID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.ClaimOrder(c.Request.Context(), orderID, chefID); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrAlreadyClaimed):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// Ready handles POST /api/kitchen/orders/:id/ready.
func (h *KitchenHandler) Ready(c *gin.Context) {
	chefID := CurrentUserID(c)
	orderID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	request, err := h.facade.MarkReady(c.Request.Context(), orderID, chefID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrAlreadyClaimed):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.NewDeliveryRequestResponse(*request))
}
