package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/tabledash/tabledash/internal/domain/errors"
	"github.com/tabledash/tabledash/internal/domain/model"
	"github.com/tabledash/tabledash/internal/server/http/dto"
)

// WalletHandler manages customer wallet endpoints.
type WalletHandler struct {
	facade WalletFacade
}

// NewWalletHandler constructs WalletHandler.
func NewWalletHandler(facade WalletFacade) *WalletHandler {
	return &WalletHandler{facade: facade}
}

// Summary handles GET /api/user/balance.
func (h *WalletHandler) Summary(c *gin.Context) {
	userID := CurrentUserID(c)
	account, err := h.facade.Account(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.AccountResponse{
		Balance:    account.Balance.Float64(),
		NumOrders:  account.NumOrders,
		TotalSpent: account.TotalSpent.Float64(),
		VIP:        account.VIP,
	})
}

// TopUp handles POST /api/user/balance/topup.
func (h *WalletHandler) TopUp(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.TopUp(c.Request.Context(), userID, model.MoneyFromFloat(req.Amount)); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}
