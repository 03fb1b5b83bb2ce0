package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourdesk/internal/checkout"
	apperrors "tourdesk/internal/errors"
	"tourdesk/internal/logger"
	"tourdesk/internal/models"
)

// StartCheckout - POST /api/checkouts
// Начать оформление заказа на шоу
func (h *Handlers) StartCheckout(c *gin.Context) {
	var req models.StartCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	m, err := h.services.Checkout.Start(c.Request.Context(), req.ShowID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", "/api/checkouts/"+m.ID())
	c.JSON(http.StatusCreated, m.View())
}

// GetCheckout - GET /api/checkouts/:id
func (h *Handlers) GetCheckout(c *gin.Context) {
	m, err := h.services.Checkout.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m.View())
}

// DiscardCheckout - DELETE /api/checkouts/:id
func (h *Handlers) DiscardCheckout(c *gin.Context) {
	if err := h.services.Checkout.Discard(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SelectTier - PATCH /api/checkouts/:id/tier
func (h *Handlers) SelectTier(c *gin.Context) {
	var req models.SelectTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.act(c, func(m *checkout.Machine) error {
		tier, err := models.ParseTier(req.Tier)
		if err != nil {
			return checkout.ErrUnknownTier
		}
		return m.SelectTier(tier)
	})
}

// ChangeQuantity - PATCH /api/checkouts/:id/quantity
// {"delta": 1} / {"delta": -1} или {"quantity": 4}
func (h *Handlers) ChangeQuantity(c *gin.Context) {
	var req models.ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.act(c, func(m *checkout.Machine) error {
		switch {
		case req.Quantity != nil:
			return m.SetQuantity(*req.Quantity)
		case req.Delta != nil && *req.Delta > 0:
			return m.Increment()
		case req.Delta != nil && *req.Delta < 0:
			return m.Decrement()
		}
		return fmt.Errorf("%w: delta or quantity is required", apperrors.ErrInvalidRequest)
	})
}

// Continue - POST /api/checkouts/:id/continue
func (h *Handlers) Continue(c *gin.Context) {
	h.act(c, (*checkout.Machine).Continue)
}

// Back - POST /api/checkouts/:id/back
func (h *Handlers) Back(c *gin.Context) {
	h.act(c, (*checkout.Machine).Back)
}

// SetBuyerInfo - POST /api/checkouts/:id/info
func (h *Handlers) SetBuyerInfo(c *gin.Context) {
	var req models.BuyerInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.act(c, func(m *checkout.Machine) error {
		return m.SetBuyerInfo(req.Name, req.Email)
	})
}

// Proceed - POST /api/checkouts/:id/proceed
// Тело необязательно: если передано, сначала сохраняются контакты
func (h *Handlers) Proceed(c *gin.Context) {
	var req models.BuyerInfoRequest
	hasBody := c.Request.ContentLength > 0
	if hasBody {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	h.act(c, func(m *checkout.Machine) error {
		if hasBody {
			if err := m.SetBuyerInfo(req.Name, req.Email); err != nil {
				return err
			}
		}
		return m.Proceed()
	})
}

// SetTxHash - PATCH /api/checkouts/:id/tx
func (h *Handlers) SetTxHash(c *gin.Context) {
	var req models.PaymentSentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.act(c, func(m *checkout.Machine) error {
		return m.SetTxHash(req.TxHash)
	})
}

// PaymentSent - POST /api/checkouts/:id/payment
// Покупатель сообщает, что отправил платеж; ответ 202, подтверждение асинхронное
func (h *Handlers) PaymentSent(c *gin.Context) {
	var req models.PaymentSentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	m, err := h.services.Checkout.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := m.SentPayment(req.TxHash); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, m.View())
}

// act runs a machine operation and answers with the resulting view
func (h *Handlers) act(c *gin.Context, op func(m *checkout.Machine) error) {
	id := c.Param("id")
	m, err := h.services.Checkout.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := logger.ContextWithSessionID(c.Request.Context(), id)
	if err := op(m); err != nil {
		logger.WithContext(ctx).Debug("Checkout action rejected", "step", m.Step(), "error", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m.View())
}
