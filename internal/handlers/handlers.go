package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourdesk/internal/checkout"
	"tourdesk/internal/database"
	apperrors "tourdesk/internal/errors"
	"tourdesk/internal/logger"
	"tourdesk/internal/service"
)

// StoreProber reports the health of the catalog store
type StoreProber interface {
	Probe(ctx context.Context) database.StoreHealth
}

type Handlers struct {
	services *service.Services
	store    StoreProber
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{services: services}
}

// WithStore включает проверку хранилища каталога в /health
func (h *Handlers) WithStore(store StoreProber) *Handlers {
	h.store = store
	return h
}

// statusFor сопоставляет доменную ошибку с HTTP-статусом
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrShowNotFound),
		errors.Is(err, apperrors.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrNotPurchasable),
		errors.Is(err, checkout.ErrWrongStep),
		errors.Is(err, checkout.ErrTierUnavailable),
		errors.Is(err, checkout.ErrSessionClosed):
		return http.StatusConflict
	case errors.Is(err, checkout.ErrBuyerInfoRequired),
		errors.Is(err, checkout.ErrUnknownTier),
		errors.Is(err, apperrors.ErrInvalidRequest):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).Error("Request failed", "error", err)
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// Health - GET /health
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":   "ok",
		"service":  "tourdesk-api",
		"sessions": h.services.Checkout.Count(),
	}
	if h.store == nil {
		c.JSON(http.StatusOK, body)
		return
	}

	store := h.store.Probe(c.Request.Context())
	body["catalog_store"] = store
	if !store.Healthy {
		body["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}

func badRequest(c *gin.Context, err error) {
	slog.Debug("Invalid request body", "error", err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
