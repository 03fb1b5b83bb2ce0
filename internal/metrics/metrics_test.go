package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"tourdesk/internal/checkout"
	"tourdesk/internal/models"
)

func TestStepChangedCounts(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.StepChanged(ctx, "s", "", checkout.StepSelecting)
	m.StepChanged(ctx, "s", checkout.StepSelecting, checkout.StepEnteringInfo)
	m.StepChanged(ctx, "t", checkout.StepSelecting, checkout.StepEnteringInfo)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("NEW", "SELECTING")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("SELECTING", "ENTERING_INFO")))
}

func TestStepCompletedRecordsSales(t *testing.T) {
	m := New()
	order := models.OrderSummary{
		Tier:     models.TierVIP,
		Quantity: 3,
		Total:    decimal.NewFromInt(4500),
		Currency: "USDT",
	}

	m.StepCompleted(context.Background(), checkout.OutcomeSuccess, order)
	m.StepCompleted(context.Background(), checkout.Outcome("error"), order)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersTotal.WithLabelValues("error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ticketsSold.WithLabelValues("VIP")))
	assert.Equal(t, 4500.0, testutil.ToFloat64(m.revenue.WithLabelValues("USDT")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	m.SetActiveSessions(4)

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/shows/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/shows/tokyo-04-17", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/shows/:id", "204")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tourdesk_checkout_sessions_active 4")
}
