package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourdesk/internal/catalog"
	"tourdesk/internal/checkout"
	"tourdesk/internal/database"
	"tourdesk/internal/models"
	"tourdesk/internal/service"
)

func setupRouter(t *testing.T) (*gin.Engine, clockwork.FakeClock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := clockwork.NewFakeClock()
	services := service.NewServices(catalog.NewStatic(), nil, checkout.DefaultConfig(), clock, nil, nil)
	t.Cleanup(services.Checkout.Shutdown)
	h := NewHandlers(services)

	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/catalog", h.ListCatalog)
		api.GET("/catalog/stats", h.CatalogStats)
		api.GET("/catalog/regions", h.ListRegions)
		api.GET("/shows/search", h.SearchShows)
		api.GET("/shows/:id", h.GetShow)

		checkouts := api.Group("/checkouts")
		{
			checkouts.POST("", h.StartCheckout)
			checkouts.GET("/:id", h.GetCheckout)
			checkouts.DELETE("/:id", h.DiscardCheckout)
			checkouts.PATCH("/:id/tier", h.SelectTier)
			checkouts.PATCH("/:id/quantity", h.ChangeQuantity)
			checkouts.POST("/:id/continue", h.Continue)
			checkouts.POST("/:id/back", h.Back)
			checkouts.POST("/:id/info", h.SetBuyerInfo)
			checkouts.POST("/:id/proceed", h.Proceed)
			checkouts.PATCH("/:id/tx", h.SetTxHash)
			checkouts.POST("/:id/payment", h.PaymentSent)
		}
	}
	r.GET("/health", h.Health)
	return r, clock
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) checkout.View {
	t.Helper()
	var v checkout.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestListCatalog(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(r, http.MethodGet, "/api/catalog?region=EUROPE", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ListCatalogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Regions, 1)
	assert.Equal(t, "EUROPE", resp.Regions[0].Name)
}

func TestCatalogStats(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(r, http.MethodGet, "/api/catalog/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var stats models.CatalogStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 38, stats.Shows)
}

func TestListRegions(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(r, http.MethodGet, "/api/catalog/regions", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ALL"`)
}

func TestGetShowNotFound(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(r, http.MethodGet, "/api/shows/atlantis-01-01", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchShowsValidation(t *testing.T) {
	r, _ := setupRouter(t)

	for _, query := range []string{"page=0", "page=10001", "page=9223372036854775807&pageSize=50", "pageSize=51"} {
		w := do(r, http.MethodGet, "/api/shows/search?q=tokyo&"+query, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}

	w := do(r, http.MethodGet, "/api/shows/search?page=10000&pageSize=50", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/shows/search?q=tokyo", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.SearchShowsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Total)
}

func TestStartCheckoutErrors(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(r, http.MethodPost, "/api/checkouts", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/checkouts", models.StartCheckoutRequest{ShowID: "tokyo-04-17"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodGet, "/api/checkouts/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutFlow(t *testing.T) {
	r, clock := setupRouter(t)

	w := do(r, http.MethodPost, "/api/checkouts", models.StartCheckoutRequest{ShowID: "bangkok-12-03"})
	require.Equal(t, http.StatusCreated, w.Code)
	v := decodeView(t, w)
	assert.Equal(t, checkout.StepSelecting, v.Step)
	assert.Equal(t, models.TierVIP, v.Tier)
	base := "/api/checkouts/" + v.SessionID

	two := 2
	w = do(r, http.MethodPatch, base+"/quantity", models.ChangeQuantityRequest{Quantity: &two})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "$3,200", decodeView(t, w).TotalLabel)

	w = do(r, http.MethodPatch, base+"/tier", models.SelectTierRequest{Tier: "standard"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, base+"/continue", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPost, base+"/proceed", models.BuyerInfoRequest{Name: "Mali", Email: " "})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(r, http.MethodPost, base+"/proceed", models.BuyerInfoRequest{Name: "Mali", Email: "mali@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	v = decodeView(t, w)
	require.NotNil(t, v.Payment)
	assert.Equal(t, "30:00", v.Payment.TimeLeft)

	w = do(r, http.MethodPost, base+"/payment", models.PaymentSentRequest{TxHash: "0xbeef"})
	require.Equal(t, http.StatusAccepted, w.Code)
	v = decodeView(t, w)
	assert.Equal(t, checkout.StepSubmitted, v.Step)
	require.NotNil(t, v.Order)
	assert.Equal(t, "0xbeef", v.Order.TxHash)

	w = do(r, http.MethodPost, base+"/back", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	clock.Advance(checkout.DefaultVerificationDelay)
	assert.Eventually(t, func() bool {
		return decodeView(t, do(r, http.MethodGet, base, nil)).Step == checkout.StepConfirmed
	}, time.Second, 10*time.Millisecond)

	w = do(r, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChangeQuantityRequiresInput(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(r, http.MethodPost, "/api/checkouts", models.StartCheckoutRequest{ShowID: "bangkok-12-03"})
	require.Equal(t, http.StatusCreated, w.Code)
	base := "/api/checkouts/" + decodeView(t, w).SessionID

	w = do(r, http.MethodPatch, base+"/quantity", map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	up := 1
	w = do(r, http.MethodPatch, base+"/quantity", models.ChangeQuantityRequest{Delta: &up})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decodeView(t, w).Quantity)
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

type stubStore struct {
	health database.StoreHealth
}

func (s stubStore) Probe(context.Context) database.StoreHealth {
	return s.health
}

func TestHealthWithStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	services := service.NewServices(catalog.NewStatic(), nil, checkout.DefaultConfig(), clockwork.NewFakeClock(), nil, nil)
	t.Cleanup(services.Checkout.Shutdown)

	tests := []struct {
		name   string
		health database.StoreHealth
		status int
		body   string
	}{
		{"healthy", database.StoreHealth{Healthy: true}, http.StatusOK, `"status":"ok"`},
		{"unreachable", database.StoreHealth{Error: "connection refused"}, http.StatusServiceUnavailable, `"status":"degraded"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandlers(services).WithStore(stubStore{health: tt.health})
			r := gin.New()
			r.GET("/health", h.Health)

			w := do(r, http.MethodGet, "/health", nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
			assert.Contains(t, w.Body.String(), `"catalog_store"`)
		})
	}
}
