package validation

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"tourdesk/internal/checkout"
	"tourdesk/internal/models"
)

// SmokeValidator прогоняет полный сценарий покупки против запущенного API
type SmokeValidator struct {
	baseURL        string
	client         *http.Client
	confirmTimeout time.Duration
}

// NewSmokeValidator создает новый валидатор
func NewSmokeValidator(baseURL string) *SmokeValidator {
	return &SmokeValidator{
		baseURL:        baseURL,
		client:         &http.Client{Timeout: 10 * time.Second},
		confirmTimeout: 10 * time.Second,
	}
}

// ValidateAll проверяет каталог и оформление заказа
func (v *SmokeValidator) ValidateAll() error {
	slog.Info("Starting API smoke validation", "url", v.baseURL)

	if err := v.expectStatus(http.MethodGet, "/health", nil, http.StatusOK, nil); err != nil {
		return fmt.Errorf("health: %w", err)
	}

	showID, err := v.validateCatalog()
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	if err := v.validateCheckout(showID); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	slog.Info("All endpoints passed validation")
	return nil
}

// validateCatalog возвращает первое шоу, доступное к покупке
func (v *SmokeValidator) validateCatalog() (string, error) {
	var stats models.CatalogStats
	if err := v.expectStatus(http.MethodGet, "/api/catalog/stats", nil, http.StatusOK, &stats); err != nil {
		return "", err
	}
	if stats.Shows == 0 {
		return "", fmt.Errorf("catalog is empty")
	}

	var list models.ListCatalogResponse
	if err := v.expectStatus(http.MethodGet, "/api/catalog", nil, http.StatusOK, &list); err != nil {
		return "", err
	}
	for _, r := range list.Regions {
		for _, c := range r.Countries {
			for _, s := range c.Shows {
				if s.Purchasable {
					return s.ID, nil
				}
			}
		}
	}
	return "", fmt.Errorf("no purchasable show in catalog")
}

func (v *SmokeValidator) validateCheckout(showID string) error {
	var view checkout.View
	if err := v.expectStatus(http.MethodPost, "/api/checkouts", models.StartCheckoutRequest{ShowID: showID}, http.StatusCreated, &view); err != nil {
		return err
	}
	base := "/api/checkouts/" + view.SessionID

	steps := []struct {
		method string
		path   string
		body   any
		status int
	}{
		{http.MethodPost, base + "/continue", nil, http.StatusOK},
		{http.MethodPost, base + "/proceed", models.BuyerInfoRequest{Name: "", Email: ""}, http.StatusUnprocessableEntity},
		{http.MethodPost, base + "/proceed", models.BuyerInfoRequest{Name: "Smoke Test", Email: "smoke@example.com"}, http.StatusOK},
		{http.MethodPost, base + "/payment", models.PaymentSentRequest{TxHash: "smoke"}, http.StatusAccepted},
	}
	for _, st := range steps {
		if err := v.expectStatus(st.method, st.path, st.body, st.status, nil); err != nil {
			return err
		}
	}

	deadline := time.Now().Add(v.confirmTimeout)
	for time.Now().Before(deadline) {
		if err := v.expectStatus(http.MethodGet, base, nil, http.StatusOK, &view); err != nil {
			return err
		}
		if view.Step == checkout.StepConfirmed {
			return v.expectStatus(http.MethodDelete, base, nil, http.StatusNoContent, nil)
		}
		time.Sleep(200 * time.Millisecond)
	}
	return fmt.Errorf("order was not confirmed within %s", v.confirmTimeout)
}

func (v *SmokeValidator) expectStatus(method, path string, body any, want int, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequest(method, v.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return fmt.Errorf("%s %s: expected status %d, got %d", method, path, want, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s %s: decode: %w", method, path, err)
		}
	}
	slog.Debug("Validated endpoint", "method", method, "path", path, "status", resp.StatusCode)
	return nil
}

// RunValidation - точка входа для "api validate [-url ...]"
func RunValidation(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	baseURL := fs.String("url", "http://localhost:8081", "Base URL for API validation")
	_ = fs.Parse(args)

	if err := NewSmokeValidator(*baseURL).ValidateAll(); err != nil {
		slog.Error("Validation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Validation passed")
}
