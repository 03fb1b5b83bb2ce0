package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, CatalogSourceStatic, cfg.CatalogSource)
	assert.Equal(t, 10, cfg.Checkout.MaxPerOrder)
	assert.Equal(t, 30*time.Minute, cfg.Checkout.PaymentWindow)
	assert.Equal(t, 1500*time.Millisecond, cfg.Checkout.VerificationDelay)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "postgres")
	t.Setenv("PAYMENT_WINDOW_SEC", "60")
	t.Setenv("MAX_TICKETS_PER_ORDER", "4")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("NATS_ENABLED", "true")

	cfg := Load()

	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, time.Minute, cfg.Checkout.PaymentWindow)
	assert.Equal(t, 4, cfg.Checkout.MaxPerOrder)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.NATS.Enabled)
}

func TestGetEnvIntFallsBack(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 7, getEnvInt("SOME_INT", 7))
}
