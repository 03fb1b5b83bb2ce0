package validation

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"tourdesk/internal/api"
	"tourdesk/internal/config"
)

func TestValidateAllAgainstServer(t *testing.T) {
	cfg := config.Load()
	cfg.GinMode = "test"

	server, err := api.NewServer(cfg)
	require.NoError(t, err)
	defer server.Cleanup()

	ts := httptest.NewServer(server.GetRouter())
	defer ts.Close()

	require.NoError(t, NewSmokeValidator(ts.URL).ValidateAll())
}
