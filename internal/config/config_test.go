package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("AUTH_URL", "https://auth.example.com/oauth/token")
	t.Setenv("LENS_EP", "https://api.example.com/graphql")
	t.Setenv("TENANT_ID", "tenant-1")
	t.Setenv("CLIENT_ID", "client-1")
	t.Setenv("CLIENT_SECRET", "secret")
}

func TestLoadMissingRequiredVars(t *testing.T) {
	for _, key := range []string{"AUTH_URL", "LENS_EP", "TENANT_ID", "CLIENT_ID", "CLIENT_SECRET"} {
		t.Setenv(key, "")
	}

	_, err := Load()
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.ElementsMatch(t,
		[]string{"AUTH_URL", "LENS_EP", "TENANT_ID", "CLIENT_ID", "CLIENT_SECRET"},
		cfgErr.Missing,
	)
}

func TestLoadReportsOnlyTheMissingVars(t *testing.T) {
	setRequired(t)
	t.Setenv("CLIENT_SECRET", "  ")

	_, err := Load()
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"CLIENT_SECRET"}, cfgErr.Missing)
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("SITE_ID", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "")
	t.Setenv("CREATE_DELAY_MS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.SiteID)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.CreateDelay)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SITE_ID", " S42 ")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "S42", cfg.SiteID, "override site id is trimmed")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoadBadIntFallsBackToDefault(t *testing.T) {
	setRequired(t)
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}
