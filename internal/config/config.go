package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything roomtrooper reads from the environment.
type Config struct {
	AuthURL      string
	GraphQLURL   string
	TenantID     string
	ClientID     string
	ClientSecret string

	// SiteID, when set, overrides every row-supplied site id for the batch.
	SiteID string

	RequestTimeout time.Duration
	CreateDelay    time.Duration

	Log struct {
		Level  string
		Format string
	}
}

// ConfigurationError lists the required environment variables that are
// missing. It aborts the whole run before any row is processed; it is the
// only batch-fatal condition in the pipeline.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Missing, ", "))
}

// Load reads configuration from the environment, after loading a local .env
// file when one exists.
func Load() (*Config, error) {
	// A missing .env is fine; real env vars may carry everything.
	_ = godotenv.Load()

	cfg := &Config{}
	var missing []string

	cfg.AuthURL = requireEnv("AUTH_URL", &missing)
	cfg.GraphQLURL = requireEnv("LENS_EP", &missing)
	cfg.TenantID = requireEnv("TENANT_ID", &missing)
	cfg.ClientID = requireEnv("CLIENT_ID", &missing)
	cfg.ClientSecret = requireEnv("CLIENT_SECRET", &missing)

	cfg.SiteID = strings.TrimSpace(os.Getenv("SITE_ID"))

	cfg.RequestTimeout = time.Duration(parseInt(getEnv("REQUEST_TIMEOUT_SECONDS", "30"), 30)) * time.Second
	cfg.CreateDelay = time.Duration(parseInt(getEnv("CREATE_DELAY_MS", "500"), 500)) * time.Millisecond

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "console")

	if len(missing) > 0 {
		return nil, &ConfigurationError{Missing: missing}
	}
	return cfg, nil
}

func requireEnv(key string, missing *[]string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		*missing = append(*missing, key)
	}
	return v
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
