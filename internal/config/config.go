package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const DefaultHubeauBaseURL = "https://hubeau.eaufrance.fr/api"

var validate = validator.New()

type AppConfig struct {
	Port     string `validate:"required,numeric"`
	Env      string `validate:"required"`
	LogLevel string `validate:"oneof=panic fatal error warn warning info debug trace"`

	// Upstream Hub'Eau API.
	HubeauBaseURL     string        `validate:"required,url"`
	UpstreamTimeout   time.Duration `validate:"gte=0"` // 0 = no client timeout
	UpstreamRateLimit float64       `validate:"gte=0"` // requests per second, 0 = unlimited

	// BasemapPath points to a GeoJSON world boundaries file. Empty selects
	// the embedded outline.
	BasemapPath string

	// ProbeInterval controls how often the upstream is probed (0 = never).
	ProbeInterval time.Duration `validate:"gte=0"`

	// Probe history retention.
	StoreMaxHistory int           `validate:"gte=0"` // max number of probe results (0 = unlimited)
	StoreMaxAge     time.Duration `validate:"gte=0"` // max age of probe results (0 = unlimited)
}

// LoadDotEnv loads a .env file into the environment if one exists.
func LoadDotEnv() error {
	return godotenv.Load()
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:          getenvDefault("PORT", "8080"),
		Env:           getenvDefault("APP_ENV", "development"),
		LogLevel:      getenvDefault("LOG_LEVEL", "info"),
		HubeauBaseURL: getenvDefault("HUBEAU_BASE_URL", DefaultHubeauBaseURL),
		BasemapPath:   os.Getenv("BASEMAP_PATH"),
	}

	var err error
	if cfg.UpstreamTimeout, err = getenvDuration("UPSTREAM_TIMEOUT", "0"); err != nil {
		return nil, err
	}
	if cfg.UpstreamRateLimit, err = getenvFloat("UPSTREAM_RATE_LIMIT", 0); err != nil {
		return nil, err
	}
	if cfg.ProbeInterval, err = getenvDuration("PROBE_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	// roughly 24h at 15-minute intervals
	if cfg.StoreMaxHistory, err = getenvInt("STORE_MAX_HISTORY", 96); err != nil {
		return nil, err
	}
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
