package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "APP_ENV", "LOG_LEVEL", "HUBEAU_BASE_URL", "UPSTREAM_TIMEOUT",
	"UPSTREAM_RATE_LIMIT", "BASEMAP_PATH", "PROBE_INTERVAL",
	"STORE_MAX_HISTORY", "STORE_MAX_AGE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, &AppConfig{
		Port:              "8080",
		Env:               "development",
		LogLevel:          "info",
		HubeauBaseURL:     DefaultHubeauBaseURL,
		UpstreamTimeout:   0,
		UpstreamRateLimit: 0,
		BasemapPath:       "",
		ProbeInterval:     15 * time.Minute,
		StoreMaxHistory:   96,
		StoreMaxAge:       24 * time.Hour,
	}, cfg)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HUBEAU_BASE_URL", "http://localhost:4000/api")
	t.Setenv("UPSTREAM_TIMEOUT", "5s")
	t.Setenv("UPSTREAM_RATE_LIMIT", "0.5")
	t.Setenv("BASEMAP_PATH", "/data/naturalearth_lowres.geojson")
	t.Setenv("PROBE_INTERVAL", "0")
	t.Setenv("STORE_MAX_HISTORY", "10")
	t.Setenv("STORE_MAX_AGE", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://localhost:4000/api", cfg.HubeauBaseURL)
	assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 0.5, cfg.UpstreamRateLimit)
	assert.Equal(t, "/data/naturalearth_lowres.geojson", cfg.BasemapPath)
	assert.Equal(t, time.Duration(0), cfg.ProbeInterval)
	assert.Equal(t, 10, cfg.StoreMaxHistory)
	assert.Equal(t, time.Hour, cfg.StoreMaxAge)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		key, value, wantMsg string
	}{
		{"UPSTREAM_TIMEOUT", "soon", "invalid UPSTREAM_TIMEOUT"},
		{"UPSTREAM_TIMEOUT", "-1s", "UpstreamTimeout"},
		{"UPSTREAM_RATE_LIMIT", "fast", "invalid UPSTREAM_RATE_LIMIT"},
		{"UPSTREAM_RATE_LIMIT", "-2", "UpstreamRateLimit"},
		{"PROBE_INTERVAL", "often", "invalid PROBE_INTERVAL"},
		{"STORE_MAX_HISTORY", "many", "invalid STORE_MAX_HISTORY"},
		{"STORE_MAX_HISTORY", "-5", "StoreMaxHistory"},
		{"STORE_MAX_AGE", "old", "invalid STORE_MAX_AGE"},
		{"PORT", "http", "Port"},
		{"LOG_LEVEL", "loud", "LogLevel"},
		{"HUBEAU_BASE_URL", "not a url", "HubeauBaseURL"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
