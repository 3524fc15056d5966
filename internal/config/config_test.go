package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, int64(10485760), cfg.Upload.MaxBytes)
	assert.Equal(t, float64(2), cfg.Upload.RateRPS)
	assert.Equal(t, "data", cfg.Paths.DataDir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MEDIAPULSE_SERVER_PORT", "9090")
	t.Setenv("MEDIAPULSE_LOGGING_LEVEL", "debug")
	t.Setenv("MEDIAPULSE_UPLOAD_MAX_BYTES", "1024")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, int64(1024), cfg.Upload.MaxBytes)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "MEDIAPULSE_SERVER_PORT", "70000"},
		{"zero upload limit", "MEDIAPULSE_UPLOAD_MAX_BYTES", "0"},
		{"unknown log level", "MEDIAPULSE_LOGGING_LEVEL", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			assert.Error(t, err)
		})
	}
}
