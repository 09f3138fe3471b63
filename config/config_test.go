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

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.NotEmpty(t, cfg.API.TokenFile)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)

	assert.Equal(t, "8080", cfg.Stub.Port)
	assert.Equal(t, 15*time.Minute, cfg.Stub.AccessTokenTTL)
	assert.Equal(t, 168*time.Hour, cfg.Stub.RefreshTokenTTL)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.Stub.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CLINIC_API_URL", "https://clinic.example.com/api")
	t.Setenv("CLINIC_API_TIMEOUT", "30s")
	t.Setenv("CLINIC_TOKEN_FILE", "/tmp/clinic/tokens.json")
	t.Setenv("CLINIC_LOG_LEVEL", "debug")
	t.Setenv("CLINIC_LOG_PRETTY", "false")
	t.Setenv("CLINIC_STUB_PORT", "9090")
	t.Setenv("CLINIC_CORS_ORIGINS", "https://app.clinic.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://clinic.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "/tmp/clinic/tokens.json", cfg.API.TokenFile)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
	assert.Equal(t, "9090", cfg.Stub.Port)
	assert.Equal(t, []string{"https://app.clinic.example.com"}, cfg.Stub.CORSOrigins)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("CLINIC_API_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}
