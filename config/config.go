// Package config provides configuration management for the clinic client
// and the development stub server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the complete application configuration.
type Config struct {
	API  APIConfig
	Log  LogConfig
	Stub StubConfig
}

// APIConfig holds settings for talking to the clinic service.
type APIConfig struct {
	// BaseURL is the root of the remote REST service.
	BaseURL string `env:"CLINIC_API_URL" envDefault:"http://localhost:8080"`
	// Timeout is the transport-level timeout for every request.
	Timeout time.Duration `env:"CLINIC_API_TIMEOUT" envDefault:"15s"`
	// TokenFile is where the access/refresh token pair is persisted.
	// Empty means the default location under the user config directory.
	TokenFile string `env:"CLINIC_TOKEN_FILE"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `env:"CLINIC_LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"CLINIC_LOG_PRETTY" envDefault:"true"`
}

// StubConfig holds settings for the development stub server.
type StubConfig struct {
	Port             string        `env:"CLINIC_STUB_PORT" envDefault:"8080"`
	JWTSecretKey     string        `env:"CLINIC_JWT_SECRET" envDefault:"clinic-dev-secret"`
	JWTRefreshSecret string        `env:"CLINIC_JWT_REFRESH_SECRET" envDefault:"clinic-dev-refresh-secret"`
	AccessTokenTTL   time.Duration `env:"CLINIC_ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL  time.Duration `env:"CLINIC_REFRESH_TOKEN_TTL" envDefault:"168h"`
	CORSOrigins      []string      `env:"CLINIC_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`
	DemoPassword     string        `env:"CLINIC_DEMO_PASSWORD" envDefault:"password123"`
}

// Load creates a Config from environment variables, filling in defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.API.TokenFile == "" {
		cfg.API.TokenFile = defaultTokenFile()
	}
	return cfg, nil
}

// defaultTokenFile places the credential file under the OS user config
// directory, falling back to the working directory when unavailable.
func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".clinic_tokens.json"
	}
	return filepath.Join(dir, "clinic-client", "tokens.json")
}
