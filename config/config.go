// Package config resolves the environment-driven configuration surface.
// Values are read once at process start and never reloaded.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// APIKey is forwarded to OpenDota as a query parameter when set.
	APIKey string `env:"OPENDOTA_API_KEY"`
	// BaseURL overrides the public OpenDota API root.
	BaseURL string `env:"OPENDOTA_BASE_URL"`
	// TimeoutMS bounds every upstream request.
	TimeoutMS int `env:"OPENDOTA_TIMEOUT_MS" envDefault:"30000"`
	// UserAgent overrides the identifying header sent upstream.
	UserAgent string `env:"OPENDOTA_USER_AGENT"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogDir   string `env:"LOG_DIR"`

	// Environment gates whether error detail payloads are included in tool
	// responses.
	Environment string `env:"APP_ENV" envDefault:"production"`
}

func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if c.TimeoutMS <= 0 {
		return Config{}, fmt.Errorf("OPENDOTA_TIMEOUT_MS must be positive, got %d", c.TimeoutMS)
	}
	return c, nil
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func (c Config) Development() bool {
	return c.Environment == "development"
}
