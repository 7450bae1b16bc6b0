package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App   App
	Log   Log
	BCB   BCB
	Rates Rates
	Redis Redis
}

type App struct {
	Name                 string        `env:"APP_NAME" envDefault:"rate_audit"`
	Version              string        `env:"APP_VERSION" envDefault:"dev"`
	HTTPAddress          string        `env:"HTTP_ADDRESS" envDefault:":8080"`
	ProbeAddress         string        `env:"PROBE_ADDRESS" envDefault:":8081"`
	MetricsAddress       string        `env:"METRICS_ADDRESS" envDefault:":9090"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestLogFieldLimit int           `env:"REQUEST_LOG_FIELD_LIMIT" envDefault:"4096"`
}

type Log struct {
	Level slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	JSON  bool       `env:"LOG_JSON" envDefault:"false"`
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := config.Rates.validate(); err != nil {
		return Config{}, fmt.Errorf("rates: %w", err)
	}

	return config, nil
}
