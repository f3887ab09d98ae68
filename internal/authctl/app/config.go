package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Endpoint      string        `env:"AUTH_ENDPOINT, default=http://localhost:3000/auth"` // Base URL of the authentication API
	Timeout       time.Duration `env:"AUTH_TIMEOUT, default=10s"`                         // Per-request timeout
	Authorization string        `env:"AUTH_AUTHORIZATION"`                                // Optional: Authorization header value
	RateLimit     float64       `env:"AUTH_RATE_LIMIT, default=0"`                        // Requests per second, 0 disables limiting
	RateBurst     int           `env:"AUTH_RATE_BURST, default=1"`                        // Burst allowed by the limiter

	Env        string `env:"ENV, default=dev"`          // Environment (dev, staging, prod)
	LogLevel   string `env:"LOG_LEVEL, default=info"`   // Log level (debug, info, warn, error)
	LogFormat  string `env:"LOG_FORMAT, default=text"`  // Log format (json, text)
	LogBackend string `env:"LOG_BACKEND, default=slog"` // Logger implementation (slog, zerolog)
}

// LoadConfig reads configuration from the process environment.
func LoadConfig(ctx context.Context) (Config, error) {
	return loadConfig(ctx, envconfig.OsLookuper())
}

func loadConfig(ctx context.Context, lookuper envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	switch cfg.LogBackend {
	case "slog", "zerolog":
	default:
		return Config{}, fmt.Errorf("unsupported LOG_BACKEND %q", cfg.LogBackend)
	}

	if cfg.RateLimit < 0 {
		return Config{}, fmt.Errorf("AUTH_RATE_LIMIT must not be negative")
	}

	return cfg, nil
}
