package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":8080"`
	MetricsAddr    string        `env:"METRICS_ADDR" envDefault:":9091"`
	PostgresURL    string        `env:"POSTGRES_URL,required"`
	RedisAddr      string        `env:"REDIS_ADDR,required"`
	JWTSecret      string        `env:"JWT_SECRET,required"`
	JWTExpiry      time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`
	LoginRateLimit float64       `env:"LOGIN_RATE_LIMIT" envDefault:"1"` // login attempts per second per client IP
	LoginRateBurst int           `env:"LOGIN_RATE_BURST" envDefault:"5"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
