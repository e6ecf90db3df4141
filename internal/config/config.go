// Package config loads process configuration from environment variables
// once at startup.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	AppName string `env:"APP_NAME" envDefault:"ReelNotes"`
	Env     string `env:"ENV" envDefault:"DEV"`

	// JWTSecret signs issued tokens. Process-wide, immutable for the
	// process lifetime, never exposed to clients.
	JWTSecret string `env:"JWT_SECRET,required"`

	// DatabaseDSN selects the PostgreSQL backend. Empty means in-memory
	// stores, which lose all data on restart (dev only).
	DatabaseDSN string `env:"DATABASE_DSN"`

	AllowedOrigin string        `env:"ALLOWED_ORIGIN" envDefault:"http://localhost:3000"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	BcryptCost    int           `env:"BCRYPT_COST" envDefault:"10"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
