package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds server configuration, loaded from environment variables
type Config struct {
	Host string `env:"HOST" envDefault:""`
	Port int    `env:"PORT" envDefault:"8080"`

	// StorageType selects the storage backend: "memory" or "redis"
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`

	RedisURL     string        `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	RedisGameTTL time.Duration `env:"REDIS_GAME_TTL" envDefault:"24h"`

	// OpenGamesWhenNoPassword makes passwordless games accept any verification
	// attempt
	OpenGamesWhenNoPassword bool `env:"OPEN_GAMES_WHEN_NO_PASSWORD" envDefault:"true"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
