package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	DatabaseURL string `env:"DATABASE_URL,required"`
	Addr        string `env:"ADDR" envDefault:":3000"`

	// Behavior
	SkipMigrations bool `env:"SKIP_MIGRATIONS" envDefault:"false"`

	// Reporting
	LeaderboardLimit int `env:"LEADERBOARD_LIMIT" envDefault:"20"`
	ActivityLimit    int `env:"ACTIVITY_LIMIT" envDefault:"50"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
