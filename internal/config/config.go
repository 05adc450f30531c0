package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/missionparty.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	// HostPassword guards the game-master routes. The default is fine for a
	// device on a living-room network; override it for anything else.
	HostPassword string `env:"HOST_PASSWORD" envDefault:"party"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
