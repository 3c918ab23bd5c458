package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	HTTPAddr       string `env:"RUNEFORGE_HTTP_ADDR" envDefault:":8080"`
	NotifyAddr     string `env:"RUNEFORGE_NOTIFY_ADDR" envDefault:":8081"`
	PlayerID       string `env:"RUNEFORGE_PLAYER_ID" envDefault:"local"`
	SaveBackend    string `env:"RUNEFORGE_SAVE_BACKEND" envDefault:"memory"`
	DBDSN          string `env:"RUNEFORGE_DB_DSN"`
	SQLitePath     string `env:"RUNEFORGE_SQLITE_PATH" envDefault:"runeforge.db"`
	RedisAddr      string `env:"RUNEFORGE_REDIS_ADDR" envDefault:"localhost:6379"`
	MigrationsDir  string `env:"RUNEFORGE_MIGRATIONS_DIR"`
	CatalogPath    string `env:"RUNEFORGE_CATALOG_PATH"`
	WorldSeed      uint64 `env:"RUNEFORGE_WORLD_SEED" envDefault:"1"`
	WorldNodes     int    `env:"RUNEFORGE_WORLD_NODES" envDefault:"200"`
	WorldCreatures int    `env:"RUNEFORGE_WORLD_CREATURES" envDefault:"12"`
	TickRate       int    `env:"RUNEFORGE_TICK_RATE" envDefault:"60"`
}

// Load parses the environment and checks cross-field constraints.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.SaveBackend = strings.ToLower(strings.TrimSpace(cfg.SaveBackend))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.SaveBackend {
	case BackendMemory, BackendSQLite, BackendRedis:
	case BackendPostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return fmt.Errorf("RUNEFORGE_DB_DSN is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown save backend %q", c.SaveBackend)
	}
	if strings.TrimSpace(c.PlayerID) == "" {
		return fmt.Errorf("RUNEFORGE_PLAYER_ID must not be blank")
	}
	if c.TickRate <= 0 || c.TickRate > 240 {
		return fmt.Errorf("RUNEFORGE_TICK_RATE must be in 1..240, got %d", c.TickRate)
	}
	if c.WorldNodes < 0 || c.WorldCreatures < 0 {
		return fmt.Errorf("world entity counts must not be negative")
	}
	return nil
}
