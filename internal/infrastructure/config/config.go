package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string `env:"PORT,          default=8080"`
	Env         string `env:"ENV,           default=development"`
	LogLevel    string `env:"LOG_LEVEL,     default=info"`
	LogPretty   bool   `env:"LOG_PRETTY,    default=false"`
	MaxBodySize string `env:"MAX_BODY_SIZE, default=20M"`

	ORS    ORSConfig
	MyMaps MyMapsConfig
	Ingest IngestConfig
	Solver SolverConfig
	Redis  RedisConfig
}

// ORSConfig configures the OpenRouteService client. An empty APIKey leaves
// online optimization and geocoding unavailable.
type ORSConfig struct {
	APIKey              string        `env:"ORS_API_KEY"`
	BaseURL             string        `env:"ORS_BASE_URL,             default=https://api.openrouteservice.org"`
	Profile             string        `env:"ORS_PROFILE,              default=driving-car"`
	Timeout             time.Duration `env:"ORS_TIMEOUT,              default=30s"`
	GeocodeTimeout      time.Duration `env:"ORS_GEOCODE_TIMEOUT,      default=10s"`
	AutocompleteTimeout time.Duration `env:"ORS_AUTOCOMPLETE_TIMEOUT, default=5s"`
}

type MyMapsConfig struct {
	BaseURL string        `env:"MYMAPS_BASE_URL, default=https://www.google.com/maps/d/kml"`
	Timeout time.Duration `env:"MYMAPS_TIMEOUT,  default=15s"`
}

type IngestConfig struct {
	Workers int `env:"INGEST_WORKERS, default=4"`
}

type SolverConfig struct {
	TimeLimit time.Duration `env:"SOLVER_TIME_LIMIT, default=5s"`
	MaxPoints int           `env:"SOLVER_MAX_POINTS, default=2000"`
}

// RedisConfig configures the geocode cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,          default=0"`
	TTL      time.Duration `env:"GEOCODE_CACHE_TTL, default=24h"`
}

// Load reads a .env file when present, then the environment. It panics on
// malformed values.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("config: read .env: %w", err))
	}
	cfg, err := load(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(err)
	}
	return cfg
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Ingest.Workers < 1 {
		return nil, fmt.Errorf("config: INGEST_WORKERS must be at least 1, got %d", cfg.Ingest.Workers)
	}
	if cfg.Solver.TimeLimit <= 0 {
		return nil, fmt.Errorf("config: SOLVER_TIME_LIMIT must be positive, got %s", cfg.Solver.TimeLimit)
	}
	if cfg.Solver.MaxPoints < 2 {
		return nil, fmt.Errorf("config: SOLVER_MAX_POINTS must be at least 2, got %d", cfg.Solver.MaxPoints)
	}
	return &cfg, nil
}
