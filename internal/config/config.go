package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from environment
// variables. A .env file in the working directory is loaded first when
// present.
type Config struct {
	DatabaseURL   string `env:"DATABASE_URL,required"`
	JWTSecret     string `env:"JWT_SECRET,required"`
	RedisAddr     string `env:"REDIS_ADDR,required"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	Port          int    `env:"PORT" envDefault:"8080"`
	WorkerCount   int    `env:"WORKER_COUNT" envDefault:"1"`
	CacheTTL      int    `env:"CACHE_TTL" envDefault:"300"`
}

// Addr returns the listen address in :port format.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

var godotenvLoad = godotenv.Load

// Load parses environment variables into a Config.
func Load() (*Config, error) {
	_ = godotenvLoad()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.WorkerCount <= 0 {
		return nil, fmt.Errorf("config: WORKER_COUNT must be positive, got %d", cfg.WorkerCount)
	}
	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("config: CACHE_TTL must not be negative, got %d", cfg.CacheTTL)
	}
	return cfg, nil
}
