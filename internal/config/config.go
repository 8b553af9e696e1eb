// Package config loads application settings from the environment, with
// sensible defaults for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"calmou"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"calmou"`
	DBName     string `env:"DB_NAME" envDefault:"calmou"`

	PoolMinConns       int           `env:"POOL_MIN_CONNS" envDefault:"2"`
	PoolMaxConns       int           `env:"POOL_MAX_CONNS" envDefault:"10"`
	PoolAcquireTimeout time.Duration `env:"POOL_ACQUIRE_TIMEOUT" envDefault:"5s"`

	JWTSecret       string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"720h"`

	HashMemoryKB    uint32 `env:"HASH_MEMORY_KB" envDefault:"65536"`
	HashTime        uint32 `env:"HASH_TIME" envDefault:"3"`
	HashParallelism uint8  `env:"HASH_PARALLELISM" envDefault:"2"`

	S3Region       string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Bucket       string `env:"S3_BUCKET" envDefault:"calmou-photos"`
	S3BaseEndpoint string `env:"S3_BASE_ENDPOINT" envDefault:"http://localhost:9000"`
	S3AccessKey    string `env:"S3_ACCESS_KEY" envDefault:""`
	S3SecretKey    string `env:"S3_SECRET_KEY" envDefault:""`

	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads settings from the environment on top of the defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// DSN returns the Postgres connection string the pool dials with.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
