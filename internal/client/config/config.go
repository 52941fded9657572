package config

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bankclient/internal/validation"
	"github.com/sethvargo/go-envconfig"
)

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"

	// EnvPrefix namespaces every environment variable read by Load.
	EnvPrefix = "BANK_"
)

// Config holds the runtime settings of the banking CLI.
type Config struct {
	APIBaseURL     string `env:"API_BASE_URL, overwrite" validate:"required,url"`
	AuthPathPrefix string `env:"AUTH_PATH_PREFIX, overwrite" validate:"required"`

	TokenKey string `env:"TOKEN_KEY, overwrite" validate:"required"`
	UserKey  string `env:"USER_KEY, overwrite" validate:"required,nefield=TokenKey"`

	StorageDriver string `env:"STORAGE_DRIVER, overwrite" validate:"oneof=sqlite redis"`
	SQLitePath    string `env:"SQLITE_PATH, overwrite" validate:"required_if=StorageDriver sqlite"`
	RedisAddr     string `env:"REDIS_ADDR, overwrite" validate:"required_if=StorageDriver redis"`
	RedisDB       int    `env:"REDIS_DB, overwrite" validate:"gte=0"`
	RedisPrefix   string `env:"REDIS_PREFIX, overwrite"`

	LogLevel  string `env:"LOG_LEVEL, overwrite" validate:"oneof=debug info warn error"`
	LogPretty bool   `env:"LOG_PRETTY, overwrite"`

	// RequestTimeout bounds each API call; 0 disables the bound.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, overwrite" validate:"gte=0"`

	// MetricsAddr enables a Prometheus listener when set.
	MetricsAddr string `env:"METRICS_ADDR, overwrite"`
}

// LoadDefaults populates c with the values used when nothing else is set.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.AuthPathPrefix = "/auth/"
	c.TokenKey = "albaraka_token"
	c.UserKey = "albaraka_user"
	c.StorageDriver = DriverSQLite
	c.SQLitePath = "bankclient.db"
	c.RedisAddr = "localhost:6379"
	c.RedisDB = 0
	c.RedisPrefix = "bankclient:"
	c.LogLevel = "info"
	c.LogPretty = true
	c.RequestTimeout = 0
	c.MetricsAddr = ""
}

// Load builds a Config from defaults, then the JSON file named by -c/-config,
// then BANK_* environment variables, then flags. Later sources win.
// A nil lookup reads the process environment.
func Load(ctx context.Context, args []string, lookup envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(ctx, cfg, lookup); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := validation.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func parseEnv(ctx context.Context, cfg *Config, lookup envconfig.Lookuper) error {
	if lookup == nil {
		lookup = envconfig.OsLookuper()
	}
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, lookup),
	})
	if err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}
