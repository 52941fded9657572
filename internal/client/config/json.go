package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/bankclient/internal/flagx"
)

// jsonConfig mirrors Config for the file format. Pointers tell "absent"
// from "zero", so a file only overrides the keys it names.
type jsonConfig struct {
	APIBaseURL     *string `json:"api_base_url"`
	AuthPathPrefix *string `json:"auth_path_prefix"`
	TokenKey       *string `json:"token_key"`
	UserKey        *string `json:"user_key"`
	StorageDriver  *string `json:"storage_driver"`
	SQLitePath     *string `json:"sqlite_path"`
	RedisAddr      *string `json:"redis_addr"`
	RedisDB        *int    `json:"redis_db"`
	RedisPrefix    *string `json:"redis_prefix"`
	LogLevel       *string `json:"log_level"`
	LogPretty      *bool   `json:"log_pretty"`
	RequestTimeout *string `json:"request_timeout"`
	MetricsAddr    *string `json:"metrics_addr"`
}

// parseJSON overlays cfg with the file named by -c or -config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	set(&cfg.APIBaseURL, jc.APIBaseURL)
	set(&cfg.AuthPathPrefix, jc.AuthPathPrefix)
	set(&cfg.TokenKey, jc.TokenKey)
	set(&cfg.UserKey, jc.UserKey)
	set(&cfg.StorageDriver, jc.StorageDriver)
	set(&cfg.SQLitePath, jc.SQLitePath)
	set(&cfg.RedisAddr, jc.RedisAddr)
	set(&cfg.RedisDB, jc.RedisDB)
	set(&cfg.RedisPrefix, jc.RedisPrefix)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.LogPretty, jc.LogPretty)
	set(&cfg.MetricsAddr, jc.MetricsAddr)
	if jc.RequestTimeout != nil {
		d, err := time.ParseDuration(*jc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("parse config file %s: request_timeout: %w", path, err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
