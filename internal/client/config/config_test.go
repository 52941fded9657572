package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/bankclient/internal/validation"
	"github.com/google/go-cmp/cmp"
	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "bank.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func noEnv() envconfig.Lookuper { return envconfig.MapLookuper(map[string]string{}) }

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:8080", c.APIBaseURL)
	assert.Equal(t, "/auth/", c.AuthPathPrefix)
	assert.Equal(t, "albaraka_token", c.TokenKey)
	assert.Equal(t, "albaraka_user", c.UserKey)
	assert.Equal(t, DriverSQLite, c.StorageDriver)
	assert.Zero(t, c.RequestTimeout)
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load(context.Background(), nil, noEnv())

	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), *cfg))
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, `{
		"api_base_url": "http://from-file:1",
		"storage_driver": "redis",
		"redis_addr": "cache:6379",
		"log_level": "warn",
		"request_timeout": "15s"
	}`)
	env := envconfig.MapLookuper(map[string]string{
		"BANK_API_BASE_URL": "http://from-env:2",
		"BANK_LOG_LEVEL":    "debug",
		"BANK_LOG_PRETTY":   "false",
		"BANK_REDIS_DB":     "3",
		"API_BASE_URL":      "http://unprefixed:9",
	})
	args := []string{"-c", path, "-a", "http://from-flag:3", "-x", "ignored"}

	cfg, err := Load(context.Background(), args, env)
	require.NoError(t, err)

	want := defaults()
	want.APIBaseURL = "http://from-flag:3"
	want.StorageDriver = DriverRedis
	want.RedisAddr = "cache:6379"
	want.RedisDB = 3
	want.LogLevel = "debug"
	want.LogPretty = false
	want.RequestTimeout = 15 * time.Second
	assert.Empty(t, cmp.Diff(want, *cfg))
}

func TestLoad_FileOnlyOverridesNamedKeys(t *testing.T) {
	path := writeFile(t, `{"log_pretty": false}`)

	cfg, err := Load(context.Background(), []string{"-config", path}, noEnv())

	require.NoError(t, err)
	assert.False(t, cfg.LogPretty)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		args func(t *testing.T) []string
		env  map[string]string
	}{
		{name: "missing file", args: func(t *testing.T) []string {
			return []string{"-c", filepath.Join(t.TempDir(), "absent.json")}
		}},
		{name: "broken json", args: func(t *testing.T) []string {
			return []string{"-c", writeFile(t, `{ nope`)}
		}},
		{name: "bad duration in file", args: func(t *testing.T) []string {
			return []string{"-c", writeFile(t, `{"request_timeout": "soon"}`)}
		}},
		{name: "bad env int", env: map[string]string{"BANK_REDIS_DB": "x"}},
		{name: "unknown driver flag", args: func(*testing.T) []string { return []string{"-s", "mongo"} }},
		{name: "unknown log level", env: map[string]string{"BANK_LOG_LEVEL": "loud"}},
		{name: "negative timeout", env: map[string]string{"BANK_REQUEST_TIMEOUT": "-1s"}},
		{name: "same storage keys", env: map[string]string{"BANK_USER_KEY": "albaraka_token"}},
		{name: "not a url", args: func(*testing.T) []string { return []string{"-a", "bank"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var args []string
			if tt.args != nil {
				args = tt.args(t)
			}
			env := tt.env
			if env == nil {
				env = map[string]string{}
			}

			cfg, err := Load(context.Background(), args, envconfig.MapLookuper(env))

			require.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_ValidationErrorIsTyped(t *testing.T) {
	_, err := Load(context.Background(), []string{"-l", "chatty"}, noEnv())

	require.ErrorIs(t, err, validation.ErrInvalid)
	assert.Contains(t, err.Error(), "loglevel must be one of")
}

func TestParseFlags(t *testing.T) {
	cfg := defaults()

	require.NoError(t, parseFlags(&cfg, []string{"-s", "redis", "-d", "/tmp/x.db", "-l", "error", "-c", "ignored.json"}))

	assert.Equal(t, DriverRedis, cfg.StorageDriver)
	assert.Equal(t, "/tmp/x.db", cfg.SQLitePath)
	assert.Equal(t, "error", cfg.LogLevel)
}
