package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/bankclient/internal/flagx"
)

// parseFlags overlays cfg with the flags it owns:
//
//	-a string   backend API base URL
//	-s string   storage driver (sqlite or redis)
//	-d string   SQLite database path
//	-l string   log level
func parseFlags(cfg *Config, args []string) error {
	own := flagx.FilterArgs(args, []string{"-a", "-s", "-d", "-l"})

	fs := flag.NewFlagSet("bankcli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend API base URL")
	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "storage driver: sqlite or redis")
	fs.StringVar(&cfg.SQLitePath, "d", cfg.SQLitePath, "SQLite database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(own); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
