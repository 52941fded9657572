// Package config loads runtime configuration for the banking CLI.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed with BANK_, e.g. BANK_API_BASE_URL.
//  4. Command-line flags -a, -s, -d and -l.
//
// # JSON schema
//
//	{
//	  "api_base_url": "https://bank.example.com",
//	  "storage_driver": "redis",
//	  "redis_addr": "localhost:6379",
//	  "request_timeout": "15s",
//	  "log_level": "debug"
//	}
//
// Keys that are absent leave the earlier value alone.
package config
