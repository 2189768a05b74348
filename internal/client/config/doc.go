// Package config loads runtime configuration for the vault CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables (VAULT_*).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-b string   store backend: sqlite, postgres, redis, memory
//	-d string   sqlite file path or postgres DSN
//	-r string   redis URL (redis backend)
//	-x string   redis key prefix
//	-p string   password storage mode: argon2id or plain
//	-t int      delay before a view transition (milliseconds)
//	-l string   log level: debug, info, warn, error
//	-f string   log format: text or json
//
// # JSON schema
//
// Durations may be strings like "2s" or integer nanoseconds:
//
//	{
//	  "store_backend": "sqlite",
//	  "store_dsn": "vault.db",
//	  "redirect_delay": "2s",
//	  "log_level": "info"
//	}
package config
