package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cyberdefense/internal/client/repositories/kv"
	"github.com/dmitrijs2005/cyberdefense/internal/cryptox"
)

// Config holds runtime settings for the vault CLI.
type Config struct {
	StoreBackend  string        `env:"VAULT_STORE_BACKEND"`
	StoreDSN      string        `env:"VAULT_STORE_DSN"`
	RedisURL      string        `env:"VAULT_REDIS_URL"`
	RedisPrefix   string        `env:"VAULT_REDIS_PREFIX"`
	PasswordMode  cryptox.Mode  `env:"VAULT_PASSWORD_MODE"`
	RedirectDelay time.Duration `env:"VAULT_REDIRECT_DELAY"`
	LogLevel      string        `env:"VAULT_LOG_LEVEL"`
	LogFormat     string        `env:"VAULT_LOG_FORMAT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoreBackend = kv.BackendSQLite
	c.StoreDSN = "vault.db"
	c.RedisURL = "redis://127.0.0.1:6379/0"
	c.RedisPrefix = "cyberdefense:"
	c.PasswordMode = cryptox.ModeArgon2id
	c.RedirectDelay = 2 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// StoreOptions maps the store settings onto kv.Options.
func (c *Config) StoreOptions() kv.Options {
	return kv.Options{
		Backend:     c.StoreBackend,
		DSN:         c.StoreDSN,
		RedisURL:    c.RedisURL,
		RedisPrefix: c.RedisPrefix,
	}
}

// Validate rejects settings the CLI cannot start with.
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreBackend {
	case kv.BackendSQLite, kv.BackendPostgres:
		if c.StoreDSN == "" {
			errs = append(errs, fmt.Errorf("store DSN is required for backend %q", c.StoreBackend))
		}
	case kv.BackendRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("redis URL is required for backend \"redis\""))
		}
	case kv.BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q", c.StoreBackend))
	}

	switch c.PasswordMode {
	case cryptox.ModePlain, cryptox.ModeArgon2id:
	default:
		errs = append(errs, fmt.Errorf("unknown password mode %q", c.PasswordMode))
	}

	if c.RedirectDelay < 0 {
		errs = append(errs, errors.New("redirect delay must not be negative"))
	}

	return errors.Join(errs...)
}

// LoadConfig constructs a Config from defaults, then overlays the JSON file,
// the environment and finally the flags found in args (usually os.Args[1:]).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
