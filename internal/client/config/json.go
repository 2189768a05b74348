package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/cyberdefense/internal/cryptox"
	"github.com/dmitrijs2005/cyberdefense/internal/flagx"
	"github.com/dmitrijs2005/cyberdefense/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" apart from "empty" so a partial file only overrides
// what it names.
type JsonConfig struct {
	StoreBackend  *string         `json:"store_backend"`
	StoreDSN      *string         `json:"store_dsn"`
	RedisURL      *string         `json:"redis_url"`
	RedisPrefix   *string         `json:"redis_prefix"`
	PasswordMode  *string         `json:"password_mode"`
	RedirectDelay *timex.Duration `json:"redirect_delay"`
	LogLevel      *string         `json:"log_level"`
	LogFormat     *string         `json:"log_format"`
}

// parseJson overlays cfg with the file named by -c/-config in args, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.StoreBackend, jc.StoreBackend)
	setString(&cfg.StoreDSN, jc.StoreDSN)
	setString(&cfg.RedisURL, jc.RedisURL)
	setString(&cfg.RedisPrefix, jc.RedisPrefix)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.PasswordMode != nil {
		cfg.PasswordMode = cryptox.Mode(*jc.PasswordMode)
	}
	if jc.RedirectDelay != nil {
		cfg.RedirectDelay = jc.RedirectDelay.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
