package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/cyberdefense/internal/cryptox"
	"github.com/dmitrijs2005/cyberdefense/internal/flagx"
)

// parseFlags populates cfg from the flags it knows about in args. Other
// arguments (for example -c) are filtered out with flagx.FilterArgs first.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-b", "-d", "-r", "-x", "-p", "-t", "-l", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StoreBackend, "b", cfg.StoreBackend, "store backend: sqlite, postgres, redis, memory")
	fs.StringVar(&cfg.StoreDSN, "d", cfg.StoreDSN, "sqlite file path or postgres DSN")
	fs.StringVar(&cfg.RedisURL, "r", cfg.RedisURL, "redis URL")
	fs.StringVar(&cfg.RedisPrefix, "x", cfg.RedisPrefix, "redis key prefix")
	mode := fs.String("p", string(cfg.PasswordMode), "password storage mode: argon2id or plain")
	delay := fs.Int("t", int(cfg.RedirectDelay.Milliseconds()), "view transition delay (in milliseconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format: text or json")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.PasswordMode = cryptox.Mode(*mode)
	cfg.RedirectDelay = time.Duration(*delay) * time.Millisecond
	return nil
}
