package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/cyberdefense/internal/buildinfo"
	"github.com/dmitrijs2005/cyberdefense/internal/client/cli"
	"github.com/dmitrijs2005/cyberdefense/internal/client/config"
	"github.com/dmitrijs2005/cyberdefense/internal/client/repositories/accounts"
	"github.com/dmitrijs2005/cyberdefense/internal/client/repositories/kv"
	"github.com/dmitrijs2005/cyberdefense/internal/client/services"
	"github.com/dmitrijs2005/cyberdefense/internal/cryptox"
	"github.com/dmitrijs2005/cyberdefense/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	if err := run(context.Background(), os.Args[1:]); err != nil {
		log.Fatalf("%v", err)
	}

}

func run(ctx context.Context, args []string) error {
	cfg, err := config.LoadConfig(args)
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	hasher, err := cryptox.NewHasher(cfg.PasswordMode)
	if err != nil {
		return err
	}

	store, err := kv.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return fmt.Errorf("error opening %s store: %w", cfg.StoreBackend, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn(ctx, "store close failed", "error", err)
		}
	}()

	svc := services.NewAccountService(accounts.NewRepository(store), hasher, logger, cfg.RedirectDelay)
	cli.NewApp(cfg, svc, logger).Run(ctx)
	return nil
}
