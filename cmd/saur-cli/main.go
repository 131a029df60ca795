// Command saur-cli queries the SAUR API with the account stored in a
// credentials file and prints the JSON payload.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/peteraglen/saur-go-client/internal/commands"
	"github.com/peteraglen/saur-go-client/internal/config"
	"github.com/peteraglen/saur-go-client/internal/logger"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	log, err := logger.New("saur-cli", cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if err := commands.NewRootCommand(cfg, log, version).ExecuteContext(ctx); err != nil {
		log.Error("saur.command_failed", zap.Error(err))
		_ = log.Sync()
		stop()
		os.Exit(1)
	}
}
