package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/visadesk/internal/cli"
	"github.com/dmitrijs2005/visadesk/internal/config"
	"github.com/dmitrijs2005/visadesk/internal/kv"
	"github.com/dmitrijs2005/visadesk/internal/logging"
	"github.com/dmitrijs2005/visadesk/internal/records"
)

func main() {

	cfg := config.LoadConfig()

	logger, err := logging.New(logging.Options{
		Backend: cfg.Logger,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	}, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if z, ok := logger.(*logging.ZapLogger); ok {
		defer z.Sync()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closer, err := kv.Open(ctx, kv.Options{
		Backend:     cfg.StorageBackend,
		DSN:         cfg.DatabaseDSN,
		QuotaBytes:  cfg.StorageQuotaBytes,
		BusyTimeout: cfg.BusyTimeout,
	})
	if err != nil {
		logger.Error(ctx, "failed to open storage", "backend", cfg.StorageBackend, "error", err)
		return
	}
	defer closer.Close()

	rs := records.New(store,
		records.WithLogger(logger),
		records.WithChatHistoryLimit(cfg.ChatHistoryLimit),
		records.WithSessionName(cfg.SessionName),
	)

	cli.NewApp(rs, logger, os.Stdin, os.Stdout).Run(ctx)
}
