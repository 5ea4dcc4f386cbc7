package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Rushi8087/xerox-automation/internal/clock"
	"github.com/Rushi8087/xerox-automation/internal/config"
	"github.com/Rushi8087/xerox-automation/internal/dispatch"
	"github.com/Rushi8087/xerox-automation/internal/logging"
	"github.com/Rushi8087/xerox-automation/internal/printer"
	"github.com/Rushi8087/xerox-automation/internal/storage/spool"
	"github.com/Rushi8087/xerox-automation/internal/storage/uploads"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New(cfg.Log)
	defer func() { _ = logger.Sync() }()

	if cfg.Printer.Name == "" {
		logger.Fatal("printer.name is required")
	}

	store, err := uploads.New(cfg.Storage.UploadsDir)
	if err != nil {
		logger.Fatal("open uploads store", zap.Error(err))
	}
	queue, err := spool.New(cfg.Storage.BaseDir, clock.NewSystem())
	if err != nil {
		logger.Fatal("open spool", zap.Error(err))
	}

	var printerOpts []printer.Option
	if cfg.Printer.SumatraPath != "" {
		printerOpts = append(printerOpts, printer.WithSumatraPath(cfg.Printer.SumatraPath))
	}
	gateway := printer.New(printer.NewExecRunner(), cfg.Printer.Name, logger, printerOpts...)

	orchestrator := dispatch.New(queue, gateway, store, logger,
		dispatch.WithSettleDelay(cfg.Printer.SettleDelay),
		dispatch.WithRetryDelay(cfg.Printer.RetryDelay),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("dispatcher starting",
		zap.String("printer", cfg.Printer.Name),
		zap.String("spool", queue.OrdersDir()))

	if err := orchestrator.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("dispatcher stopped", zap.Error(err))
	}
	logger.Info("dispatcher stopped")
}
