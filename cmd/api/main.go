package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Rushi8087/xerox-automation/internal/app"
	"github.com/Rushi8087/xerox-automation/internal/clock"
	"github.com/Rushi8087/xerox-automation/internal/config"
	"github.com/Rushi8087/xerox-automation/internal/logging"
	"github.com/Rushi8087/xerox-automation/internal/pages"
	"github.com/Rushi8087/xerox-automation/internal/storage/spool"
	"github.com/Rushi8087/xerox-automation/internal/storage/uploads"
	transporthttp "github.com/Rushi8087/xerox-automation/internal/transport/http"
	"github.com/Rushi8087/xerox-automation/internal/whatsapp"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New(cfg.Log)
	defer func() { _ = logger.Sync() }()

	store, err := uploads.New(cfg.Storage.UploadsDir)
	if err != nil {
		logger.Fatal("open uploads store", zap.Error(err))
	}
	queue, err := spool.New(cfg.Storage.BaseDir, clock.NewSystem())
	if err != nil {
		logger.Fatal("open spool", zap.Error(err))
	}

	wa := whatsapp.NewClient(cfg.WhatsApp.PhoneNumberID, cfg.WhatsApp.AccessToken)
	registry := app.NewRegistry(clock.NewSystem())
	estimator := pages.NewEstimator(store)
	intake := app.NewIntakeService(registry, store, estimator, wa, queue,
		clock.NewSystem(), logger, app.WithPaymentVPA(cfg.App.PaymentVPA))
	chat := app.NewChatService(registry, intake, wa, wa, cfg.App.BaseURL, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/webhook", transporthttp.HandleWebhook(chat, cfg.WhatsApp.VerifyToken))
	mux.Handle("/api/order/", transporthttp.HandleGetOrder(intake))
	mux.Handle("/api/upload", transporthttp.HandleUpload(intake))
	mux.Handle("/api/update", transporthttp.HandleUpdate(intake))
	mux.Handle("/api/place-order", transporthttp.HandleConfirm(intake))
	mux.Handle("/orders", transporthttp.HandleListOrders(queue))
	mux.Handle("/orders/", transporthttp.HandleGetConfirmedOrder(queue))
	mux.Handle("/", transporthttp.NotFoundHandler())

	handler := transporthttp.RequestLogger(
		transporthttp.CORS(cfg.HTTP.CORSOrigins, mux), logger)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	logger.Info("api listening", zap.String("port", cfg.HTTP.Port))

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
