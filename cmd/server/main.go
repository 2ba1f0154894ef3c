package main

import (
	"CreditScoreZ/internal/bootstrap"
	"CreditScoreZ/internal/config"
	"CreditScoreZ/internal/handlers"
	"CreditScoreZ/internal/middleware"
	"CreditScoreZ/internal/service"
	"CreditScoreZ/internal/state"
	"CreditScoreZ/internal/status"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	backend, closeBackend, err := bootstrap.OpenBackend(ctx, cfg)
	if err != nil {
		sugar.Fatalw("failed to open ledger backend", "mode", cfg.LedgerMode, "error", err)
	}
	defer func() {
		if err := closeBackend(); err != nil {
			sugar.Errorw("Failed to close ledger backend", "error", err)
		}
	}()

	reporter := status.NewReporter(sugar)
	defer reporter.Stop()

	dashboard := service.NewDashboard(service.Deps{
		Reader:          backend.Reader,
		Writer:          backend.Writer,
		FHE:             backend.FHE,
		Store:           state.NewStore(),
		Status:          reporter,
		Logger:          sugar,
		LoadConcurrency: cfg.LoadConcurrency,
	})

	h := handlers.NewHandler(dashboard, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"LedgerMode", cfg.LedgerMode,
		"Contract", backend.Reader.Address(),
		"Account", backend.Writer.Account(),
		"LoadConcurrency", cfg.LoadConcurrency,
	)

	srv := &http.Server{Addr: addr, Handler: h.Router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Errorw("Server failed", "error", err)
	}
}
