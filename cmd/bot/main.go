package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FACorreiaa/loci-travel-bot/internal/domain/planner"
	"github.com/FACorreiaa/loci-travel-bot/internal/transport"
	"github.com/FACorreiaa/loci-travel-bot/pkg/config"
	"github.com/FACorreiaa/loci-travel-bot/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := InitDependencies(ctx, cfg, log)
	if err != nil {
		log.Error("failed to init dependencies", slog.Any("error", err))
		os.Exit(1)
	}
	defer deps.Cleanup()

	console := transport.NewConsole(os.Stdin, os.Stdout, 1)

	svc := planner.NewService(
		deps.SessionStore,
		deps.UserRepo,
		deps.FeedbackRepo,
		deps.Gateway,
		deps.Localizer,
		console,
		log,
	)

	metricsSrv := startMetricsServer(cfg.Metrics.Addr, log)
	defer shutdownMetricsServer(metricsSrv, log)

	log.Info("bot started, reading console input", slog.String("metrics_addr", cfg.Metrics.Addr))

	if err := console.Listen(ctx, svc.HandleInbound); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("listener stopped", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("shutting down")
}

func startMetricsServer(addr string, log *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", slog.Any("error", err))
		}
	}()

	return srv
}

func shutdownMetricsServer(srv *http.Server, log *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("metrics server shutdown failed", slog.Any("error", err))
	}
}
