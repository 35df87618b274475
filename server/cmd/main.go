package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"splashbot/server"
	"splashbot/server/application"
	"splashbot/server/config"
	"splashbot/server/service"
	"splashbot/server/telemetry"

	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	tel, err := telemetry.Setup(ctx, cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := tel.Shutdown(flushCtx); err != nil {
			slog.Error("telemetry shutdown failed", "err", err)
		}
	}()

	var metrics service.MetricsRecorder = service.NoopMetrics{}
	if cfg.OTelEnabled {
		m, err := service.NewOTelMetrics(tel.MeterProvider.Meter("splashbot/server"))
		if err != nil {
			return err
		}
		metrics = m
	}

	svc, err := service.NewDecisionService(application.NewEngine(), metrics, service.RealClock{}, service.SnapshotValidator{})
	if err != nil {
		return err
	}

	handler := server.Route(server.Dependencies{
		Decider:     svc,
		AuthSecret:  cfg.AuthSecret,
		IdleTimeout: cfg.IdleTimeout,
	})
	addr := net.JoinHostPort(cfg.Addr, cfg.Port)
	s := server.NewServer(addr, handler)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		slog.InfoContext(ctx, "server listening", "addr", addr, "auth", cfg.AuthSecret != "", "otel", cfg.OTelEnabled)
		if err := s.Serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		slog.InfoContext(ctx, "shutdown initiated")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(ctx, "graceful shutdown failed", "error", err)
			if err := s.Close(); err != nil {
				slog.ErrorContext(ctx, "forced close failed", "error", err)
			}
		}
		return nil
	})

	err = eg.Wait()
	slog.InfoContext(ctx, "server shutdown complete")
	return err
}
