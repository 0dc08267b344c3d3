// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/preparkdev/provider-dummy-adminpanel/internal/analytics"
	"github.com/preparkdev/provider-dummy-adminpanel/internal/api/dashboard"
	"github.com/preparkdev/provider-dummy-adminpanel/internal/config"
	"github.com/preparkdev/provider-dummy-adminpanel/internal/db"
	"github.com/preparkdev/provider-dummy-adminpanel/internal/ratelimit"
	"github.com/preparkdev/provider-dummy-adminpanel/internal/scheduler"
)

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	// Validate already checked the level
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.App.LogLevel))
	if err == nil {
		zerolog.SetGlobalLevel(level)
	}
	log.Logger = log.With().Str("app", cfg.App.Name).Logger()
}

func main() {
	configPath := flag.String("config", "config/app.yaml", "Path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("Failed to load configuration")
	}

	setupLogger(cfg)

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.Logger.WithContext(ctx)

	source, err := db.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open booking source: %w", err)
	}
	defer func() {
		if err := source.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close booking source")
		}
	}()

	engine, err := analytics.NewEngine(source, source)
	if err != nil {
		return err
	}

	defaultFilter := analytics.ParseRangeFilter(cfg.Reports.DefaultFilter)
	snapshots := scheduler.NewSnapshotStore()
	if err := scheduler.Init(); err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	svc, err := scheduler.ServiceInstance()
	if err != nil {
		return err
	}
	if _, err := scheduler.RegisterReportJobs(svc, engine, snapshots, cfg.Reports.SnapshotCron, defaultFilter); err != nil {
		return fmt.Errorf("register report jobs: %w", err)
	}

	dashboard.InitHandlers(engine, snapshots, dashboard.Settings{
		DefaultFilter: defaultFilter,
		TopLimit:      cfg.Reports.TopLimit,
		RecentLimit:   cfg.Reports.RecentLimit,
	})

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.On() {
		limiter = ratelimit.New(&ratelimit.Config{
			Requests:   cfg.RateLimit.Requests,
			Window:     cfg.RateLimit.Window,
			TrustProxy: cfg.RateLimit.TrustProxy,
		})
		defer limiter.Close()
	}

	server := newServer(cfg, limiter)

	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	// Run server
	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Str("driver", cfg.Database.Driver).Msg("Starting server")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := scheduler.Stop(); err != nil {
			log.Error().Err(err).Msg("Failed to stop scheduler")
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}
