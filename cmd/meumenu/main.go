package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/audit"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/auth"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/billing"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/config"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/server"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/store/postgres"
	redisstore "github.com/srdevmiller/meumeu3.0-sub000/internal/store/redis"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/visits"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Initialize structured logging from environment.
	logLevel := os.Getenv("MEUMENU_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("MEUMENU_LOG_FORMAT")
	if logFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	ctx := context.Background()

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Database.MaxConns < 0 || cfg.Database.MaxConns > math.MaxInt32 {
		return fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
	}

	// Connect to PostgreSQL and apply the schema.
	store, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns), cfg.Database.StmtTimeout) //nolint:gosec // bounds checked above
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Bootstrap(ctx); err != nil {
		return err
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Visit dedup gate: Redis when configured, in-process otherwise.
	// The in-process gate loses state on restart, which only means a few
	// repeat visits get counted once more.
	var gate visits.Gate
	if cfg.Redis.Addr != "" {
		redisGate, redisErr := redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if redisErr != nil {
			return redisErr
		}
		defer redisGate.Close()
		gate = redisGate
	} else {
		log.Warn().Msg("MEUMENU_REDIS_ADDR not set; using in-process visit dedup")
		gate = visits.NewMemoryGate(ctx)
	}

	tracker := visits.NewTracker(gate, store.Visits(), domain.VisitCooldown)
	recorder := audit.NewRecorder(store.Audit())

	// Create auth service.
	authSvc := auth.NewService(store.Merchants(), cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	// PIX payment provider client.
	if cfg.Billing.BaseURL == "" {
		log.Warn().Msg("MEUMENU_BILLING_BASE_URL not set; checkout calls will fail")
	}
	pix := billing.NewPixClient(cfg.Billing.BaseURL, cfg.Billing.Timeout)

	// Create HTTP server with all routes wired.
	srv := server.New(ctx, cfg, store, authSvc, tracker, recorder, pix)

	// Start server in background goroutine.
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	log.Info().Msg("stopped")
	return nil
}
