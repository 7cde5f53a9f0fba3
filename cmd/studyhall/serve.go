// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/studyhall/studyhall/internal/analytics"
	analyticspg "github.com/studyhall/studyhall/internal/analytics/postgres"
	"github.com/studyhall/studyhall/internal/auth"
	authpg "github.com/studyhall/studyhall/internal/auth/postgres"
	"github.com/studyhall/studyhall/internal/classroom"
	classroompg "github.com/studyhall/studyhall/internal/classroom/postgres"
	"github.com/studyhall/studyhall/internal/config"
	"github.com/studyhall/studyhall/internal/httpapi"
	"github.com/studyhall/studyhall/internal/logging"
	"github.com/studyhall/studyhall/internal/observability"
	"github.com/studyhall/studyhall/internal/profile"
	"github.com/studyhall/studyhall/internal/store"
)

// shutdownTimeout bounds graceful shutdown of the HTTP servers.
const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Studyhall API server",
		Long: `Start the HTTP API server, connecting to PostgreSQL and exposing
metrics and health probes on a separate listener.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	config.RegisterFlags(cmd.Flags())
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}

	logging.SetDefault("studyhall", version, cfg.LogFormat)
	logger := slog.Default()

	logger.Info("starting studyhall server",
		"listen_addr", cfg.ListenAddr,
		"log_format", cfg.LogFormat,
	)

	pool, err := store.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer pool.Close()

	logger.Info("connected to database")

	tokens, err := auth.NewTokenService([]byte(cfg.TokenSecret), cfg.TokenTTL)
	if err != nil {
		return oops.Code("TOKEN_SERVICE_INVALID").Wrap(err)
	}

	hasher := auth.NewArgon2idHasher()
	accountRepo := authpg.NewAccountRepository(pool)
	classRepo := classroompg.NewClassRepository(pool)
	statsRepo := analyticspg.NewStatsRepository(pool)

	authSvc, err := auth.NewService(accountRepo, hasher, tokens)
	if err != nil {
		return oops.Code("SERVICE_INIT_FAILED").Wrap(err)
	}
	profileSvc, err := profile.NewService(accountRepo, hasher)
	if err != nil {
		return oops.Code("SERVICE_INIT_FAILED").Wrap(err)
	}
	classSvc, err := classroom.NewService(classRepo)
	if err != nil {
		return oops.Code("SERVICE_INIT_FAILED").Wrap(err)
	}
	analyticsSvc, err := analytics.NewService(statsRepo)
	if err != nil {
		return oops.Code("SERVICE_INIT_FAILED").Wrap(err)
	}

	// Observability server is optional; an empty metrics address disables it.
	var obsServer *observability.Server
	var obsErrCh <-chan error
	var metrics httpapi.Recorder
	if cfg.MetricsAddr != "" {
		obsServer = observability.NewServer(cfg.MetricsAddr, func() bool {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Ping(pingCtx) == nil
		})
		obsErrCh, err = obsServer.Start()
		if err != nil {
			return oops.Code("OBSERVABILITY_START_FAILED").Wrap(err)
		}
		metrics = obsServer.Metrics()
	}

	apiServer, err := httpapi.NewServer(httpapi.Config{
		Addr:      cfg.ListenAddr,
		Logger:    logger,
		Tokens:    tokens,
		Metrics:   metrics,
		Auth:      authSvc,
		Profile:   profileSvc,
		Classes:   classSvc,
		Analytics: analyticsSvc,
	})
	if err != nil {
		return oops.Code("API_SERVER_INVALID").Wrap(err)
	}

	apiErrCh, err := apiServer.Start()
	if err != nil {
		return oops.Code("API_START_FAILED").Wrap(err)
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-sigCtx.Done():
		logger.Info("shutdown signal received")
	case err := <-apiErrCh:
		if err != nil {
			return oops.Code("API_SERVER_FAILED").Wrap(err)
		}
	case err := <-obsErrCh:
		if err != nil {
			return oops.Code("OBSERVABILITY_SERVER_FAILED").Wrap(err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Error("failed to stop api server", "error", err)
	}
	if obsServer != nil {
		if err := obsServer.Stop(shutdownCtx); err != nil {
			logger.Error("failed to stop observability server", "error", err)
		}
	}

	logger.Info("studyhall server stopped")
	return nil
}
