// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

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

	"github.com/cinegraph/cinegraph/internal/auth"
	"github.com/cinegraph/cinegraph/internal/catalog"
	"github.com/cinegraph/cinegraph/internal/config"
	"github.com/cinegraph/cinegraph/internal/logging"
	"github.com/cinegraph/cinegraph/internal/observability"
	"github.com/cinegraph/cinegraph/internal/server"
	"github.com/cinegraph/cinegraph/internal/store/memory"
	"github.com/cinegraph/cinegraph/internal/store/postgres"
)

const shutdownTimeout = 5 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the GraphQL API server",
		Long: `Start the GraphQL API server: the movie catalog query, the
login and createUser mutations, and the metrics endpoint.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cmd)
		},
	}

	config.RegisterFlags(cmd.Flags())
	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logging.SetDefault("cinegraph", version, cfg.Log.Format)
	logger := slog.Default()

	logger.Info("starting server",
		"http_addr", cfg.HTTP.Addr,
		"store", cfg.Store.Kind,
		"auth_strategy", cfg.Auth.Strategy,
		"hasher", cfg.Auth.Hasher,
	)

	userStore, movieStore, cleanup, err := buildStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	manager, err := buildManager(cfg, userStore, logger)
	if err != nil {
		return err
	}

	// Observability server, readiness tied to the GraphQL listener.
	var gqlServer *server.Server
	var obsServer *observability.Server
	var metrics *observability.Metrics
	if cfg.Metrics.Addr != "" {
		obsServer = observability.NewServer(cfg.Metrics.Addr, func() bool {
			return gqlServer != nil && gqlServer.Running()
		})
		metrics = obsServer.Metrics()
	}

	gqlServer, err = server.New(server.Config{
		Addr:    cfg.HTTP.Addr,
		Movies:  movieStore,
		Auth:    manager,
		Metrics: metrics,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if obsServer != nil {
		obsErrChan, obsErr := obsServer.Start()
		if obsErr != nil {
			return oops.With("operation", "start observability server").Wrap(obsErr)
		}
		go monitorServerErrors(ctx, cancel, obsErrChan, "observability")
	}

	gqlErrChan, err := gqlServer.Start()
	if err != nil {
		stopServers(nil, obsServer, logger)
		return oops.With("operation", "start graphql server").Wrap(err)
	}
	go monitorServerErrors(ctx, cancel, gqlErrChan, "graphql")

	cmd.Println("Server started on", gqlServer.Addr())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig)
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down")
	}

	stopServers(gqlServer, obsServer, logger)
	logger.Info("shutdown complete")
	return nil
}

// buildStores selects the backing stores from configuration. The
// returned cleanup releases any held connections.
func buildStores(ctx context.Context, cfg config.Config) (auth.UserStore, catalog.MovieStore, func(), error) {
	switch cfg.Store.Kind {
	case config.StoreMemory:
		return memory.NewUserStore(), memory.NewMovieStore(catalog.SeedMovies()), func() {}, nil
	case config.StorePostgres:
		pool, err := postgres.Connect(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		return postgres.NewUserRepository(pool), postgres.NewMovieRepository(pool), pool.Close, nil
	default:
		return nil, nil, nil, oops.Code("CONFIG_INVALID").With("kind", cfg.Store.Kind).Errorf("unknown store kind")
	}
}

// buildManager selects the credential hasher and token strategy from
// configuration.
func buildManager(cfg config.Config, store auth.UserStore, logger *slog.Logger) (auth.Manager, error) {
	var hasher auth.Hasher
	switch cfg.Auth.Hasher {
	case config.HasherArgon2id:
		hasher = auth.NewArgon2idHasher()
	default:
		hasher = auth.NewSHA256Hasher()
	}

	sessions := auth.NewSessions()
	switch cfg.Auth.Strategy {
	case config.StrategyJWT:
		return auth.NewJWTManagerWithLogger(store, sessions, hasher, []byte(cfg.Auth.JWTSecret), cfg.Auth.JWTTTL, logger)
	default:
		return auth.NewSessionManagerWithLogger(store, sessions, hasher, logger)
	}
}

// monitorServerErrors cancels the run context when a server reports an
// error after startup.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errChan <-chan error, name string) {
	select {
	case err, ok := <-errChan:
		if ok && err != nil {
			slog.Error("server failed", "server", name, "error", err)
			cancel()
		}
	case <-ctx.Done():
	}
}

func stopServers(gqlServer *server.Server, obsServer *observability.Server, logger *slog.Logger) {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if gqlServer != nil {
		if err := gqlServer.Stop(shutdownCtx); err != nil {
			logger.Warn("error stopping graphql server", "error", err)
		}
	}
	if obsServer != nil {
		if err := obsServer.Stop(shutdownCtx); err != nil {
			logger.Warn("error stopping observability server", "error", err)
		}
	}
}
