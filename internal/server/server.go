// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

// Package server assembles the GraphQL HTTP server.
package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/samber/oops"

	"github.com/cinegraph/cinegraph/internal/auth"
	"github.com/cinegraph/cinegraph/internal/catalog"
	"github.com/cinegraph/cinegraph/internal/graph"
	"github.com/cinegraph/cinegraph/internal/observability"
)

// GraphQLPath is the path the GraphQL endpoint is mounted on.
const GraphQLPath = "/graphql"

// Config carries the server's collaborators.
type Config struct {
	Addr    string
	Movies  catalog.MovieStore
	Auth    auth.Manager
	Metrics *observability.Metrics // optional
	Logger  *slog.Logger           // optional, defaults to slog.Default
}

// Server is the GraphQL HTTP server.
type Server struct {
	addr       string
	handler    http.Handler
	logger     *slog.Logger
	listener   net.Listener
	httpServer *http.Server
	running    atomic.Bool
}

// New builds a Server: schema, GraphQL handler, and the middleware
// chain (request logging, then per-request auth context resolution).
func New(cfg Config) (*Server, error) {
	if cfg.Addr == "" {
		return nil, oops.Code("SERVER_INVALID_CONFIG").Errorf("listen address is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	schema, err := graph.NewSchema(graph.Config{
		Movies:  cfg.Movies,
		Auth:    cfg.Auth,
		Metrics: cfg.Metrics,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	gql := graph.NewHandler(schema)
	gql = graph.AuthContext(cfg.Auth, logger)(gql)
	gql = requestLogging(logger, cfg.Metrics)(gql)

	mux := http.NewServeMux()
	mux.Handle(GraphQLPath, gql)

	return &Server{
		addr:    cfg.Addr,
		handler: mux,
		logger:  logger,
	}, nil
}

// Start begins serving. It returns an error channel that receives any
// error from the HTTP server after startup; the channel is closed on
// graceful stop.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			s.logger.Error("graphql server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	s.logger.Info("graphql server listening", "addr", listener.Addr().String(), "path", GraphQLPath)
	return errCh, nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.running.Store(true)
			return oops.With("operation", "shutdown graphql server").Wrap(err)
		}
	}

	s.logger.Info("graphql server stopped")
	return nil
}

// Running reports whether the server is accepting connections.
func (s *Server) Running() bool {
	return s.running.Load()
}

// Addr returns the address the server is listening on, or "" if not
// running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}
