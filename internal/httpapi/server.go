// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

package httpapi

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/samber/oops"

	"github.com/studyhall/studyhall/internal/analytics"
	"github.com/studyhall/studyhall/internal/auth"
	"github.com/studyhall/studyhall/internal/classroom"
	"github.com/studyhall/studyhall/internal/profile"
)

// Recorder records API events for observability.
// *observability.Metrics satisfies it.
type Recorder interface {
	RecordRegistration()
	RecordLogin()
	RecordHTTPRequest(method string, status int)
}

// noopRecorder is used when no metrics backend is wired, as in tests.
type noopRecorder struct{}

func (noopRecorder) RecordRegistration()           {}
func (noopRecorder) RecordLogin()                  {}
func (noopRecorder) RecordHTTPRequest(string, int) {}

// Server serves the Studyhall HTTP API.
type Server struct {
	addr       string
	listener   net.Listener
	httpServer *http.Server
	running    atomic.Bool

	logger    *slog.Logger
	tokens    TokenVerifier
	metrics   Recorder
	auth      *auth.Service
	profile   *profile.Service
	classes   *classroom.Service
	analytics *analytics.Service
}

// Config carries the Server's dependencies.
type Config struct {
	Addr      string
	Logger    *slog.Logger
	Tokens    TokenVerifier
	Metrics   Recorder
	Auth      *auth.Service
	Profile   *profile.Service
	Classes   *classroom.Service
	Analytics *analytics.Service
}

// NewServer creates an API server, validating its dependencies. Metrics may
// be nil; events are then dropped.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = noopRecorder{}
	}
	if cfg.Tokens == nil {
		return nil, oops.Code("HTTPAPI_SERVER_INVALID").Errorf("token verifier is required")
	}
	if cfg.Auth == nil {
		return nil, oops.Code("HTTPAPI_SERVER_INVALID").Errorf("auth service is required")
	}
	if cfg.Profile == nil {
		return nil, oops.Code("HTTPAPI_SERVER_INVALID").Errorf("profile service is required")
	}
	if cfg.Classes == nil {
		return nil, oops.Code("HTTPAPI_SERVER_INVALID").Errorf("classroom service is required")
	}
	if cfg.Analytics == nil {
		return nil, oops.Code("HTTPAPI_SERVER_INVALID").Errorf("analytics service is required")
	}

	return &Server{
		addr:      cfg.Addr,
		logger:    cfg.Logger,
		tokens:    cfg.Tokens,
		metrics:   cfg.Metrics,
		auth:      cfg.Auth,
		profile:   cfg.Profile,
		classes:   cfg.Classes,
		analytics: cfg.Analytics,
	}, nil
}

// Handler builds the full route table with middleware applied. Exposed so
// tests can drive the API through httptest without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	guard := RequireSession(s.tokens, s.logger)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/users", s.handleListUsers)

	mux.Handle("GET /api/profile", guard(http.HandlerFunc(s.handleGetProfile)))
	mux.Handle("PUT /api/profile", guard(http.HandlerFunc(s.handleUpdateProfile)))
	mux.Handle("PUT /api/profile/password", guard(http.HandlerFunc(s.handleChangePassword)))

	mux.Handle("POST /api/classes", guard(http.HandlerFunc(s.handleCreateClass)))
	mux.Handle("POST /api/classes/join", guard(http.HandlerFunc(s.handleJoinClass)))
	mux.Handle("GET /api/classes/mine", guard(http.HandlerFunc(s.handleListMyClasses)))

	mux.Handle("GET /api/analytics/dashboard", guard(http.HandlerFunc(s.handleDashboard)))
	mux.Handle("GET /api/analytics/lectures", guard(http.HandlerFunc(s.handleLectureStats)))

	var handler http.Handler = mux
	handler = s.countRequests(handler)
	handler = RequestLogger(s.logger)(handler)
	handler = Recover(s.logger)(handler)
	return handler
}

// countRequests feeds one data point per handled request to the recorder.
func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.metrics.RecordHTTPRequest(r.Method, rec.status)
	})
}

// Start begins serving the API. It returns an error channel that receives
// any serve error after startup; the channel is closed when the server
// stops gracefully.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("api server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			s.logger.Error("api server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	s.logger.Info("api server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the API server.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.running.Store(true)
			return oops.With("operation", "shutdown_api_server").Wrap(err)
		}
	}

	s.logger.Info("api server stopped")
	return nil
}

// Addr returns the address the server is listening on.
// Returns empty string if not running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}
