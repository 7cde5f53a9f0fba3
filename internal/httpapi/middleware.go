// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/studyhall/studyhall/internal/auth"
)

// claimContextKey is the context key under which the session guard stores
// the verified claim. Unexported so only ClaimFromContext can read it.
type claimContextKey struct{}

// ClaimFromContext returns the session claim stored by RequireSession.
// The second return is false on requests that never passed the guard.
func ClaimFromContext(ctx context.Context) (*auth.SessionClaim, bool) {
	claim, ok := ctx.Value(claimContextKey{}).(*auth.SessionClaim)
	return claim, ok
}

// TokenVerifier verifies a bearer token and returns its claim.
// *auth.TokenService satisfies it; tests substitute their own.
type TokenVerifier interface {
	Verify(token string) (*auth.SessionClaim, error)
}

// RequireSession is the session guard. A request with no usable
// Authorization header is rejected 401 before any verification work; a
// present token that fails verification for any reason, expiry included,
// is rejected 403. Handlers behind this middleware can rely on
// ClaimFromContext succeeding.
func RequireSession(tokens TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeMessage(w, logger, http.StatusUnauthorized, "No token provided.")
				return
			}

			claim, err := tokens.Verify(token)
			if err != nil {
				writeMessage(w, logger, http.StatusForbidden, "Invalid token.")
				return
			}

			ctx := context.WithValue(r.Context(), claimContextKey{}, claim)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns "" for a missing header, a non-Bearer scheme, or an
// empty credential.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs one line per request after it completes.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.InfoContext(r.Context(), "request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// Recover converts a handler panic into a JSON 500 instead of a dropped
// connection.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("handler panic",
						"method", r.Method,
						"path", r.URL.Path,
						"panic", rec,
					)
					writeMessage(w, logger, http.StatusInternalServerError, "Internal server error.")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
