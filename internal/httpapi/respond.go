// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/studyhall/studyhall/internal/auth"
	"github.com/studyhall/studyhall/internal/classroom"
	"github.com/studyhall/studyhall/pkg/errutil"
)

// messagePayload is the body of every non-2xx response.
type messagePayload struct {
	Message string `json:"message"`
}

// writeJSON encodes v as the response body. Encoding failures are logged
// and abandoned; the status line has already been sent.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// writeMessage sends a {"message": ...} body with the given status.
func writeMessage(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	writeJSON(w, logger, status, messagePayload{Message: message})
}

// writeError translates a domain error into a status code and a short
// user-facing message. Unrecognized errors become a generic 500; their
// detail goes to the log only.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status, message := errorStatus(err)
	if status == http.StatusInternalServerError {
		errutil.LogError(logger, "request failed", err)
	}
	writeMessage(w, logger, status, message)
}

// errorStatus maps domain sentinels to HTTP status codes and messages.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrMissingFields), errors.Is(err, classroom.ErrMissingFields):
		return http.StatusBadRequest, "Missing required fields."
	case errors.Is(err, auth.ErrNoFields):
		return http.StatusBadRequest, "No update fields provided."
	case errors.Is(err, auth.ErrInvalidEmail):
		return http.StatusBadRequest, "Invalid email address."
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials."
	case errors.Is(err, auth.ErrDuplicateEmail):
		return http.StatusConflict, "Email already in use."
	case errors.Is(err, classroom.ErrAlreadyEnrolled):
		return http.StatusConflict, "Already enrolled in this class."
	case errors.Is(err, auth.ErrNotFound):
		return http.StatusNotFound, "User not found."
	case errors.Is(err, classroom.ErrNotFound):
		return http.StatusNotFound, "Class not found."
	default:
		return http.StatusInternalServerError, "Internal server error."
	}
}
