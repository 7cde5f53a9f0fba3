// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

package auth

import "errors"

// Sentinel errors shared across the auth boundary. Services wrap these with
// structured context; callers classify with errors.Is and must never branch
// on message text.
var (
	// ErrNotFound is returned when a requested account does not exist.
	ErrNotFound = errors.New("account not found")

	// ErrDuplicateEmail is returned when an email address is already
	// registered. The store's unique constraint is the authority; the
	// pre-check in Register only makes the common case fail early.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password so callers cannot enumerate registered addresses.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMissingFields is returned when a required input is empty.
	ErrMissingFields = errors.New("missing required fields")

	// ErrNoFields is returned when a partial update carries no fields.
	ErrNoFields = errors.New("no update fields provided")

	// ErrInvalidEmail is returned when an email address fails the shape
	// check.
	ErrInvalidEmail = errors.New("email address is not valid")
)
