// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

package classroom

import "errors"

var (
	// ErrNotFound indicates no class matches the given invite code or ID.
	ErrNotFound = errors.New("class not found")

	// ErrAlreadyEnrolled indicates the student is already enrolled in the class.
	ErrAlreadyEnrolled = errors.New("already enrolled in class")

	// ErrMissingFields indicates a required request field was empty.
	ErrMissingFields = errors.New("missing required fields")

	// ErrDuplicateInviteCode indicates a generated invite code collided with
	// an existing class. Callers regenerate and retry.
	ErrDuplicateInviteCode = errors.New("invite code already in use")
)
