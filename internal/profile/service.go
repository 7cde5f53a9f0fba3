// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

// Package profile lets an authenticated account read and change its own
// record. It consumes the auth core's outputs: the session guard resolves
// the account ID, this service acts on it.
package profile

import (
	"context"
	"log/slog"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/studyhall/studyhall/internal/auth"
)

// Service provides profile operations for the authenticated account.
type Service struct {
	accounts auth.AccountRepository
	hasher   auth.PasswordHasher
	logger   *slog.Logger
}

// NewService creates a Service, validating its dependencies.
func NewService(accounts auth.AccountRepository, hasher auth.PasswordHasher) (*Service, error) {
	return NewServiceWithLogger(accounts, hasher, slog.Default())
}

// NewServiceWithLogger creates a Service with an explicit logger.
func NewServiceWithLogger(accounts auth.AccountRepository, hasher auth.PasswordHasher, logger *slog.Logger) (*Service, error) {
	if accounts == nil {
		return nil, oops.Code("PROFILE_SERVICE_INVALID").Errorf("accounts repository is required")
	}
	if hasher == nil {
		return nil, oops.Code("PROFILE_SERVICE_INVALID").Errorf("password hasher is required")
	}
	if logger == nil {
		return nil, oops.Code("PROFILE_SERVICE_INVALID").Errorf("logger is required")
	}
	return &Service{accounts: accounts, hasher: hasher, logger: logger}, nil
}

// Get returns the public view of the account.
func (s *Service) Get(ctx context.Context, accountID ulid.ULID) (auth.AccountView, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return auth.AccountView{}, oops.Code("PROFILE_GET_FAILED").
			With("account_id", accountID.String()).
			Wrap(err)
	}
	return account.View(), nil
}

// Update applies a partial update to the account's mutable fields.
func (s *Service) Update(ctx context.Context, accountID ulid.ULID, update auth.ProfileUpdate) error {
	if update.IsEmpty() {
		return oops.Code("PROFILE_NO_FIELDS").Wrap(auth.ErrNoFields)
	}
	if update.Email != nil {
		if err := auth.ValidateEmail(*update.Email); err != nil {
			return oops.Code("PROFILE_UPDATE_FAILED").Wrap(err)
		}
	}

	if err := s.accounts.UpdateProfile(ctx, accountID, update); err != nil {
		return oops.Code("PROFILE_UPDATE_FAILED").
			With("account_id", accountID.String()).
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "profile updated", "account_id", accountID.String())
	return nil
}

// ChangePassword substitutes a new password hash after re-verifying the
// current password through the hasher. A wrong current password is the same
// rejection as a failed login.
func (s *Service) ChangePassword(ctx context.Context, accountID ulid.ULID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return oops.Code("PROFILE_MISSING_FIELDS").Wrap(auth.ErrMissingFields)
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return oops.Code("PROFILE_CHANGE_PASSWORD_FAILED").
			With("account_id", accountID.String()).
			Wrap(err)
	}

	if !s.hasher.Verify(currentPassword, account.PasswordHash) {
		return oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(auth.ErrInvalidCredentials)
	}

	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return oops.Code("PROFILE_CHANGE_PASSWORD_FAILED").
			With("operation", "hash new password").
			Wrap(err)
	}

	if err := s.accounts.UpdatePassword(ctx, accountID, digest); err != nil {
		return oops.Code("PROFILE_CHANGE_PASSWORD_FAILED").
			With("account_id", accountID.String()).
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "password changed", "account_id", accountID.String())
	return nil
}
