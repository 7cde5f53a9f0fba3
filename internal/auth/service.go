// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/samber/oops"
)

// dummyPasswordHash is verified against when a login names an unknown email.
// Running the full argon2id computation keeps response time the same for
// "no such email" and "wrong password", so neither the timing nor the error
// reveals which addresses are registered. This is NOT a real credential -
// it is a fake digest that will never match any password.
//
//nolint:gosec // G101: intentionally fake digest for timing attack prevention, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Session is the result of a successful registration or login: a bearer
// token and the public view of the account it authenticates.
type Session struct {
	Token   string
	Account AccountView
}

// Service orchestrates registration and login. HTTP routes call this and
// nothing below it.
type Service struct {
	accounts AccountRepository
	hasher   PasswordHasher
	tokens   *TokenService
	logger   *slog.Logger
}

// NewService creates a Service, validating its dependencies.
func NewService(accounts AccountRepository, hasher PasswordHasher, tokens *TokenService) (*Service, error) {
	return NewServiceWithLogger(accounts, hasher, tokens, slog.Default())
}

// NewServiceWithLogger creates a Service with an explicit logger.
func NewServiceWithLogger(accounts AccountRepository, hasher PasswordHasher, tokens *TokenService, logger *slog.Logger) (*Service, error) {
	if accounts == nil {
		return nil, oops.Code("AUTH_SERVICE_INVALID").Errorf("accounts repository is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_SERVICE_INVALID").Errorf("password hasher is required")
	}
	if tokens == nil {
		return nil, oops.Code("AUTH_SERVICE_INVALID").Errorf("token service is required")
	}
	if logger == nil {
		return nil, oops.Code("AUTH_SERVICE_INVALID").Errorf("logger is required")
	}
	return &Service{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}, nil
}

// Register creates a new account and returns a session for it.
//
// The duplicate pre-check below is advisory: two concurrent registrations
// for the same email can both pass it. The accounts store's unique
// constraint decides the race, and its violation surfaces here as
// ErrDuplicateEmail exactly like the pre-check would have.
func (s *Service) Register(ctx context.Context, displayName, email, password string) (*Session, error) {
	if strings.TrimSpace(displayName) == "" || email == "" || password == "" {
		return nil, oops.Code("AUTH_MISSING_FIELDS").Wrap(ErrMissingFields)
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, oops.Code("ACCOUNT_DUPLICATE_EMAIL").
			With("email", email).
			Wrap(ErrDuplicateEmail)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "duplicate pre-check").
			Wrap(err)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	account, err := NewAccount(displayName, email, digest)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "build account").
			Wrap(err)
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			// Lost the race: another registration committed first.
			return nil, oops.Code("ACCOUNT_DUPLICATE_EMAIL").
				With("email", email).
				Wrap(ErrDuplicateEmail)
		}
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "create account").
			Wrap(err)
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "issue token").
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "account registered",
		"account_id", account.ID.String())

	return &Session{Token: token, Account: account.View()}, nil
}

// ListAccounts returns the public directory of all accounts.
func (s *Service) ListAccounts(ctx context.Context) ([]AccountView, error) {
	views, err := s.accounts.List(ctx)
	if err != nil {
		return nil, oops.Code("ACCOUNT_LIST_FAILED").Wrap(err)
	}
	return views, nil
}

// Login verifies credentials and returns a session. An unknown email and a
// wrong password produce the identical rejection.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, oops.Code("AUTH_MISSING_FIELDS").Wrap(ErrMissingFields)
	}

	account, lookupErr := s.accounts.GetByEmail(ctx, email)

	targetHash := dummyPasswordHash
	if lookupErr == nil {
		targetHash = account.PasswordHash
	} else if !errors.Is(lookupErr, ErrNotFound) {
		return nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "get account by email").
			Wrap(lookupErr)
	}

	// Always run verification so lookup misses cost the same as mismatches.
	valid := s.hasher.Verify(password, targetHash)
	if lookupErr != nil || !valid {
		return nil, oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(ErrInvalidCredentials)
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "issue token").
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "login succeeded",
		"account_id", account.ID.String())

	return &Session{Token: token, Account: account.View()}, nil
}
