// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

package auth

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// emailRegex is a light shape check: one @ with something on both sides and
// a dot in the domain. Real validation happens when mail is delivered.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks the shape of an email address.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return oops.Code("ACCOUNT_INVALID_EMAIL").
			With("email", email).
			Wrap(ErrInvalidEmail)
	}
	return nil
}

// Account represents one registered user.
//
// Email is stored as given (case-sensitive) and is unique across all
// accounts; it is the login key. PasswordHash never leaves the
// hasher/repository boundary: View is the only representation handed to
// transport code.
type Account struct {
	ID           ulid.ULID
	DisplayName  string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewAccount creates a validated Account with a fresh identifier. The
// password must already be hashed; this constructor never sees plaintext.
func NewAccount(displayName, email, passwordHash string) (*Account, error) {
	if strings.TrimSpace(displayName) == "" {
		return nil, oops.Code("ACCOUNT_INVALID_NAME").Wrap(ErrMissingFields)
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, oops.Code("ACCOUNT_INVALID_HASH").Errorf("password hash cannot be empty")
	}

	now := time.Now()
	return &Account{
		ID:           ulid.Make(),
		DisplayName:  displayName,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// AccountView is the public shape of an account. It never carries the
// password hash.
type AccountView struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"name"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
}

// View returns the public representation of the account.
func (a *Account) View() AccountView {
	return AccountView{
		ID:          a.ID.String(),
		DisplayName: a.DisplayName,
		Email:       a.Email,
		CreatedAt:   a.CreatedAt,
	}
}

// ProfileUpdate is a partial update of an account's mutable fields. Nil
// fields are left untouched.
type ProfileUpdate struct {
	DisplayName *string
	Email       *string
}

// IsEmpty reports whether the update carries no fields.
func (u ProfileUpdate) IsEmpty() bool {
	return u.DisplayName == nil && u.Email == nil
}

// AccountRepository manages account persistence. It owns the invariant that
// email is globally unique: implementations must translate the store's
// uniqueness violation on create (or an email change) into ErrDuplicateEmail
// and report missing rows as ErrNotFound.
type AccountRepository interface {
	// Create stores a new account.
	Create(ctx context.Context, account *Account) error

	// GetByEmail retrieves an account by exact email match.
	GetByEmail(ctx context.Context, email string) (*Account, error)

	// GetByID retrieves an account by ID.
	GetByID(ctx context.Context, id ulid.ULID) (*Account, error)

	// UpdatePassword replaces only the password hash.
	UpdatePassword(ctx context.Context, id ulid.ULID, passwordHash string) error

	// UpdateProfile applies a partial update. Implementations may assume
	// the caller already rejected an empty update.
	UpdateProfile(ctx context.Context, id ulid.ULID, update ProfileUpdate) error

	// List returns public views of all accounts, oldest first.
	List(ctx context.Context) ([]AccountView, error)
}
