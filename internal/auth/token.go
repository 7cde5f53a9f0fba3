// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// DefaultTokenTTL is the session token lifetime fixed by policy.
const DefaultTokenTTL = time.Hour

// Token verification failures. Expiry is separated from everything else so
// callers that want to distinguish a stale session from a forged one can;
// the HTTP session guard deliberately collapses both.
var (
	// ErrTokenInvalid is returned for a bad signature, a malformed payload,
	// or a token signed with an unexpected algorithm.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired is returned when the signature is valid but the
	// token's lifetime has elapsed.
	ErrTokenExpired = errors.New("token expired")
)

// SessionClaim is the decoded, verified content of a bearer token. It is
// reconstructed from the signed payload on every verification and owned by
// the request that produced it; nothing persists it.
type SessionClaim struct {
	AccountID ulid.ULID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// tokenClaims is the wire shape of the JWT payload.
type tokenClaims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, self-contained session tokens.
// It holds only the immutable signing secret and TTL policy, so it is safe
// for unsynchronized concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService. The secret comes from process
// configuration, loaded once at startup; it is not rotated at runtime.
// A zero or negative ttl falls back to DefaultTokenTTL.
func NewTokenService(secret []byte, ttl time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, oops.Code("AUTH_SECRET_REQUIRED").Errorf("token signing secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: secret, ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue produces a signed token carrying the account identity, valid from
// now until now+TTL.
func (s *TokenService) Issue(accountID ulid.ULID) (string, error) {
	if accountID.Compare(ulid.ULID{}) == 0 {
		return "", oops.Code("AUTH_TOKEN_ISSUE_FAILED").Errorf("account ID cannot be zero")
	}

	now := time.Now()
	claims := &tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", oops.Code("AUTH_TOKEN_ISSUE_FAILED").
			With("operation", "sign token").
			Wrap(err)
	}
	return signed, nil
}

// Verify checks signature integrity and expiry, returning the claim carried
// by the token. The expected signing algorithm is pinned: a token whose
// header names anything but HMAC is rejected before key lookup, so a token
// minted under a different algorithm (or secret) never verifies.
func (s *TokenService) Verify(token string) (*SessionClaim, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, oops.Code("AUTH_TOKEN_ALG_MISMATCH").
				With("alg", t.Header["alg"]).
				Errorf("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	accountID, err := ulid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, ErrTokenInvalid
	}

	return &SessionClaim{
		AccountID: accountID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
