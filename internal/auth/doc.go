// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

// Package auth provides the authentication core for Studyhall.
//
// # Domain Types
//
// Account values should be created through NewAccount, which validates
// input and assigns the identifier and timestamps. Direct struct
// initialization bypasses validation and may create invalid state.
// Repository implementations receive pre-validated values.
//
// # Components
//
//   - Argon2idHasher - one-way password hashing and verification
//   - TokenService - signed, time-bounded session tokens (HS256)
//   - AccountRepository - persistence boundary owning email uniqueness
//   - Service - registration and login, the only entry point HTTP callers use
//
// The token signing secret and TTL are injected at construction and never
// read from ambient state, so every component is unit-testable with
// injected configuration.
package auth
