// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

// Package httpapi is the HTTP transport for the Studyhall API.
//
// Handlers are thin: decode the request, call the matching service, and map
// the result through a single error translator. The translator is the only
// place where domain sentinels become status codes, and its payloads carry
// only short user-facing messages. Whatever the services wrap around those
// sentinels is logged here and never echoed to the client.
//
// Protected routes sit behind the session guard middleware, which resolves
// the bearer token to a SessionClaim and stores it on the request context.
package httpapi
