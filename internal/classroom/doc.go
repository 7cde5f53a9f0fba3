// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

// Package classroom manages classes and enrollments.
//
// An instructor creates a class and receives a short invite code; students
// join by presenting that code. The code is the only join handle ever handed
// out, so it is generated from crypto/rand over an alphabet with no
// ambiguous glyphs, and uniqueness is enforced by the store.
//
// # Domain Types
//
//   - Class: an instructor-owned course with a unique invite code.
//   - Enrollment: a student's membership in a class.
//
// # Components
//
//   - Service: create, join, and list operations over a ClassRepository.
//   - ClassRepository: persistence contract, implemented under postgres/.
package classroom
