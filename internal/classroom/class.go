// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

package classroom

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// inviteCodeLen is the length of generated invite codes.
const inviteCodeLen = 6

// inviteCodeAlphabet omits 0/O and 1/I, which read ambiguously when a code
// is written on a whiteboard.
const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Class is a course owned by an instructor. Students join it through the
// invite code.
type Class struct {
	ID           ulid.ULID
	Title        string
	Description  string
	InviteCode   string
	InstructorID ulid.ULID
	CreatedAt    time.Time
}

// Enrollment records a student's membership in a class.
type Enrollment struct {
	ClassID   ulid.ULID
	StudentID ulid.ULID
	Status    string
	CreatedAt time.Time
}

// EnrollmentApproved is the status given to enrollments on join.
const EnrollmentApproved = "approved"

// ClassView is the serializable shape returned to clients.
type ClassView struct {
	ID           ulid.ULID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	InviteCode   string    `json:"invite_code"`
	InstructorID ulid.ULID `json:"instructor_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// View returns the serializable shape of the class.
func (c *Class) View() ClassView {
	return ClassView{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		InviteCode:   c.InviteCode,
		InstructorID: c.InstructorID,
		CreatedAt:    c.CreatedAt,
	}
}

// NewClass creates a class with a fresh ID and invite code.
func NewClass(instructorID ulid.ULID, title, description string) (*Class, error) {
	if title == "" {
		return nil, oops.Code("CLASS_MISSING_FIELDS").Wrap(ErrMissingFields)
	}

	code, err := NewInviteCode()
	if err != nil {
		return nil, err
	}

	return &Class{
		ID:           ulid.Make(),
		Title:        title,
		Description:  description,
		InviteCode:   code,
		InstructorID: instructorID,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// NewInviteCode returns a random 6-character uppercase code.
func NewInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLen)
	if _, err := rand.Read(buf); err != nil {
		return "", oops.Code("CLASS_INVITE_CODE_FAILED").
			With("operation", "read random bytes").
			Wrap(err)
	}
	for i, b := range buf {
		buf[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(buf), nil
}

// ClassRepository is the persistence contract for classes and enrollments.
type ClassRepository interface {
	// Create persists a new class. A colliding invite code returns
	// ErrDuplicateInviteCode so the caller can regenerate and retry.
	Create(ctx context.Context, class *Class) error

	// GetByInviteCode returns the class with the given code, or ErrNotFound.
	GetByInviteCode(ctx context.Context, code string) (*Class, error)

	// Enroll records a student's membership. A repeat join returns
	// ErrAlreadyEnrolled.
	Enroll(ctx context.Context, enrollment *Enrollment) error

	// ListByAccount returns classes the account instructs or is enrolled in,
	// newest first.
	ListByAccount(ctx context.Context, accountID ulid.ULID) ([]ClassView, error)
}
