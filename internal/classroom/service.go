// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

package classroom

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// maxInviteCodeRetries bounds the regeneration loop on invite code
// collisions. With a 32-character alphabet and 6 positions a collision is
// already vanishingly unlikely; three attempts is plenty.
const maxInviteCodeRetries = 3

// Service provides class creation, joining, and listing.
type Service struct {
	classes ClassRepository
	logger  *slog.Logger
}

// NewService creates a Service, validating its dependencies.
func NewService(classes ClassRepository) (*Service, error) {
	return NewServiceWithLogger(classes, slog.Default())
}

// NewServiceWithLogger creates a Service with an explicit logger.
func NewServiceWithLogger(classes ClassRepository, logger *slog.Logger) (*Service, error) {
	if classes == nil {
		return nil, oops.Code("CLASSROOM_SERVICE_INVALID").Errorf("class repository is required")
	}
	if logger == nil {
		return nil, oops.Code("CLASSROOM_SERVICE_INVALID").Errorf("logger is required")
	}
	return &Service{classes: classes, logger: logger}, nil
}

// Create makes a new class owned by the instructor and returns it with its
// invite code. Invite code collisions are retried with a fresh code.
func (s *Service) Create(ctx context.Context, instructorID ulid.ULID, title, description string) (*ClassView, error) {
	class, err := NewClass(instructorID, title, description)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		err = s.classes.Create(ctx, class)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrDuplicateInviteCode) || attempt+1 >= maxInviteCodeRetries {
			return nil, oops.Code("CLASS_CREATE_FAILED").
				With("class_id", class.ID.String()).
				Wrap(err)
		}
		code, codeErr := NewInviteCode()
		if codeErr != nil {
			return nil, codeErr
		}
		class.InviteCode = code
	}

	s.logger.InfoContext(ctx, "class created",
		"class_id", class.ID.String(),
		"instructor_id", instructorID.String(),
	)
	view := class.View()
	return &view, nil
}

// Join enrolls the student in the class matching the invite code.
func (s *Service) Join(ctx context.Context, studentID ulid.ULID, inviteCode string) (*ClassView, error) {
	if inviteCode == "" {
		return nil, oops.Code("CLASS_MISSING_FIELDS").Wrap(ErrMissingFields)
	}

	class, err := s.classes.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, oops.Code("CLASS_JOIN_FAILED").
			With("invite_code", inviteCode).
			Wrap(err)
	}

	enrollment := &Enrollment{
		ClassID:   class.ID,
		StudentID: studentID,
		Status:    EnrollmentApproved,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.classes.Enroll(ctx, enrollment); err != nil {
		return nil, oops.Code("CLASS_JOIN_FAILED").
			With("class_id", class.ID.String()).
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "student joined class",
		"class_id", class.ID.String(),
		"student_id", studentID.String(),
	)
	view := class.View()
	return &view, nil
}

// ListMine returns classes the account instructs or attends.
func (s *Service) ListMine(ctx context.Context, accountID ulid.ULID) ([]ClassView, error) {
	views, err := s.classes.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, oops.Code("CLASS_LIST_FAILED").
			With("account_id", accountID.String()).
			Wrap(err)
	}
	return views, nil
}
