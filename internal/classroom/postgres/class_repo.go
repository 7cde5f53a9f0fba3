// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

// Package postgres implements the classroom repository using PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/studyhall/studyhall/internal/classroom"
)

// ClassRepository implements classroom.ClassRepository using PostgreSQL.
// Two unique constraints do the heavy lifting: the invite code index turns
// generation collisions into ErrDuplicateInviteCode, and the enrollment
// primary key turns repeat joins into ErrAlreadyEnrolled.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

// Create stores a new class.
func (r *ClassRepository) Create(ctx context.Context, class *classroom.Class) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO classes (id, title, description, invite_code, instructor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		class.ID.String(),
		class.Title,
		class.Description,
		class.InviteCode,
		class.InstructorID.String(),
		class.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return oops.Code("CLASS_DUPLICATE_INVITE_CODE").
				With("invite_code", class.InviteCode).
				Wrap(classroom.ErrDuplicateInviteCode)
		}
		return oops.Code("CLASS_CREATE_FAILED").
			With("operation", "insert class").
			Wrap(err)
	}
	return nil
}

// GetByInviteCode retrieves a class by its invite code.
func (r *ClassRepository) GetByInviteCode(ctx context.Context, code string) (*classroom.Class, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, invite_code, instructor_id, created_at
		FROM classes
		WHERE invite_code = $1
	`, code)

	class, err := scanClass(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("CLASS_NOT_FOUND").
			With("invite_code", code).
			Wrap(classroom.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("CLASS_GET_BY_CODE_FAILED").
			With("operation", "get class by invite code").
			Wrap(err)
	}
	return class, nil
}

// Enroll records a student's membership in a class.
func (r *ClassRepository) Enroll(ctx context.Context, enrollment *classroom.Enrollment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO enrollments (class_id, student_id, status, created_at)
		VALUES ($1, $2, $3, $4)
	`,
		enrollment.ClassID.String(),
		enrollment.StudentID.String(),
		enrollment.Status,
		enrollment.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return oops.Code("CLASS_ALREADY_ENROLLED").
				With("class_id", enrollment.ClassID.String()).
				With("student_id", enrollment.StudentID.String()).
				Wrap(classroom.ErrAlreadyEnrolled)
		}
		return oops.Code("CLASS_ENROLL_FAILED").
			With("operation", "insert enrollment").
			Wrap(err)
	}
	return nil
}

// ListByAccount returns classes the account instructs or is enrolled in,
// newest first.
func (r *ClassRepository) ListByAccount(ctx context.Context, accountID ulid.ULID) ([]classroom.ClassView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.title, c.description, c.invite_code, c.instructor_id, c.created_at
		FROM classes c
		WHERE c.instructor_id = $1
		   OR EXISTS (
			SELECT 1 FROM enrollments e
			WHERE e.class_id = c.id AND e.student_id = $1
		   )
		ORDER BY c.created_at DESC
	`, accountID.String())
	if err != nil {
		return nil, oops.Code("CLASS_LIST_FAILED").
			With("operation", "list classes by account").
			Wrap(err)
	}
	defer rows.Close()

	var views []classroom.ClassView
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, oops.Code("CLASS_LIST_FAILED").
				With("operation", "scan class row").
				Wrap(err)
		}
		views = append(views, class.View())
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("CLASS_LIST_FAILED").Wrap(err)
	}
	return views, nil
}

// scanClass scans a single row into a Class.
// Callers are responsible for handling pgx.ErrNoRows.
func scanClass(row pgx.Row) (*classroom.Class, error) {
	var (
		idStr         string
		title         string
		description   string
		inviteCode    string
		instructorStr string
		createdAt     time.Time
	)

	if err := row.Scan(&idStr, &title, &description, &inviteCode, &instructorStr, &createdAt); err != nil {
		return nil, err //nolint:wrapcheck // callers branch on pgx.ErrNoRows
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("CLASS_CORRUPT_ID").
			With("id", idStr).
			Wrap(err)
	}
	instructorID, err := ulid.Parse(instructorStr)
	if err != nil {
		return nil, oops.Code("CLASS_CORRUPT_ID").
			With("instructor_id", instructorStr).
			Wrap(err)
	}

	return &classroom.Class{
		ID:           id,
		Title:        title,
		Description:  description,
		InviteCode:   inviteCode,
		InstructorID: instructorID,
		CreatedAt:    createdAt,
	}, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
