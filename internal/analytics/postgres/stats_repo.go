// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

// Package postgres implements the analytics repository using PostgreSQL.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/studyhall/studyhall/internal/analytics"
)

// StatsRepository implements analytics.StatsRepository using PostgreSQL.
type StatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// DashboardStats aggregates the account's enrollments and task progress.
// Only approved enrollments count; a task is pending when an assignment in
// an enrolled class has no submission from this account.
func (r *StatsRepository) DashboardStats(ctx context.Context, accountID ulid.ULID) (analytics.DashboardStats, error) {
	var stats analytics.DashboardStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM enrollments
			 WHERE student_id = $1 AND status = 'approved'),
			(SELECT COUNT(*)
			 FROM submissions s
			 JOIN assignments a ON a.id = s.assignment_id
			 JOIN enrollments e ON e.class_id = a.class_id AND e.student_id = $1
			 WHERE s.student_id = $1 AND e.status = 'approved'),
			(SELECT COUNT(*)
			 FROM assignments a
			 JOIN enrollments e ON e.class_id = a.class_id
			 WHERE e.student_id = $1 AND e.status = 'approved'
			   AND NOT EXISTS (
				SELECT 1 FROM submissions s
				WHERE s.assignment_id = a.id AND s.student_id = $1
			   ))
	`, accountID.String()).Scan(&stats.EnrolledCourses, &stats.CompletedTasks, &stats.PendingTasks)
	if err != nil {
		return analytics.DashboardStats{}, oops.Code("ANALYTICS_DASHBOARD_QUERY_FAILED").
			With("operation", "aggregate dashboard stats").
			With("account_id", accountID.String()).
			Wrap(err)
	}
	return stats, nil
}

// LectureStats aggregates lecture activity across all classes.
func (r *StatsRepository) LectureStats(ctx context.Context) (analytics.LectureStats, error) {
	var stats analytics.LectureStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(participant_count), 0),
			COUNT(*) FILTER (WHERE screen_shared)
		FROM lectures
	`).Scan(&stats.Scheduled, &stats.Participants, &stats.ScreenShares)
	if err != nil {
		return analytics.LectureStats{}, oops.Code("ANALYTICS_LECTURES_QUERY_FAILED").
			With("operation", "aggregate lecture stats").
			Wrap(err)
	}
	return stats, nil
}
