// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

// Package analytics aggregates per-account dashboard figures and
// platform-wide lecture figures. Stats are computed from the relational
// store on every request rather than maintained as counters, so they can
// never drift from the underlying rows.
package analytics

import (
	"context"
	"log/slog"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// DashboardStats summarizes an account's standing across its classes.
type DashboardStats struct {
	EnrolledCourses int `json:"enrolledCourses"`
	CompletedTasks  int `json:"completedTasks"`
	PendingTasks    int `json:"pendingTasks"`
}

// LectureStats summarizes lecture activity across the platform.
type LectureStats struct {
	Scheduled    int `json:"scheduled"`
	Participants int `json:"participants"`
	ScreenShares int `json:"screenShares"`
}

// StatsRepository is the persistence contract for stat aggregation.
type StatsRepository interface {
	DashboardStats(ctx context.Context, accountID ulid.ULID) (DashboardStats, error)
	LectureStats(ctx context.Context) (LectureStats, error)
}

// Service exposes stat aggregation to the transport layer.
type Service struct {
	stats  StatsRepository
	logger *slog.Logger
}

// NewService creates a Service, validating its dependencies.
func NewService(stats StatsRepository) (*Service, error) {
	return NewServiceWithLogger(stats, slog.Default())
}

// NewServiceWithLogger creates a Service with an explicit logger.
func NewServiceWithLogger(stats StatsRepository, logger *slog.Logger) (*Service, error) {
	if stats == nil {
		return nil, oops.Code("ANALYTICS_SERVICE_INVALID").Errorf("stats repository is required")
	}
	if logger == nil {
		return nil, oops.Code("ANALYTICS_SERVICE_INVALID").Errorf("logger is required")
	}
	return &Service{stats: stats, logger: logger}, nil
}

// Dashboard returns the account's dashboard figures.
func (s *Service) Dashboard(ctx context.Context, accountID ulid.ULID) (DashboardStats, error) {
	stats, err := s.stats.DashboardStats(ctx, accountID)
	if err != nil {
		return DashboardStats{}, oops.Code("ANALYTICS_DASHBOARD_FAILED").
			With("account_id", accountID.String()).
			Wrap(err)
	}
	return stats, nil
}

// Lectures returns platform-wide lecture figures.
func (s *Service) Lectures(ctx context.Context) (LectureStats, error) {
	stats, err := s.stats.LectureStats(ctx)
	if err != nil {
		return LectureStats{}, oops.Code("ANALYTICS_LECTURES_FAILED").Wrap(err)
	}
	return stats, nil
}
