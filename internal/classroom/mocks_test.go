// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

package classroom_test

import (
	"context"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"

	"github.com/studyhall/studyhall/internal/classroom"
)

// MockClassRepository is a testify mock for classroom.ClassRepository.
type MockClassRepository struct {
	mock.Mock
}

func NewMockClassRepository(t *testing.T) *MockClassRepository {
	m := &MockClassRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockClassRepository) Create(ctx context.Context, class *classroom.Class) error {
	args := m.Called(ctx, class)
	return args.Error(0)
}

func (m *MockClassRepository) GetByInviteCode(ctx context.Context, code string) (*classroom.Class, error) {
	args := m.Called(ctx, code)
	if class := args.Get(0); class != nil {
		return class.(*classroom.Class), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClassRepository) Enroll(ctx context.Context, enrollment *classroom.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockClassRepository) ListByAccount(ctx context.Context, accountID ulid.ULID) ([]classroom.ClassView, error) {
	args := m.Called(ctx, accountID)
	if views := args.Get(0); views != nil {
		return views.([]classroom.ClassView), args.Error(1)
	}
	return nil, args.Error(1)
}
