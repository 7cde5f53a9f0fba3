// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"

	"github.com/studyhall/studyhall/internal/analytics"
	"github.com/studyhall/studyhall/internal/auth"
	"github.com/studyhall/studyhall/internal/classroom"
	"github.com/studyhall/studyhall/internal/httpapi"
	"github.com/studyhall/studyhall/internal/profile"
)

// memAccountRepo is an in-memory auth.AccountRepository. It reproduces the
// store's uniqueness semantics so handler tests exercise the same error
// paths as the real repository.
type memAccountRepo struct {
	mu       sync.Mutex
	accounts map[ulid.ULID]*auth.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: make(map[ulid.ULID]*auth.Account)}
}

func (r *memAccountRepo) Create(_ context.Context, account *auth.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return auth.ErrDuplicateEmail
		}
	}
	clone := *account
	r.accounts[account.ID] = &clone
	return nil
}

func (r *memAccountRepo) GetByEmail(_ context.Context, email string) (*auth.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.Email == email {
			clone := *account
			return &clone, nil
		}
	}
	return nil, auth.ErrNotFound
}

func (r *memAccountRepo) GetByID(_ context.Context, id ulid.ULID) (*auth.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, auth.ErrNotFound
	}
	clone := *account
	return &clone, nil
}

func (r *memAccountRepo) UpdatePassword(_ context.Context, id ulid.ULID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return auth.ErrNotFound
	}
	account.PasswordHash = passwordHash
	return nil
}

func (r *memAccountRepo) UpdateProfile(_ context.Context, id ulid.ULID, update auth.ProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return auth.ErrNotFound
	}
	if update.Email != nil {
		for otherID, other := range r.accounts {
			if otherID != id && other.Email == *update.Email {
				return auth.ErrDuplicateEmail
			}
		}
		account.Email = *update.Email
	}
	if update.DisplayName != nil {
		account.DisplayName = *update.DisplayName
	}
	return nil
}

func (r *memAccountRepo) List(_ context.Context) ([]auth.AccountView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	views := make([]auth.AccountView, 0, len(r.accounts))
	for _, account := range r.accounts {
		views = append(views, account.View())
	}
	return views, nil
}

// memClassRepo is an in-memory classroom.ClassRepository.
type memClassRepo struct {
	mu          sync.Mutex
	classes     map[ulid.ULID]*classroom.Class
	enrollments map[ulid.ULID]map[ulid.ULID]bool
}

func newMemClassRepo() *memClassRepo {
	return &memClassRepo{
		classes:     make(map[ulid.ULID]*classroom.Class),
		enrollments: make(map[ulid.ULID]map[ulid.ULID]bool),
	}
}

func (r *memClassRepo) Create(_ context.Context, class *classroom.Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.classes {
		if existing.InviteCode == class.InviteCode {
			return classroom.ErrDuplicateInviteCode
		}
	}
	clone := *class
	r.classes[class.ID] = &clone
	return nil
}

func (r *memClassRepo) GetByInviteCode(_ context.Context, code string) (*classroom.Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, class := range r.classes {
		if class.InviteCode == code {
			clone := *class
			return &clone, nil
		}
	}
	return nil, classroom.ErrNotFound
}

func (r *memClassRepo) Enroll(_ context.Context, enrollment *classroom.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	students := r.enrollments[enrollment.ClassID]
	if students == nil {
		students = make(map[ulid.ULID]bool)
		r.enrollments[enrollment.ClassID] = students
	}
	if students[enrollment.StudentID] {
		return classroom.ErrAlreadyEnrolled
	}
	students[enrollment.StudentID] = true
	return nil
}

func (r *memClassRepo) ListByAccount(_ context.Context, accountID ulid.ULID) ([]classroom.ClassView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var views []classroom.ClassView
	for id, class := range r.classes {
		if class.InstructorID == accountID || r.enrollments[id][accountID] {
			views = append(views, class.View())
		}
	}
	return views, nil
}

// fixedStatsRepo returns canned analytics figures.
type fixedStatsRepo struct {
	dashboard analytics.DashboardStats
	lectures  analytics.LectureStats
}

func (r *fixedStatsRepo) DashboardStats(context.Context, ulid.ULID) (analytics.DashboardStats, error) {
	return r.dashboard, nil
}

func (r *fixedStatsRepo) LectureStats(context.Context) (analytics.LectureStats, error) {
	return r.lectures, nil
}

// testEnv wires a full API server onto in-memory repositories.
type testEnv struct {
	server   *httpapi.Server
	handler  http.Handler
	accounts *memAccountRepo
	classes  *memClassRepo
	stats    *fixedStatsRepo
	tokens   *auth.TokenService
}

// fastParams keeps argon2id cheap in tests.
var fastParams = auth.Argon2Params{Time: 1, Memory: 8 * 1024, Threads: 1, SaltLen: 16, KeyLen: 32}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	accounts := newMemAccountRepo()
	classes := newMemClassRepo()
	stats := &fixedStatsRepo{
		dashboard: analytics.DashboardStats{EnrolledCourses: 1, CompletedTasks: 2, PendingTasks: 3},
		lectures:  analytics.LectureStats{Scheduled: 4, Participants: 20, ScreenShares: 1},
	}

	hasher := auth.NewArgon2idHasherWithParams(fastParams)
	tokens, err := auth.NewTokenService([]byte("httpapi-test-secret"), 0)
	require.NoError(t, err)

	authSvc, err := auth.NewService(accounts, hasher, tokens)
	require.NoError(t, err)
	profileSvc, err := profile.NewService(accounts, hasher)
	require.NoError(t, err)
	classSvc, err := classroom.NewService(classes)
	require.NoError(t, err)
	analyticsSvc, err := analytics.NewService(stats)
	require.NoError(t, err)

	server, err := httpapi.NewServer(httpapi.Config{
		Addr:      "127.0.0.1:0",
		Tokens:    tokens,
		Auth:      authSvc,
		Profile:   profileSvc,
		Classes:   classSvc,
		Analytics: analyticsSvc,
	})
	require.NoError(t, err)

	return &testEnv{
		server:   server,
		handler:  server.Handler(),
		accounts: accounts,
		classes:  classes,
		stats:    stats,
		tokens:   tokens,
	}
}

// do performs one request against the handler and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// register creates an account through the API and returns its token and view.
func (e *testEnv) register(t *testing.T, name, email, password string) (string, auth.AccountView) {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Token string           `json:"token"`
		User  auth.AccountView `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token, resp.User
}

// message decodes the {"message": ...} payload of an error response.
func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload.Message
}
