// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Studyhall Contributors

package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/studyhall/studyhall/internal/auth"
	"github.com/studyhall/studyhall/internal/classroom"
)

// registerRequest is the body of POST /api/auth/register.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest is the body of POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse is the body of successful register and login responses.
type sessionResponse struct {
	Token string           `json:"token"`
	User  auth.AccountView `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, s.logger, http.StatusBadRequest, "Invalid request body.")
		return
	}

	session, err := s.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	s.metrics.RecordRegistration()
	writeJSON(w, s.logger, http.StatusCreated, sessionResponse{
		Token: session.Token,
		User:  session.Account,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, s.logger, http.StatusBadRequest, "Invalid request body.")
		return
	}

	session, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	s.metrics.RecordLogin()
	writeJSON(w, s.logger, http.StatusOK, sessionResponse{
		Token: session.Token,
		User:  session.Account,
	})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	views, err := s.auth.ListAccounts(r.Context())
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if views == nil {
		views = []auth.AccountView{}
	}
	writeJSON(w, s.logger, http.StatusOK, views)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	claim, ok := ClaimFromContext(r.Context())
	if !ok {
		writeMessage(w, s.logger, http.StatusUnauthorized, "No token provided.")
		return
	}

	view, err := s.profile.Get(r.Context(), claim.AccountID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, view)
}

// profileUpdateRequest is the body of PUT /api/profile. Pointer fields
// distinguish "absent" from "set to empty".
type profileUpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	claim, ok := ClaimFromContext(r.Context())
	if !ok {
		writeMessage(w, s.logger, http.StatusUnauthorized, "No token provided.")
		return
	}

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, s.logger, http.StatusBadRequest, "Invalid request body.")
		return
	}

	update := auth.ProfileUpdate{DisplayName: req.Name, Email: req.Email}
	if err := s.profile.Update(r.Context(), claim.AccountID, update); err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeMessage(w, s.logger, http.StatusOK, "Profile updated.")
}

// changePasswordRequest is the body of PUT /api/profile/password.
type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	claim, ok := ClaimFromContext(r.Context())
	if !ok {
		writeMessage(w, s.logger, http.StatusUnauthorized, "No token provided.")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, s.logger, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := s.profile.ChangePassword(r.Context(), claim.AccountID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeMessage(w, s.logger, http.StatusOK, "Password changed.")
}

// createClassRequest is the body of POST /api/classes.
type createClassRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleCreateClass(w http.ResponseWriter, r *http.Request) {
	claim, ok := ClaimFromContext(r.Context())
	if !ok {
		writeMessage(w, s.logger, http.StatusUnauthorized, "No token provided.")
		return
	}

	var req createClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, s.logger, http.StatusBadRequest, "Invalid request body.")
		return
	}

	view, err := s.classes.Create(r.Context(), claim.AccountID, req.Title, req.Description)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, s.logger, http.StatusCreated, view)
}

// joinClassRequest is the body of POST /api/classes/join.
type joinClassRequest struct {
	InviteCode string `json:"invite_code"`
}

func (s *Server) handleJoinClass(w http.ResponseWriter, r *http.Request) {
	claim, ok := ClaimFromContext(r.Context())
	if !ok {
		writeMessage(w, s.logger, http.StatusUnauthorized, "No token provided.")
		return
	}

	var req joinClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, s.logger, http.StatusBadRequest, "Invalid request body.")
		return
	}

	view, err := s.classes.Join(r.Context(), claim.AccountID, req.InviteCode)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, view)
}

func (s *Server) handleListMyClasses(w http.ResponseWriter, r *http.Request) {
	claim, ok := ClaimFromContext(r.Context())
	if !ok {
		writeMessage(w, s.logger, http.StatusUnauthorized, "No token provided.")
		return
	}

	views, err := s.classes.ListMine(r.Context(), claim.AccountID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if views == nil {
		views = []classroom.ClassView{}
	}
	writeJSON(w, s.logger, http.StatusOK, views)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	claim, ok := ClaimFromContext(r.Context())
	if !ok {
		writeMessage(w, s.logger, http.StatusUnauthorized, "No token provided.")
		return
	}

	stats, err := s.analytics.Dashboard(r.Context(), claim.AccountID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, stats)
}

func (s *Server) handleLectureStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.analytics.Lectures(r.Context())
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, stats)
}
