// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package api

import (
	"fmt"
	"net/http"

	"github.com/freightdesk/freightdesk/internal/auth"
)

type credentialsRequest struct {
	Username string    `json:"username"`
	Password string    `json:"password"`
	Role     auth.Role `json:"role"`
}

// register creates a new staff account.
func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		serviceError(w, r, err)
		return
	}

	if req.Username == "" || req.Password == "" || req.Role == "" {
		writeError(w, r, http.StatusBadRequest, "Username, password, and role are required")
		return
	}

	user, err := h.auth.Register(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		if errorCode(err) == "AUTH_DUPLICATE_USERNAME" {
			writeError(w, r, http.StatusBadRequest, "Username already taken")
			return
		}
		serviceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]string{
		"message": fmt.Sprintf("User %s registered successfully!", user.Username),
	})
}

// login verifies credentials and opens a session, returning the
// plaintext bearer token. Unknown usernames and wrong passwords get
// the same answer.
func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		serviceError(w, r, err)
		return
	}

	_, token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch errorCode(err) {
		case "AUTH_INVALID_CREDENTIALS":
			h.countLogin("failure")
			writeError(w, r, http.StatusUnauthorized, "Invalid credentials, please try again")
		case "AUTH_ACCOUNT_LOCKED":
			h.countLogin("locked")
			writeError(w, r, http.StatusUnauthorized, "Account temporarily locked, please try again later")
		default:
			serviceError(w, r, err)
		}
		return
	}

	h.countLogin("success")
	writeJSON(w, r, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Welcome, %s!", req.Username),
		"token":   token,
	})
}

// logout invalidates the caller's session. Repeated logouts succeed.
func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.auth.Logout(r.Context(), identity.Session.ID); err != nil {
		serviceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{
		"message": "You have been logged out.",
	})
}

func (h *handler) countLogin(outcome string) {
	if h.metrics != nil {
		h.metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	}
}
