// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package api

import (
	"fmt"
	"net/http"

	"github.com/freightdesk/freightdesk/internal/auth"
)

func (h *handler) employeeDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"message": "Welcome to the Employee Dashboard",
	})
}

func (h *handler) managerDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"message": "Welcome to the Manager Dashboard",
	})
}

func (h *handler) supervisorDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"message": "Welcome to the Supervisor Dashboard",
	})
}

type addInventoryRequest struct {
	ItemName string `json:"item_name"`
	Stock    *int   `json:"stock"`
}

// addInventory acknowledges a stock entry for a manager. Stock is not
// tracked server-side yet, so this validates and confirms.
//
// TODO: persist inventory items once the stock schema lands.
func (h *handler) addInventory(w http.ResponseWriter, r *http.Request) {
	var req addInventoryRequest
	if err := decodeJSON(r, &req); err != nil {
		serviceError(w, r, err)
		return
	}

	if req.ItemName == "" || req.Stock == nil {
		writeError(w, r, http.StatusBadRequest, "Item name and stock are required")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Inventory item '%s' added with %d units!", req.ItemName, *req.Stock),
	})
}

type addLocationRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	AgencyID string `json:"agency_id"`
}

// addLocation registers a new agency location.
func (h *handler) addLocation(w http.ResponseWriter, r *http.Request) {
	var req addLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		serviceError(w, r, err)
		return
	}

	location, err := h.shipping.CreateLocation(r.Context(), req.Name, req.Address, req.AgencyID)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]string{
		"message": fmt.Sprintf("Location '%s' added", location.Name),
		"id":      location.ID.String(),
	})
}

type addUserRequest struct {
	Username string    `json:"username"`
	Password string    `json:"password"`
	Role     auth.Role `json:"role"`
}

// addUser lets a supervisor provision a staff account.
func (h *handler) addUser(w http.ResponseWriter, r *http.Request) {
	var req addUserRequest
	if err := decodeJSON(r, &req); err != nil {
		serviceError(w, r, err)
		return
	}

	if req.Username == "" || req.Password == "" || req.Role == "" {
		writeError(w, r, http.StatusBadRequest, "All fields are required")
		return
	}

	user, err := h.auth.Register(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		if errorCode(err) == "AUTH_DUPLICATE_USERNAME" {
			writeError(w, r, http.StatusBadRequest, "Username already exists")
			return
		}
		serviceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]string{
		"message": fmt.Sprintf("User %s added as %s.", user.Username, user.Role),
	})
}

type userView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// viewUsers lists all staff accounts. Password hashes never leave the
// service layer.
func (h *handler) viewUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.auth.ListUsers(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}

	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, userView{
			ID:       u.ID.String(),
			Username: u.Username,
			Role:     string(u.Role),
		})
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"users": views})
}
