// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package api

import (
	"errors"
	"net/http"

	"github.com/oklog/ulid/v2"

	"github.com/freightdesk/freightdesk/internal/shipping"
)

type clientView struct {
	ID            string `json:"id"`
	FullName      string `json:"full_name"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
}

func clientViews(clients []*shipping.Client) []clientView {
	views := make([]clientView, 0, len(clients))
	for _, c := range clients {
		views = append(views, clientView{
			ID:            c.ID.String(),
			FullName:      c.FullName,
			Address:       c.Address,
			ContactNumber: c.ContactNumber,
			Email:         c.Email,
		})
	}
	return views
}

// viewClients lists all clients.
func (h *handler) viewClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.shipping.ListClients(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"clients": clientViews(clients)})
}

type updateClientRequest struct {
	FullName      *string `json:"full_name"`
	Address       *string `json:"address"`
	ContactNumber *string `json:"contact_number"`
	Email         *string `json:"email"`
	ZipCode       *string `json:"zip_code"`
}

// updateClient applies a merge patch: absent fields keep their stored
// values.
func (h *handler) updateClient(w http.ResponseWriter, r *http.Request) {
	id, err := ulid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, "Client not found")
		return
	}

	var req updateClientRequest
	if err := decodeJSON(r, &req); err != nil {
		serviceError(w, r, err)
		return
	}

	patch := shipping.ClientPatch{
		FullName:      req.FullName,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		ZipCode:       req.ZipCode,
	}

	if _, err := h.shipping.UpdateClient(r.Context(), id, patch); err != nil {
		if errors.Is(err, shipping.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "Client not found")
			return
		}
		serviceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"message": "Client updated successfully"})
}

// deleteClient removes a client and every package attached to it.
func (h *handler) deleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := ulid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, "Client not found")
		return
	}

	if err := h.shipping.DeleteClient(r.Context(), id); err != nil {
		if errors.Is(err, shipping.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "Client not found")
			return
		}
		serviceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"message": "Client deleted successfully"})
}

// searchClients matches clients on any combination of text criteria.
func (h *handler) searchClients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := shipping.ClientSearch{
		FullName:      q.Get("full_name"),
		Address:       q.Get("address"),
		ContactNumber: q.Get("contact_number"),
		Email:         q.Get("email"),
		ZipCode:       q.Get("zip_code"),
	}

	clients, err := h.shipping.SearchClients(r.Context(), criteria)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"results": clientViews(clients)})
}

// filterClientsByAddress is the single-criterion variant kept for
// callers of the original filter endpoint.
func (h *handler) filterClientsByAddress(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		writeError(w, r, http.StatusBadRequest, "Address parameter is required")
		return
	}

	clients, err := h.shipping.SearchClients(r.Context(), shipping.ClientSearch{Address: address})
	if err != nil {
		serviceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"clients": clientViews(clients)})
}

// dashboard reports headline metrics.
func (h *handler) dashboard(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.shipping.Metrics(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"total_clients": metrics.TotalClients,
		"message":       "Dashboard metrics retrieved successfully",
	})
}
