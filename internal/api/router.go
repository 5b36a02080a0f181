// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package api

import (
	"net/http"

	"github.com/freightdesk/freightdesk/internal/observability"
)

// Denial messages per route group. The role-specific wording is part of
// the response contract for the blueprint-style route groups.
const (
	denyEmployee   = "Access restricted to employees only"
	denyManager    = "Access restricted to managers only"
	denySupervisor = "Access restricted to supervisors only"
	denyGeneric    = "Access denied"
)

// NewRouter wires the HTTP handlers with their dependencies and
// returns the composed handler. This is the API composition root.
func NewRouter(authSvc AuthService, shipSvc ShippingService, guard Authorizer, metrics *observability.Metrics) http.Handler {
	h := &handler{auth: authSvc, shipping: shipSvc, metrics: metrics}

	mux := http.NewServeMux()

	// Session endpoints. Register and login are the only routes open to
	// unauthenticated callers.
	mux.HandleFunc("POST /auth/register", h.register)
	mux.HandleFunc("POST /auth/login", h.login)
	mux.Handle("POST /auth/logout", authenticate(authSvc, http.HandlerFunc(h.logout)))

	gated := func(denyMsg string, fn http.HandlerFunc, permissions ...string) http.Handler {
		return authenticate(authSvc, requirePermission(guard, denyMsg, fn, permissions...))
	}

	// Role-scoped route groups. Each route requires the group's
	// dashboard permission in addition to the action, so a role holding
	// client:read cannot reach another group's view_clients.
	mux.Handle("GET /employee/dashboard", gated(denyEmployee, h.employeeDashboard, "dashboard:employee"))
	mux.Handle("GET /employee/view_clients", gated(denyEmployee, h.viewClients, "dashboard:employee", "client:read"))

	mux.Handle("GET /manager/dashboard", gated(denyManager, h.managerDashboard, "dashboard:manager"))
	mux.Handle("GET /manager/view_clients", gated(denyManager, h.viewClients, "dashboard:manager", "client:read"))
	mux.Handle("POST /manager/add_inventory", gated(denyManager, h.addInventory, "dashboard:manager", "inventory:create"))
	mux.Handle("POST /manager/add_location", gated(denyManager, h.addLocation, "dashboard:manager", "inventory:create"))

	mux.Handle("GET /supervisor/dashboard", gated(denySupervisor, h.supervisorDashboard, "dashboard:supervisor"))
	mux.Handle("POST /supervisor/add_user", gated(denySupervisor, h.addUser, "dashboard:supervisor", "user:create"))
	mux.Handle("GET /supervisor/view_users", gated(denySupervisor, h.viewUsers, "dashboard:supervisor", "user:read"))

	// Administration routes. Formerly session-only; now uniformly routed
	// through the permission guard. Not group-scoped: any role holding
	// the action permission may call them.
	mux.Handle("GET /view_clients", gated(denyGeneric, h.viewClients, "client:read"))
	mux.Handle("GET /view_packages", gated(denyGeneric, h.viewPackages, "package:read"))
	mux.Handle("POST /update_client/{id}", gated(denyGeneric, h.updateClient, "client:update"))
	mux.Handle("DELETE /delete_client/{id}", gated(denyGeneric, h.deleteClient, "client:delete"))
	mux.Handle("GET /search_clients", gated(denyGeneric, h.searchClients, "client:read"))
	mux.Handle("GET /filter_clients_by_address", gated(denyGeneric, h.filterClientsByAddress, "client:read"))
	mux.Handle("POST /add_client_and_package", gated(denyGeneric, h.addClientAndPackage, "package:create"))
	mux.Handle("GET /dashboard", gated(denyGeneric, h.dashboard, "metrics:read"))

	return instrument(metrics, mux)
}

// handler carries the service dependencies shared by all routes.
type handler struct {
	auth     AuthService
	shipping ShippingService
	metrics  *observability.Metrics
}
