// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

// Package api exposes the HTTP surface of the agency backend: session
// authentication endpoints, role dashboards, and the client, recipient,
// and package administration routes. Handlers never touch the database
// directly; they call the auth and shipping services and translate
// errors into JSON bodies.
package api
