// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

// Package shipping holds the core domain model for FreightDesk: clients,
// recipients, packages, agency locations, and the client audit history.
//
// The Service type exposes the business operations. Handlers call the
// Service; the Service calls repository interfaces; the postgres
// subpackage implements them. Multi-row writes (cascading client delete,
// composite shipment create) run inside a single transaction via the
// Transactor.
package shipping
