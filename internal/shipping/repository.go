// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package shipping

import "context"

// Transactor runs a function inside a single database transaction.
// Implementations store the active transaction in the context passed
// to fn so that repository calls made inside fn share it.
type Transactor interface {
	// InTransaction begins a transaction and calls fn. A nil return
	// from fn commits; any error rolls back.
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NopTransactor satisfies Transactor without transactional semantics.
// Intended for unit tests with in-memory repositories.
type NopTransactor struct{}

// InTransaction calls fn directly.
func (NopTransactor) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ Transactor = NopTransactor{}
