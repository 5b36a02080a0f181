// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package shipping

import "errors"

// Sentinel errors for errors.Is checks across the domain.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrHasPackages indicates a recipient cannot be deleted because
	// packages still reference it.
	ErrHasPackages = errors.New("recipient has packages")
)
