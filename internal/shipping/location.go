// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package shipping

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Location is an agency office where inventory is held.
type Location struct {
	ID        ulid.ULID
	Name      string
	Address   string
	AgencyID  string
	CreatedAt time.Time
}

// NewLocation creates a location with a fresh ULID. Name and Address
// are required. AgencyID is an opaque external identifier and may be
// empty.
func NewLocation(name, address, agencyID string) (*Location, error) {
	if name == "" {
		return nil, oops.Code("LOCATION_MISSING_FIELD").
			With("field", "name").
			New("name is required")
	}
	if address == "" {
		return nil, oops.Code("LOCATION_MISSING_FIELD").
			With("field", "address").
			New("address is required")
	}
	return &Location{
		ID:        ulid.Make(),
		Name:      name,
		Address:   address,
		AgencyID:  agencyID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// LocationRepository persists agency locations.
type LocationRepository interface {
	// Create stores a new location.
	Create(ctx context.Context, location *Location) error

	// Get retrieves a location by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id ulid.ULID) (*Location, error)

	// List returns all locations ordered by ID ascending.
	List(ctx context.Context) ([]*Location, error)
}
