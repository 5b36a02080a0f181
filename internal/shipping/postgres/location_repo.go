// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/freightdesk/freightdesk/internal/shipping"
)

// LocationRepository implements shipping.LocationRepository using PostgreSQL.
type LocationRepository struct {
	pool PoolIface
}

// NewLocationRepository creates a new LocationRepository.
func NewLocationRepository(pool PoolIface) *LocationRepository {
	return &LocationRepository{pool: pool}
}

// Create persists a new agency location.
func (r *LocationRepository) Create(ctx context.Context, location *shipping.Location) error {
	_, err := executorFromCtx(ctx, r.pool).Exec(ctx, `
		INSERT INTO locations (id, name, address, agency_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, location.ID.String(), location.Name, location.Address, location.AgencyID, location.CreatedAt)
	if err != nil {
		return oops.Code("LOCATION_CREATE_FAILED").
			With("operation", "insert location").
			With("id", location.ID.String()).
			Wrap(err)
	}
	return nil
}

// Get retrieves a location by ID.
func (r *LocationRepository) Get(ctx context.Context, id ulid.ULID) (*shipping.Location, error) {
	row := executorFromCtx(ctx, r.pool).QueryRow(ctx, `
		SELECT id, name, address, agency_id, created_at
		FROM locations WHERE id = $1
	`, id.String())

	location, err := scanLocation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("LOCATION_NOT_FOUND").
			With("id", id.String()).
			Wrap(shipping.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get location").
			With("id", id.String()).
			Wrap(err)
	}
	return location, nil
}

// List returns all locations ordered by ID ascending.
func (r *LocationRepository) List(ctx context.Context) ([]*shipping.Location, error) {
	rows, err := executorFromCtx(ctx, r.pool).Query(ctx, `
		SELECT id, name, address, agency_id, created_at
		FROM locations ORDER BY id ASC
	`)
	if err != nil {
		return nil, oops.With("operation", "list locations").Wrap(err)
	}
	defer rows.Close()

	locations := make([]*shipping.Location, 0)
	for rows.Next() {
		location, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate locations").Wrap(err)
	}
	return locations, nil
}

func scanLocation(row pgx.Row) (*shipping.Location, error) {
	var (
		idStr     string
		name      string
		address   string
		agencyID  string
		createdAt time.Time
	)
	err := row.Scan(&idStr, &name, &address, &agencyID, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.With("operation", "scan location").Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.With("operation", "parse location id").With("id", idStr).Wrap(err)
	}

	return &shipping.Location{
		ID:        id,
		Name:      name,
		Address:   address,
		AgencyID:  agencyID,
		CreatedAt: createdAt,
	}, nil
}

var _ shipping.LocationRepository = (*LocationRepository)(nil)
