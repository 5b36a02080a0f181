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

// PackageRepository implements shipping.PackageRepository using PostgreSQL.
type PackageRepository struct {
	pool PoolIface
}

// NewPackageRepository creates a new PackageRepository.
func NewPackageRepository(pool PoolIface) *PackageRepository {
	return &PackageRepository{pool: pool}
}

const packageColumns = `id, description, quantity, weight, category, customs_declaration, additional_services, miscellaneous, client_id, recipient_id, created_at`

// Create persists a new package.
// Callers must validate the package before calling this method.
func (r *PackageRepository) Create(ctx context.Context, pkg *shipping.Package) error {
	_, err := executorFromCtx(ctx, r.pool).Exec(ctx, `
		INSERT INTO packages (`+packageColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, pkg.ID.String(), pkg.Description, pkg.Quantity, pkg.Weight, pkg.Category,
		pkg.CustomsDeclaration, pkg.AdditionalServices, pkg.Miscellaneous,
		pkg.ClientID.String(), pkg.RecipientID.String(), pkg.CreatedAt)
	if err != nil {
		return oops.Code("PACKAGE_CREATE_FAILED").
			With("operation", "insert package").
			With("id", pkg.ID.String()).
			Wrap(err)
	}
	return nil
}

// Get retrieves a package by ID.
func (r *PackageRepository) Get(ctx context.Context, id ulid.ULID) (*shipping.Package, error) {
	row := executorFromCtx(ctx, r.pool).QueryRow(ctx, `
		SELECT `+packageColumns+` FROM packages WHERE id = $1
	`, id.String())

	pkg, err := scanPackage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("PACKAGE_NOT_FOUND").
			With("id", id.String()).
			Wrap(shipping.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get package").
			With("id", id.String()).
			Wrap(err)
	}
	return pkg, nil
}

// List returns all packages ordered by ID ascending.
func (r *PackageRepository) List(ctx context.Context) ([]*shipping.Package, error) {
	rows, err := executorFromCtx(ctx, r.pool).Query(ctx, `
		SELECT `+packageColumns+` FROM packages ORDER BY id ASC
	`)
	if err != nil {
		return nil, oops.With("operation", "list packages").Wrap(err)
	}
	defer rows.Close()

	packages := make([]*shipping.Package, 0)
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate packages").Wrap(err)
	}
	return packages, nil
}

// Delete removes a package by ID.
func (r *PackageRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result, err := executorFromCtx(ctx, r.pool).Exec(ctx, `
		DELETE FROM packages WHERE id = $1
	`, id.String())
	if err != nil {
		return oops.With("operation", "delete package").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("PACKAGE_NOT_FOUND").
			With("id", id.String()).
			Wrap(shipping.ErrNotFound)
	}
	return nil
}

// DeleteByClient removes all packages belonging to a client. Used by
// the cascading client delete inside its transaction.
func (r *PackageRepository) DeleteByClient(ctx context.Context, clientID ulid.ULID) (int64, error) {
	result, err := executorFromCtx(ctx, r.pool).Exec(ctx, `
		DELETE FROM packages WHERE client_id = $1
	`, clientID.String())
	if err != nil {
		return 0, oops.Code("PACKAGE_DELETE_FAILED").
			With("operation", "delete packages by client").
			With("client_id", clientID.String()).
			Wrap(err)
	}
	return result.RowsAffected(), nil
}

// CountByRecipient returns how many packages reference a recipient.
func (r *PackageRepository) CountByRecipient(ctx context.Context, recipientID ulid.ULID) (int64, error) {
	var count int64
	err := executorFromCtx(ctx, r.pool).
		QueryRow(ctx, `SELECT COUNT(*) FROM packages WHERE recipient_id = $1`, recipientID.String()).
		Scan(&count)
	if err != nil {
		return 0, oops.With("operation", "count packages by recipient").
			With("recipient_id", recipientID.String()).
			Wrap(err)
	}
	return count, nil
}

func scanPackage(row pgx.Row) (*shipping.Package, error) {
	var (
		idStr              string
		description        string
		quantity           int
		weight             *float64
		category           string
		customsDeclaration string
		additionalServices string
		miscellaneous      string
		clientIDStr        string
		recipientIDStr     string
		createdAt          time.Time
	)
	err := row.Scan(&idStr, &description, &quantity, &weight, &category,
		&customsDeclaration, &additionalServices, &miscellaneous,
		&clientIDStr, &recipientIDStr, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.With("operation", "scan package").Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.With("operation", "parse package id").With("id", idStr).Wrap(err)
	}
	clientID, err := ulid.Parse(clientIDStr)
	if err != nil {
		return nil, oops.With("operation", "parse package client id").With("client_id", clientIDStr).Wrap(err)
	}
	recipientID, err := ulid.Parse(recipientIDStr)
	if err != nil {
		return nil, oops.With("operation", "parse package recipient id").With("recipient_id", recipientIDStr).Wrap(err)
	}

	return &shipping.Package{
		ID:                 id,
		Description:        description,
		Quantity:           quantity,
		Weight:             weight,
		Category:           category,
		CustomsDeclaration: customsDeclaration,
		AdditionalServices: additionalServices,
		Miscellaneous:      miscellaneous,
		ClientID:           clientID,
		RecipientID:        recipientID,
		CreatedAt:          createdAt,
	}, nil
}

var _ shipping.PackageRepository = (*PackageRepository)(nil)
