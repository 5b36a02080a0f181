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

// RecipientRepository implements shipping.RecipientRepository using PostgreSQL.
type RecipientRepository struct {
	pool PoolIface
}

// NewRecipientRepository creates a new RecipientRepository.
func NewRecipientRepository(pool PoolIface) *RecipientRepository {
	return &RecipientRepository{pool: pool}
}

const recipientColumns = `id, full_name, date_of_birth, contact_details, neighborhood, municipality, province, province_code, created_at, updated_at`

// Create persists a new recipient.
func (r *RecipientRepository) Create(ctx context.Context, recipient *shipping.Recipient) error {
	_, err := executorFromCtx(ctx, r.pool).Exec(ctx, `
		INSERT INTO recipients (`+recipientColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, recipient.ID.String(), recipient.FullName, recipient.DateOfBirth,
		recipient.ContactDetails, recipient.Neighborhood, recipient.Municipality,
		recipient.Province, recipient.ProvinceCode, recipient.CreatedAt, recipient.UpdatedAt)
	if err != nil {
		return oops.Code("RECIPIENT_CREATE_FAILED").
			With("operation", "insert recipient").
			With("id", recipient.ID.String()).
			Wrap(err)
	}
	return nil
}

// Get retrieves a recipient by ID.
func (r *RecipientRepository) Get(ctx context.Context, id ulid.ULID) (*shipping.Recipient, error) {
	row := executorFromCtx(ctx, r.pool).QueryRow(ctx, `
		SELECT `+recipientColumns+` FROM recipients WHERE id = $1
	`, id.String())

	recipient, err := scanRecipient(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("RECIPIENT_NOT_FOUND").
			With("id", id.String()).
			Wrap(shipping.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get recipient").
			With("id", id.String()).
			Wrap(err)
	}
	return recipient, nil
}

// List returns all recipients ordered by ID ascending.
func (r *RecipientRepository) List(ctx context.Context) ([]*shipping.Recipient, error) {
	rows, err := executorFromCtx(ctx, r.pool).Query(ctx, `
		SELECT `+recipientColumns+` FROM recipients ORDER BY id ASC
	`)
	if err != nil {
		return nil, oops.With("operation", "list recipients").Wrap(err)
	}
	defer rows.Close()

	recipients := make([]*shipping.Recipient, 0)
	for rows.Next() {
		recipient, err := scanRecipient(rows)
		if err != nil {
			return nil, err
		}
		recipients = append(recipients, recipient)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate recipients").Wrap(err)
	}
	return recipients, nil
}

// Update overwrites an existing recipient.
func (r *RecipientRepository) Update(ctx context.Context, recipient *shipping.Recipient) error {
	result, err := executorFromCtx(ctx, r.pool).Exec(ctx, `
		UPDATE recipients SET full_name = $2, date_of_birth = $3, contact_details = $4,
		neighborhood = $5, municipality = $6, province = $7, province_code = $8, updated_at = $9
		WHERE id = $1
	`, recipient.ID.String(), recipient.FullName, recipient.DateOfBirth,
		recipient.ContactDetails, recipient.Neighborhood, recipient.Municipality,
		recipient.Province, recipient.ProvinceCode, recipient.UpdatedAt)
	if err != nil {
		return oops.With("operation", "update recipient").
			With("id", recipient.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("RECIPIENT_NOT_FOUND").
			With("id", recipient.ID.String()).
			Wrap(shipping.ErrNotFound)
	}
	return nil
}

// Delete removes a recipient by ID. The service refuses deletion while
// packages still reference the recipient.
func (r *RecipientRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result, err := executorFromCtx(ctx, r.pool).Exec(ctx, `
		DELETE FROM recipients WHERE id = $1
	`, id.String())
	if err != nil {
		return oops.With("operation", "delete recipient").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("RECIPIENT_NOT_FOUND").
			With("id", id.String()).
			Wrap(shipping.ErrNotFound)
	}
	return nil
}

func scanRecipient(row pgx.Row) (*shipping.Recipient, error) {
	var (
		idStr          string
		fullName       string
		dateOfBirth    *time.Time
		contactDetails string
		neighborhood   string
		municipality   string
		province       string
		provinceCode   string
		createdAt      time.Time
		updatedAt      time.Time
	)
	err := row.Scan(&idStr, &fullName, &dateOfBirth, &contactDetails,
		&neighborhood, &municipality, &province, &provinceCode, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.With("operation", "scan recipient").Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.With("operation", "parse recipient id").With("id", idStr).Wrap(err)
	}

	return &shipping.Recipient{
		ID:             id,
		FullName:       fullName,
		DateOfBirth:    dateOfBirth,
		ContactDetails: contactDetails,
		Neighborhood:   neighborhood,
		Municipality:   municipality,
		Province:       province,
		ProvinceCode:   provinceCode,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}, nil
}

var _ shipping.RecipientRepository = (*RecipientRepository)(nil)
