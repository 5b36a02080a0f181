// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/freightdesk/freightdesk/internal/shipping"
)

// ClientRepository implements shipping.ClientRepository using PostgreSQL.
type ClientRepository struct {
	pool PoolIface
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(pool PoolIface) *ClientRepository {
	return &ClientRepository{pool: pool}
}

const clientColumns = `id, full_name, date_of_birth, contact_number, address, zip_code, email, created_at, updated_at`

// Create persists a new client.
// Callers must validate the client before calling this method.
func (r *ClientRepository) Create(ctx context.Context, client *shipping.Client) error {
	_, err := executorFromCtx(ctx, r.pool).Exec(ctx, `
		INSERT INTO clients (`+clientColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, client.ID.String(), client.FullName, client.DateOfBirth, client.ContactNumber,
		client.Address, client.ZipCode, client.Email, client.CreatedAt, client.UpdatedAt)
	if err != nil {
		return oops.Code("CLIENT_CREATE_FAILED").
			With("operation", "insert client").
			With("id", client.ID.String()).
			Wrap(err)
	}
	return nil
}

// Get retrieves a client by ID.
func (r *ClientRepository) Get(ctx context.Context, id ulid.ULID) (*shipping.Client, error) {
	row := executorFromCtx(ctx, r.pool).QueryRow(ctx, `
		SELECT `+clientColumns+` FROM clients WHERE id = $1
	`, id.String())

	client, err := scanClient(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("CLIENT_NOT_FOUND").
			With("id", id.String()).
			Wrap(shipping.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get client").
			With("id", id.String()).
			Wrap(err)
	}
	return client, nil
}

// List returns all clients ordered by ID ascending.
func (r *ClientRepository) List(ctx context.Context) ([]*shipping.Client, error) {
	rows, err := executorFromCtx(ctx, r.pool).Query(ctx, `
		SELECT `+clientColumns+` FROM clients ORDER BY id ASC
	`)
	if err != nil {
		return nil, oops.With("operation", "list clients").Wrap(err)
	}
	defer rows.Close()

	return scanClients(rows)
}

// Update overwrites an existing client.
func (r *ClientRepository) Update(ctx context.Context, client *shipping.Client) error {
	result, err := executorFromCtx(ctx, r.pool).Exec(ctx, `
		UPDATE clients SET full_name = $2, date_of_birth = $3, contact_number = $4,
		address = $5, zip_code = $6, email = $7, updated_at = $8
		WHERE id = $1
	`, client.ID.String(), client.FullName, client.DateOfBirth, client.ContactNumber,
		client.Address, client.ZipCode, client.Email, client.UpdatedAt)
	if err != nil {
		return oops.With("operation", "update client").
			With("id", client.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("CLIENT_NOT_FOUND").
			With("id", client.ID.String()).
			Wrap(shipping.ErrNotFound)
	}
	return nil
}

// Delete removes a client by ID.
func (r *ClientRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result, err := executorFromCtx(ctx, r.pool).Exec(ctx, `
		DELETE FROM clients WHERE id = $1
	`, id.String())
	if err != nil {
		return oops.With("operation", "delete client").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("CLIENT_NOT_FOUND").
			With("id", id.String()).
			Wrap(shipping.ErrNotFound)
	}
	return nil
}

// Search returns clients matching the criteria. Each supplied field is
// a case-insensitive substring match; fields are ANDed together.
func (r *ClientRepository) Search(ctx context.Context, criteria shipping.ClientSearch) ([]*shipping.Client, error) {
	clauses := make([]string, 0, 5)
	args := make([]any, 0, 5)

	addClause := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s ILIKE '%%' || $%d || '%%'", column, len(args)))
	}
	addClause("full_name", criteria.FullName)
	addClause("address", criteria.Address)
	addClause("email", criteria.Email)
	addClause("contact_number", criteria.ContactNumber)
	addClause("zip_code", criteria.ZipCode)

	query := `SELECT ` + clientColumns + ` FROM clients`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY id ASC`

	rows, err := executorFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, oops.With("operation", "search clients").Wrap(err)
	}
	defer rows.Close()

	return scanClients(rows)
}

// Count returns the total number of clients.
func (r *ClientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := executorFromCtx(ctx, r.pool).
		QueryRow(ctx, `SELECT COUNT(*) FROM clients`).
		Scan(&count)
	if err != nil {
		return 0, oops.With("operation", "count clients").Wrap(err)
	}
	return count, nil
}

func scanClient(row pgx.Row) (*shipping.Client, error) {
	var (
		idStr         string
		fullName      string
		dateOfBirth   *time.Time
		contactNumber string
		address       string
		zipCode       string
		email         string
		createdAt     time.Time
		updatedAt     time.Time
	)
	err := row.Scan(&idStr, &fullName, &dateOfBirth, &contactNumber,
		&address, &zipCode, &email, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.With("operation", "scan client").Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.With("operation", "parse client id").With("id", idStr).Wrap(err)
	}

	return &shipping.Client{
		ID:            id,
		FullName:      fullName,
		DateOfBirth:   dateOfBirth,
		ContactNumber: contactNumber,
		Address:       address,
		ZipCode:       zipCode,
		Email:         email,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

func scanClients(rows pgx.Rows) ([]*shipping.Client, error) {
	clients := make([]*shipping.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate clients").Wrap(err)
	}
	return clients, nil
}

var _ shipping.ClientRepository = (*ClientRepository)(nil)
