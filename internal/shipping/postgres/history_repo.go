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

// HistoryRepository implements shipping.HistoryRepository using PostgreSQL.
type HistoryRepository struct {
	pool PoolIface
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(pool PoolIface) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

// Create persists an audit record. Runs inside the caller's transaction
// when one is active.
func (r *HistoryRepository) Create(ctx context.Context, entry *shipping.ClientHistory) error {
	_, err := executorFromCtx(ctx, r.pool).Exec(ctx, `
		INSERT INTO client_history (id, client_id, change_details, changed_at)
		VALUES ($1, $2, $3, $4)
	`, entry.ID.String(), entry.ClientID.String(), entry.ChangeDetails, entry.ChangedAt)
	if err != nil {
		return oops.Code("HISTORY_CREATE_FAILED").
			With("operation", "insert client history").
			With("client_id", entry.ClientID.String()).
			Wrap(err)
	}
	return nil
}

// ListByClient returns a client's audit records, newest first.
func (r *HistoryRepository) ListByClient(ctx context.Context, clientID ulid.ULID) ([]*shipping.ClientHistory, error) {
	rows, err := executorFromCtx(ctx, r.pool).Query(ctx, `
		SELECT id, client_id, change_details, changed_at
		FROM client_history WHERE client_id = $1 ORDER BY changed_at DESC
	`, clientID.String())
	if err != nil {
		return nil, oops.With("operation", "list client history").
			With("client_id", clientID.String()).
			Wrap(err)
	}
	defer rows.Close()

	entries := make([]*shipping.ClientHistory, 0)
	for rows.Next() {
		entry, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate client history").Wrap(err)
	}
	return entries, nil
}

func scanHistory(row pgx.Row) (*shipping.ClientHistory, error) {
	var (
		idStr       string
		clientIDStr string
		details     string
		changedAt   time.Time
	)
	err := row.Scan(&idStr, &clientIDStr, &details, &changedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.With("operation", "scan client history").Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.With("operation", "parse history id").With("id", idStr).Wrap(err)
	}
	clientID, err := ulid.Parse(clientIDStr)
	if err != nil {
		return nil, oops.With("operation", "parse history client id").With("client_id", clientIDStr).Wrap(err)
	}

	return &shipping.ClientHistory{
		ID:            id,
		ClientID:      clientID,
		ChangeDetails: details,
		ChangedAt:     changedAt,
	}, nil
}

var _ shipping.HistoryRepository = (*HistoryRepository)(nil)
