// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package shipping

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

// ClientHistory is an audit record of a client mutation. Rows are
// written in the same transaction as the mutation they describe.
type ClientHistory struct {
	ID            ulid.ULID
	ClientID      ulid.ULID
	ChangeDetails string
	ChangedAt     time.Time
}

// NewClientHistory creates an audit record for a client change.
func NewClientHistory(clientID ulid.ULID, details string) *ClientHistory {
	return &ClientHistory{
		ID:            ulid.Make(),
		ClientID:      clientID,
		ChangeDetails: details,
		ChangedAt:     time.Now().UTC(),
	}
}

// HistoryRepository persists client audit records.
type HistoryRepository interface {
	// Create stores an audit record.
	Create(ctx context.Context, entry *ClientHistory) error

	// ListByClient returns a client's audit records, newest first.
	ListByClient(ctx context.Context, clientID ulid.ULID) ([]*ClientHistory, error)
}
