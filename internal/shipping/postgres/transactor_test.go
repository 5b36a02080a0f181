// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightdesk/freightdesk/internal/shipping"
)

func TestTransactor_CommitsOnSuccess(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO locations`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	tx := NewTransactor(mock)
	repo := NewLocationRepository(mock)

	err = tx.InTransaction(context.Background(), func(ctx context.Context) error {
		loc, err := shipping.NewLocation("Central Depot", "1 Port Road", "")
		if err != nil {
			return err
		}
		return repo.Create(ctx, loc)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	tx := NewTransactor(mock)
	boom := errors.New("boom")

	err = tx.InTransaction(context.Background(), func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The cascading client delete issues all its statements on the single
// transaction opened by the Transactor.
func TestTransactor_CascadingClientDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	clientID := ulid.Make()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM clients WHERE id`).
		WithArgs(clientID.String()).
		WillReturnRows(pgxmock.NewRows(clientCols()).
			AddRow(clientID.String(), "Ana Morales", nil, "",
				"12 Harbor Way", "", "", now, now))
	mock.ExpectExec(`DELETE FROM packages WHERE client_id`).
		WithArgs(clientID.String()).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(`INSERT INTO client_history`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`DELETE FROM clients WHERE id`).
		WithArgs(clientID.String()).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	clients := NewClientRepository(mock)
	packages := NewPackageRepository(mock)
	history := NewHistoryRepository(mock)
	tx := NewTransactor(mock)

	err = tx.InTransaction(context.Background(), func(ctx context.Context) error {
		client, err := clients.Get(ctx, clientID)
		if err != nil {
			return err
		}
		if _, err := packages.DeleteByClient(ctx, clientID); err != nil {
			return err
		}
		entry := shipping.NewClientHistory(clientID, "deleted client "+client.FullName)
		if err := history.Create(ctx, entry); err != nil {
			return err
		}
		return clients.Delete(ctx, clientID)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
