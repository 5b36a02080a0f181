// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightdesk/freightdesk/internal/shipping"
)

func packageCols() []string {
	return []string{
		"id", "description", "quantity", "weight", "category",
		"customs_declaration", "additional_services", "miscellaneous",
		"client_id", "recipient_id", "created_at",
	}
}

func TestPackageRepository_Get(t *testing.T) {
	id := ulid.Make()
	clientID := ulid.Make()
	recipientID := ulid.Make()
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		weight := 1.2
		rows := pgxmock.NewRows(packageCols()).
			AddRow(id.String(), "books", 2, &weight, "media", "", "", "",
				clientID.String(), recipientID.String(), now)
		mock.ExpectQuery(`SELECT .+ FROM packages WHERE id`).
			WithArgs(id.String()).
			WillReturnRows(rows)

		repo := NewPackageRepository(mock)
		got, err := repo.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 2, got.Quantity)
		assert.Equal(t, clientID, got.ClientID)
		assert.Equal(t, recipientID, got.RecipientID)
		require.NotNil(t, got.Weight)
		assert.InDelta(t, 1.2, *got.Weight, 0.001)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT .+ FROM packages WHERE id`).
			WithArgs(id.String()).
			WillReturnRows(pgxmock.NewRows(packageCols()))

		repo := NewPackageRepository(mock)
		_, err = repo.Get(context.Background(), id)
		assert.ErrorIs(t, err, shipping.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPackageRepository_DeleteByClient(t *testing.T) {
	clientID := ulid.Make()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM packages WHERE client_id`).
		WithArgs(clientID.String()).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	repo := NewPackageRepository(mock)
	n, err := repo.DeleteByClient(context.Background(), clientID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPackageRepository_CountByRecipient(t *testing.T) {
	recipientID := ulid.Make()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM packages WHERE recipient_id`).
		WithArgs(recipientID.String()).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))

	repo := NewPackageRepository(mock)
	count, err := repo.CountByRecipient(context.Background(), recipientID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPackageRepository_Delete(t *testing.T) {
	id := ulid.Make()

	t.Run("no rows affected is not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM packages WHERE id`).
			WithArgs(id.String()).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := NewPackageRepository(mock)
		err = repo.Delete(context.Background(), id)
		assert.ErrorIs(t, err, shipping.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
