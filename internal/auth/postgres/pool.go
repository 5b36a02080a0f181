// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

// Package postgres provides PostgreSQL implementations of the auth
// repository interfaces.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PoolIface abstracts the subset of *pgxpool.Pool the repositories use.
// pgxmock's PgxPoolIface satisfies it, which keeps repository tests off
// a live database.
type PoolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
