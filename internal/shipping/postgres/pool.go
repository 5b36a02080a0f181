// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

// Package postgres implements the shipping repository interfaces on
// PostgreSQL via pgx.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PoolIface abstracts the pgxpool methods the repositories use, so
// tests can substitute pgxmock.PgxPoolIface.
type PoolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BeginnerIface extends PoolIface with transaction support for the
// Transactor.
type BeginnerIface interface {
	PoolIface
	Begin(ctx context.Context) (pgx.Tx, error)
}

// txKey keys the active pgx.Tx in a context.
type txKey struct{}

// executor is satisfied by both the pool and pgx.Tx.
type executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// executorFromCtx returns the transaction stored in ctx by the
// Transactor, or the fallback pool when no transaction is active.
func executorFromCtx(ctx context.Context, fallback executor) executor {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return fallback
}
