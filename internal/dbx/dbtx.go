// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (Querier) implemented by pooled connections and by
// pgx transactions, and a helper to run functions inside a transaction.
package dbx

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx used by our repos.
// *pgx.Conn, pgx.Tx, and pool leases all satisfy this interface.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithTx begins a transaction on q, runs fn with the transactional handle,
// and then commits on success or rolls back on error/panic. Panics are
// rethrown.
//
// Typical use:
//
//	err := dbx.WithTx(ctx, conn, func(ctx context.Context, tx pgx.Tx) error {
//	    // use tx instead of conn
//	    _, err := tx.Exec(ctx, "UPDATE ...")
//	    return err
//	})
func WithTx(ctx context.Context, q Querier, fn func(ctx context.Context, tx pgx.Tx) error) (err error) {
	tx, err := q.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	err = fn(ctx, tx)
	return err
}
