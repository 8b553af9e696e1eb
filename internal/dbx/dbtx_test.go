package dbx

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeTx struct {
	commits   int
	rollbacks int
	beginErr  error
	commitErr error
}

func (f *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return f, f.beginErr }
func (f *fakeTx) Commit(ctx context.Context) error {
	f.commits++
	return f.commitErr
}
func (f *fakeTx) Rollback(ctx context.Context) error {
	f.rollbacks++
	return nil
}
func (f *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (f *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (f *fakeTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (f *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (f *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (f *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (f *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (f *fakeTx) Conn() *pgx.Conn                                               { return nil }

type fakeQuerier struct {
	tx       *fakeTx
	beginErr error
}

func (f *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (f *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (f *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (f *fakeQuerier) Begin(ctx context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return f.tx, nil
}

// --- tests ---

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	tx := &fakeTx{}
	q := &fakeQuerier{tx: tx}

	err := WithTx(context.Background(), q, func(ctx context.Context, tx pgx.Tx) error {
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, tx.commits)
	require.Equal(t, 0, tx.rollbacks)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	tx := &fakeTx{}
	q := &fakeQuerier{tx: tx}
	boom := errors.New("boom")

	err := WithTx(context.Background(), q, func(ctx context.Context, tx pgx.Tx) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, tx.commits)
	require.Equal(t, 1, tx.rollbacks)
}

func TestWithTx_RollsBackAndRethrowsOnPanic(t *testing.T) {
	tx := &fakeTx{}
	q := &fakeQuerier{tx: tx}

	require.Panics(t, func() {
		_ = WithTx(context.Background(), q, func(ctx context.Context, tx pgx.Tx) error {
			panic("unexpected")
		})
	})
	require.Equal(t, 0, tx.commits)
	require.Equal(t, 1, tx.rollbacks)
}

func TestWithTx_BeginError(t *testing.T) {
	boom := errors.New("begin failed")
	q := &fakeQuerier{beginErr: boom}

	err := WithTx(context.Background(), q, func(ctx context.Context, tx pgx.Tx) error {
		t.Fatal("fn should not run")
		return nil
	})
	require.ErrorIs(t, err, boom)
}

func TestWithTx_CommitError(t *testing.T) {
	boom := errors.New("commit failed")
	tx := &fakeTx{commitErr: boom}
	q := &fakeQuerier{tx: tx}

	err := WithTx(context.Background(), q, func(ctx context.Context, tx pgx.Tx) error {
		return nil
	})
	require.ErrorIs(t, err, boom)
}
