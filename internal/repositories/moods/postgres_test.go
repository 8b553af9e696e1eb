package moods

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type execQuerier struct {
	sql  []string
	args [][]any
	tag  pgconn.CommandTag
	err  error
}

func (f *execQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql = append(f.sql, sql)
	f.args = append(f.args, args)
	return f.tag, f.err
}
func (f *execQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}
func (f *execQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (f *execQuerier) Begin(ctx context.Context) (pgx.Tx, error)                     { return nil, nil }

func TestDeleteByUser_ReportsRowCount(t *testing.T) {
	q := &execQuerier{tag: pgconn.NewCommandTag("DELETE 7")}
	repo := NewPostgresRepository(q)

	n, err := repo.DeleteByUser(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, int64(7), n)

	require.Len(t, q.sql, 1)
	require.Contains(t, q.sql[0], "mood_entries")
	require.Equal(t, []any{int64(42)}, q.args[0])
}

func TestDeleteByUser_NoEntriesIsNotAnError(t *testing.T) {
	q := &execQuerier{tag: pgconn.NewCommandTag("DELETE 0")}
	repo := NewPostgresRepository(q)

	n, err := repo.DeleteByUser(context.Background(), 42)
	require.NoError(t, err)
	require.Zero(t, n)
}
