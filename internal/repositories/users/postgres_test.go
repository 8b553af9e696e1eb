package users

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/calmouapp/calmou/internal/common"
	"github.com/calmouapp/calmou/internal/credentials"
	"github.com/calmouapp/calmou/internal/models"
)

// recordingQuerier captures every statement so tests can assert on the SQL
// the repository actually issues.
type recordingQuerier struct {
	execSQL  []string
	execArgs [][]any
	execTag  pgconn.CommandTag
	execErr  error
}

func (f *recordingQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	f.execArgs = append(f.execArgs, args)
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	return f.execTag, nil
}

func (f *recordingQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}

func (f *recordingQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return errRow{}
}

func (f *recordingQuerier) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }

type errRow struct{}

func (errRow) Scan(dest ...any) error { return pgx.ErrNoRows }

func strPtr(s string) *string { return &s }

func TestUpdate_WithoutPasswordNeverTouchesCredentialColumns(t *testing.T) {
	q := &recordingQuerier{execTag: pgconn.NewCommandTag("UPDATE 1")}
	repo := NewPostgresRepository(q)

	err := repo.Update(context.Background(), 1, models.UserPatch{Name: strPtr("Ana")}, nil)
	require.NoError(t, err)

	require.Len(t, q.execSQL, 1)
	require.NotContains(t, q.execSQL[0], "password_hash")
	require.NotContains(t, q.execSQL[0], "password_scheme")
}

func TestUpdate_WithPasswordReplacesCredentialWholesale(t *testing.T) {
	q := &recordingQuerier{execTag: pgconn.NewCommandTag("UPDATE 1")}
	repo := NewPostgresRepository(q)

	rec := &credentials.Record{Hash: "$argon2id$...", Scheme: credentials.SchemeArgon2id}
	err := repo.Update(context.Background(), 1, models.UserPatch{}, rec)
	require.NoError(t, err)

	require.Len(t, q.execSQL, 1)
	require.Contains(t, q.execSQL[0], "password_hash")
	require.Contains(t, q.execSQL[0], "password_scheme")
	require.Contains(t, q.execArgs[0], rec.Hash)
	require.Contains(t, q.execArgs[0], rec.Scheme)
}

func TestUpdate_UniqueViolationIsDuplicateEmail(t *testing.T) {
	q := &recordingQuerier{execErr: &pgconn.PgError{Code: "23505"}}
	repo := NewPostgresRepository(q)

	err := repo.Update(context.Background(), 1, models.UserPatch{Email: strPtr("taken@x.com")}, nil)
	require.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestUpdate_MissingUser(t *testing.T) {
	q := &recordingQuerier{execTag: pgconn.NewCommandTag("UPDATE 0")}
	repo := NewPostgresRepository(q)

	err := repo.Update(context.Background(), 99, models.UserPatch{Name: strPtr("Ana")}, nil)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateProfile_NeverTouchesEmailOrCredentials(t *testing.T) {
	q := &recordingQuerier{execTag: pgconn.NewCommandTag("UPDATE 1")}
	repo := NewPostgresRepository(q)

	err := repo.UpdateProfile(context.Background(), 1, models.ProfilePatch{
		BloodType: strPtr("O+"),
		Allergies: strPtr("pollen"),
	})
	require.NoError(t, err)

	require.Len(t, q.execSQL, 1)
	require.NotContains(t, q.execSQL[0], "email")
	require.NotContains(t, q.execSQL[0], "password")
}

func TestDelete_MissingUser(t *testing.T) {
	q := &recordingQuerier{execTag: pgconn.NewCommandTag("DELETE 0")}
	repo := NewPostgresRepository(q)

	err := repo.Delete(context.Background(), 99)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestDelete_RemovesSingleRow(t *testing.T) {
	q := &recordingQuerier{execTag: pgconn.NewCommandTag("DELETE 1")}
	repo := NewPostgresRepository(q)

	err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(q.execSQL[0], "DELETE FROM users"))
}

func TestFindByEmail_Missing(t *testing.T) {
	repo := NewPostgresRepository(&recordingQuerier{})

	_, err := repo.FindByEmail(context.Background(), "nobody@x.com")
	require.ErrorIs(t, err, common.ErrNotFound)
}
