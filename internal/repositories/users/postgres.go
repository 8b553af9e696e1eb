package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/calmouapp/calmou/internal/common"
	"github.com/calmouapp/calmou/internal/credentials"
	"github.com/calmouapp/calmou/internal/dbx"
	"github.com/calmouapp/calmou/internal/models"
)

// uniqueViolation is the PostgreSQL error code for a violated unique
// constraint.
const uniqueViolation = "23505"

const userColumns = `id, name, email, password_hash, password_scheme, config,
	cpf, date_of_birth, blood_type, allergies, photo_ref, created_at`

// PostgresRepository holds the account SQL, bound to a dbx.Querier so the
// same statements run on a pooled connection or inside a transaction.
type PostgresRepository struct {
	db dbx.Querier
}

func NewPostgresRepository(db dbx.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores a user whose credential record is already hashed.
func (r *PostgresRepository) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (name, email, password_hash, password_scheme, config)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRow(ctx, query,
		user.Name, user.Email, user.Credential.Hash, user.Credential.Scheme, user.Config,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

// Update applies an account patch. When rec is non-nil the stored credential
// pair is replaced wholesale; when nil the statement does not mention the
// credential columns at all, leaving them byte-for-byte untouched.
func (r *PostgresRepository) Update(ctx context.Context, id int64, patch models.UserPatch, rec *credentials.Record) error {
	var (
		tag pgconn.CommandTag
		err error
	)
	if rec != nil {
		query :=
			`UPDATE users
			 SET name = COALESCE($2::text, name),
			     email = COALESCE($3::text, email),
			     config = COALESCE($4::jsonb, config),
			     password_hash = $5,
			     password_scheme = $6
			 WHERE id = $1
			 `
		tag, err = r.db.Exec(ctx, query, id, patch.Name, patch.Email, patch.Config, rec.Hash, rec.Scheme)
	} else {
		query :=
			`UPDATE users
			 SET name = COALESCE($2::text, name),
			     email = COALESCE($3::text, email),
			     config = COALESCE($4::jsonb, config)
			 WHERE id = $1
			 `
		tag, err = r.db.Exec(ctx, query, id, patch.Name, patch.Email, patch.Config)
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrDuplicateEmail
		}
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, id int64, patch models.ProfilePatch) error {
	query :=
		`UPDATE users
		 SET name = COALESCE($2::text, name),
		     cpf = COALESCE($3::text, cpf),
		     date_of_birth = COALESCE($4::date, date_of_birth),
		     blood_type = COALESCE($5::text, blood_type),
		     allergies = COALESCE($6::text, allergies),
		     photo_ref = COALESCE($7::text, photo_ref)
		 WHERE id = $1
		 `

	tag, err := r.db.Exec(ctx, query, id,
		patch.Name, patch.CPF, patch.DateOfBirth, patch.BloodType, patch.Allergies, patch.PhotoRef)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUserFrom(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return users, nil
}

func (r *PostgresRepository) scanUser(row pgx.Row) (*models.User, error) {
	u, err := scanUserFrom(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func scanUserFrom(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Credential.Hash, &u.Credential.Scheme, &u.Config,
		&u.CPF, &u.DateOfBirth, &u.BloodType, &u.Allergies, &u.PhotoRef, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}
