// Package users is the account repository: single-row CRUD over the user
// entity. Every operation runs on a pooled connection leased for the
// duration of the call and released on all exit paths.
package users

import (
	"context"

	"github.com/calmouapp/calmou/internal/models"
)

type Repository interface {
	// Create registers a new account. The candidate carries a plaintext
	// password, which is hashed before any connection is leased. A violated
	// unique-email constraint yields common.ErrDuplicateEmail.
	Create(ctx context.Context, candidate models.NewUser) (*models.User, error)

	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)

	// Update applies an account patch; see models.UserPatch for the
	// absent-means-unchanged contract.
	Update(ctx context.Context, id int64, patch models.UserPatch) error

	// UpdateProfile mutates only non-credential profile fields.
	UpdateProfile(ctx context.Context, id int64, patch models.ProfilePatch) error

	// Delete removes only the user row. It does not cascade; removing a
	// user's whole data footprint is the deletion workflow's job, so a
	// plain delete failure can never be confused with a partial cascade.
	Delete(ctx context.Context, id int64) error

	// List returns all users in unspecified order.
	List(ctx context.Context) ([]models.User, error)
}
