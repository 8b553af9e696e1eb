package users

import (
	"context"

	"github.com/calmouapp/calmou/internal/credentials"
	"github.com/calmouapp/calmou/internal/models"
	"github.com/calmouapp/calmou/internal/pool"
)

// Pooled is the production Repository: it leases one connection per call
// and releases it on every exit path. Password hashing happens before the
// lease is taken, so a scarce connection is never held during CPU-bound
// work.
type Pooled struct {
	pool  *pool.Pool
	creds *credentials.Service
}

func NewPooled(p *pool.Pool, creds *credentials.Service) *Pooled {
	return &Pooled{pool: p, creds: creds}
}

func (r *Pooled) Create(ctx context.Context, candidate models.NewUser) (*models.User, error) {
	rec, err := r.creds.Hash(candidate.Password)
	if err != nil {
		return nil, err
	}

	lease, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer lease.Release()

	user := &models.User{
		Name:       candidate.Name,
		Email:      candidate.Email,
		Credential: rec,
		Config:     candidate.Config,
	}
	return NewPostgresRepository(lease.Conn()).Insert(ctx, user)
}

func (r *Pooled) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	lease, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer lease.Release()

	return NewPostgresRepository(lease.Conn()).FindByEmail(ctx, email)
}

func (r *Pooled) FindByID(ctx context.Context, id int64) (*models.User, error) {
	lease, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer lease.Release()

	return NewPostgresRepository(lease.Conn()).FindByID(ctx, id)
}

func (r *Pooled) Update(ctx context.Context, id int64, patch models.UserPatch) error {
	// Re-hash only when a new password is actually present; an absent or
	// empty password leaves the stored credential record untouched.
	var rec *credentials.Record
	if patch.Password != nil && *patch.Password != "" {
		hashed, err := r.creds.Hash(*patch.Password)
		if err != nil {
			return err
		}
		rec = &hashed
	}

	lease, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer lease.Release()

	return NewPostgresRepository(lease.Conn()).Update(ctx, id, patch, rec)
}

func (r *Pooled) UpdateProfile(ctx context.Context, id int64, patch models.ProfilePatch) error {
	lease, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer lease.Release()

	return NewPostgresRepository(lease.Conn()).UpdateProfile(ctx, id, patch)
}

func (r *Pooled) Delete(ctx context.Context, id int64) error {
	lease, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer lease.Release()

	return NewPostgresRepository(lease.Conn()).Delete(ctx, id)
}

func (r *Pooled) List(ctx context.Context) ([]models.User, error) {
	lease, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer lease.Release()

	return NewPostgresRepository(lease.Conn()).List(ctx)
}
