package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/calmouapp/calmou/internal/common"
	"github.com/calmouapp/calmou/internal/models"
	"github.com/calmouapp/calmou/internal/pool"
	"github.com/calmouapp/calmou/internal/repositories/meditations"
)

// MeditationService serves the catalog and tracks completed sessions.
type MeditationService struct {
	pool *pool.Pool
}

func NewMeditationService(p *pool.Pool) *MeditationService {
	return &MeditationService{pool: p}
}

// Catalog lists available meditations, optionally narrowed to one category.
func (s *MeditationService) Catalog(ctx context.Context, category string) ([]models.Meditation, error) {
	lease, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer lease.Release()

	return meditations.NewPostgresRepository(lease.Conn()).List(ctx, category)
}

func (s *MeditationService) Get(ctx context.Context, id int64) (*models.Meditation, error) {
	lease, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer lease.Release()

	return meditations.NewPostgresRepository(lease.Conn()).GetByID(ctx, id)
}

// Complete records a finished session. The meditation must exist in the
// catalog; when the reported minutes are zero the catalog duration is used.
func (s *MeditationService) Complete(ctx context.Context, c *models.MeditationCompletion) (*models.MeditationCompletion, error) {
	lease, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer lease.Release()

	repo := meditations.NewPostgresRepository(lease.Conn())

	m, err := repo.GetByID(ctx, c.MeditationID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("loading meditation: %w", err)
	}
	if c.ActualMinutes <= 0 {
		c.ActualMinutes = m.DurationMinutes
	}

	return repo.InsertCompletion(ctx, c)
}

// History returns the user's completed sessions, newest first.
func (s *MeditationService) History(ctx context.Context, userID int64, limit int) ([]meditations.HistoryItem, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	lease, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer lease.Release()

	return meditations.NewPostgresRepository(lease.Conn()).HistoryByUser(ctx, userID, limit)
}

// Stats aggregates the user's practice: total sessions, total minutes, and a
// per-category breakdown.
func (s *MeditationService) Stats(ctx context.Context, userID int64) (*models.MeditationStats, error) {
	lease, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer lease.Release()

	return meditations.NewPostgresRepository(lease.Conn()).Stats(ctx, userID)
}

// DeleteHistoryEntry removes one completion, but only if userID owns it.
func (s *MeditationService) DeleteHistoryEntry(ctx context.Context, id, userID int64) error {
	lease, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer lease.Release()

	return meditations.NewPostgresRepository(lease.Conn()).DeleteCompletion(ctx, id, userID)
}
