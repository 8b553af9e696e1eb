package services

import (
	"context"

	"github.com/calmouapp/calmou/internal/models"
	"github.com/calmouapp/calmou/internal/pool"
	"github.com/calmouapp/calmou/internal/repositories/assessments"
)

// AssessmentService stores psychological assessment results.
type AssessmentService struct {
	pool *pool.Pool
}

func NewAssessmentService(p *pool.Pool) *AssessmentService {
	return &AssessmentService{pool: p}
}

func (s *AssessmentService) Save(ctx context.Context, res *models.AssessmentResult) (*models.AssessmentResult, error) {
	lease, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer lease.Release()

	return assessments.NewPostgresRepository(lease.Conn()).Insert(ctx, res)
}

func (s *AssessmentService) History(ctx context.Context, userID int64, limit int) ([]models.AssessmentResult, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	lease, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer lease.Release()

	return assessments.NewPostgresRepository(lease.Conn()).ListByUser(ctx, userID, limit)
}
