// Package assessments stores psychological assessment results.
package assessments

import (
	"context"

	"github.com/calmouapp/calmou/internal/models"
)

type Repository interface {
	Insert(ctx context.Context, res *models.AssessmentResult) (*models.AssessmentResult, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]models.AssessmentResult, error)

	// DeleteByUser removes every result owned by userID and reports how many
	// rows went away; the cascading deletion workflow audits the count.
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}
