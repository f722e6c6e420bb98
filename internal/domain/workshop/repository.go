package workshop

import (
	"context"

	"github.com/google/uuid"
)

// JobCardRepository defines persistence operations for job cards
type JobCardRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*JobCard, error)
	Save(ctx context.Context, jobCard *JobCard) error
}
