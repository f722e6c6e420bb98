package persistence

import (
	"context"
	"errors"

	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/goldshop/backend/internal/domain/workshop"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormJobCardRepository implements workshop.JobCardRepository using GORM
type GormJobCardRepository struct {
	db *gorm.DB
}

// NewGormJobCardRepository creates a new GormJobCardRepository
func NewGormJobCardRepository(db *gorm.DB) *GormJobCardRepository {
	return &GormJobCardRepository{db: db}
}

// FindByID finds a job card by its ID
func (r *GormJobCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*workshop.JobCard, error) {
	var card workshop.JobCard
	if err := r.db.WithContext(ctx).First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

// Save creates or updates a job card
func (r *GormJobCardRepository) Save(ctx context.Context, card *workshop.JobCard) error {
	return r.db.WithContext(ctx).Save(card).Error
}

// Ensure GormJobCardRepository implements JobCardRepository
var _ workshop.JobCardRepository = (*GormJobCardRepository)(nil)
