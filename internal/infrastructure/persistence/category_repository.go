package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/goldshop/backend/internal/domain/ledger"
	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInventoryCategoryRepository implements ledger.InventoryCategoryRepository using GORM
type GormInventoryCategoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryCategoryRepository creates a new GormInventoryCategoryRepository
func NewGormInventoryCategoryRepository(db *gorm.DB) *GormInventoryCategoryRepository {
	return &GormInventoryCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormInventoryCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.InventoryCategory, error) {
	var category ledger.InventoryCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByNormalizedName looks a category up by its canonical key
func (r *GormInventoryCategoryRepository) FindByNormalizedName(ctx context.Context, normalized string) (*ledger.InventoryCategory, error) {
	var category ledger.InventoryCategory
	if err := r.db.WithContext(ctx).
		Where("normalized_name = ?", normalized).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds categories with filtering
func (r *GormInventoryCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.InventoryCategory, error) {
	var categories []ledger.InventoryCategory
	query := r.db.WithContext(ctx).Model(&ledger.InventoryCategory{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("name ASC")
	}
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Count counts categories matching the filter
func (r *GormInventoryCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&ledger.InventoryCategory{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists the category. A normalized name collision with another
// category surfaces as shared.ErrAlreadyExists.
func (r *GormInventoryCategoryRepository) Save(ctx context.Context, category *ledger.InventoryCategory) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ledger.InventoryCategory{}).
		Where("normalized_name = ? AND id <> ?", category.NormalizedName, category.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return shared.ErrAlreadyExists
	}
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete deletes a category. Ledger movements keep their snapshot name.
func (r *GormInventoryCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.InventoryCategory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormInventoryCategoryRepository implements InventoryCategoryRepository
var _ ledger.InventoryCategoryRepository = (*GormInventoryCategoryRepository)(nil)
