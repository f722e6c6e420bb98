package persistence

import (
	"context"
	"strings"

	"github.com/goldshop/backend/internal/domain/audit"
	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAuditLogRepository implements audit.LogRepository using GORM
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append inserts an audit record. Records are never updated or deleted.
func (r *GormAuditLogRepository) Append(ctx context.Context, entry *audit.LogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByRecord finds all audit records for one document, oldest first
func (r *GormAuditLogRepository) FindByRecord(ctx context.Context, module string, recordID uuid.UUID) ([]audit.LogEntry, error) {
	var entries []audit.LogEntry
	if err := r.db.WithContext(ctx).
		Where("module = ? AND record_id = ?", module, recordID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindAll finds audit records with filtering
func (r *GormAuditLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]audit.LogEntry, error) {
	var entries []audit.LogEntry
	query := r.applyFilter(r.db.WithContext(ctx).Model(&audit.LogEntry{}), filter, true)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Count counts audit records matching the filter
func (r *GormAuditLogRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&audit.LogEntry{}), filter, false)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAuditLogRepository) applyFilter(query *gorm.DB, filter shared.Filter, paginate bool) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "module":
			query = query.Where("module = ?", value)
		case "action":
			query = query.Where("action = ?", value)
		case "actor_id":
			query = query.Where("actor_id = ?", value)
		}
	}

	if !paginate {
		return query
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
		query = query.Order("created_at DESC")
	}
	return query
}

// Ensure GormAuditLogRepository implements LogRepository
var _ audit.LogRepository = (*GormAuditLogRepository)(nil)
