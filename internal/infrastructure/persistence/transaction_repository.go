package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goldshop/backend/internal/domain/ledger"
	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTransactionRepository implements ledger.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Append inserts a money ledger entry. Entries are never updated.
func (r *GormTransactionRepository) Append(ctx context.Context, transaction *ledger.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

// FindByReference finds all transactions caused by one document
func (r *GormTransactionRepository) FindByReference(ctx context.Context, reference ledger.ReferenceType, referenceID uuid.UUID) ([]ledger.Transaction, error) {
	var transactions []ledger.Transaction
	if err := r.db.WithContext(ctx).
		Where("reference = ? AND reference_id = ?", reference, referenceID).
		Order("created_at ASC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// FindAll finds transactions with filtering
func (r *GormTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Transaction, error) {
	var transactions []ledger.Transaction
	query := r.applyFilter(r.db.WithContext(ctx).Model(&ledger.Transaction{}), filter, true)
	if err := query.Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// Count counts transactions matching the filter
func (r *GormTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&ledger.Transaction{}), filter, false)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateNumber generates the next transaction number, format TXN-YYYY-NNNN
func (r *GormTransactionRepository) GenerateNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("TXN-%d-", time.Now().Year())
	return nextDocumentNumber(r.db.WithContext(ctx).Model(&ledger.Transaction{}), "number", prefix)
}

func (r *GormTransactionRepository) applyFilter(query *gorm.DB, filter shared.Filter, paginate bool) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR category ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "reference":
			query = query.Where("reference = ?", value)
		case "reference_id":
			query = query.Where("reference_id = ?", value)
		case "account_id":
			query = query.Where("account_id = ?", value)
		case "party_id":
			query = query.Where("party_id = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
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

// Ensure GormTransactionRepository implements TransactionRepository
var _ ledger.TransactionRepository = (*GormTransactionRepository)(nil)
