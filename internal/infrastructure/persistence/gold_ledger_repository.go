package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/goldshop/backend/internal/domain/ledger"
	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormGoldLedgerRepository implements ledger.GoldLedgerRepository using GORM
type GormGoldLedgerRepository struct {
	db *gorm.DB
}

// NewGormGoldLedgerRepository creates a new GormGoldLedgerRepository
func NewGormGoldLedgerRepository(db *gorm.DB) *GormGoldLedgerRepository {
	return &GormGoldLedgerRepository{db: db}
}

// Append inserts a gold ledger entry. Entries are never updated.
func (r *GormGoldLedgerRepository) Append(ctx context.Context, entry *ledger.GoldLedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByParty finds a party's gold ledger entries with filtering
func (r *GormGoldLedgerRepository) FindByParty(ctx context.Context, partyID uuid.UUID, filter shared.Filter) ([]ledger.GoldLedgerEntry, error) {
	var entries []ledger.GoldLedgerEntry
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&ledger.GoldLedgerEntry{}).Where("party_id = ?", partyID),
		filter, true,
	)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CountByParty counts a party's gold ledger entries
func (r *GormGoldLedgerRepository) CountByParty(ctx context.Context, partyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&ledger.GoldLedgerEntry{}).Where("party_id = ?", partyID),
		filter, false,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumByParty returns the total IN and OUT weights for a party
func (r *GormGoldLedgerRepository) SumByParty(ctx context.Context, partyID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	type row struct {
		Type  ledger.GoldEntryType
		Total decimal.Decimal
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&ledger.GoldLedgerEntry{}).
		Select("type, COALESCE(SUM(weight_grams), 0) AS total").
		Where("party_id = ?", partyID).
		Group("type").
		Scan(&rows).Error; err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	in, out := decimal.Zero, decimal.Zero
	for _, entry := range rows {
		switch entry.Type {
		case ledger.GoldIn:
			in = entry.Total
		case ledger.GoldOut:
			out = entry.Total
		}
	}
	return in, out, nil
}

func (r *GormGoldLedgerRepository) applyFilter(query *gorm.DB, filter shared.Filter, paginate bool) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "purpose":
			query = query.Where("purpose = ?", value)
		case "reference":
			query = query.Where("reference = ?", value)
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

// Ensure GormGoldLedgerRepository implements GoldLedgerRepository
var _ ledger.GoldLedgerRepository = (*GormGoldLedgerRepository)(nil)
