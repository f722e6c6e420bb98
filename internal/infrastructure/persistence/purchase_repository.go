package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/goldshop/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements trade.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByNumber finds a purchase by its document number
func (r *GormPurchaseRepository) FindByNumber(ctx context.Context, number string) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("number = ?", number).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindAll finds purchases with filtering
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Purchase, error) {
	var purchases []trade.Purchase
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.Purchase{}).Preload("Items"), filter)
	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// Count counts purchases matching the filter
func (r *GormPurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&trade.Purchase{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindOpenByVendor returns finalized purchases with a positive payable for a vendor
func (r *GormPurchaseRepository) FindOpenByVendor(ctx context.Context, vendorID uuid.UUID) ([]trade.Purchase, error) {
	var purchases []trade.Purchase
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND status = ? AND balance_due > 0", vendorID, trade.DocumentStatusFinalized).
		Order("document_date ASC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// FindAllOpen returns every finalized purchase with a positive payable
func (r *GormPurchaseRepository) FindAllOpen(ctx context.Context) ([]trade.Purchase, error) {
	var purchases []trade.Purchase
	if err := r.db.WithContext(ctx).
		Where("status = ? AND balance_due > 0", trade.DocumentStatusFinalized).
		Order("document_date ASC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// Save creates or updates a purchase together with its items
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(purchase).Error; err != nil {
			return err
		}
		return r.syncItems(tx, purchase)
	})
}

// SaveWithLock persists the purchase using the aggregate version as an
// optimistic guard
func (r *GormPurchaseRepository) SaveWithLock(ctx context.Context, purchase *trade.Purchase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := purchase.Version
		purchase.Version++
		purchase.UpdatedAt = time.Now()

		result := tx.Model(&trade.Purchase{}).
			Where("id = ? AND version = ?", purchase.ID, currentVersion).
			Updates(map[string]interface{}{
				"vendor_id":            purchase.VendorID,
				"vendor_name":          purchase.VendorName,
				"subtotal":             purchase.Subtotal,
				"grand_total":          purchase.GrandTotal,
				"paid_amount":          purchase.PaidAmount,
				"balance_due":          purchase.BalanceDue,
				"paying_account_id":    purchase.PayingAccountID,
				"advance_gold_grams":   purchase.AdvanceGoldGrams,
				"advance_gold_purity":  purchase.AdvanceGoldPurity,
				"exchange_gold_grams":  purchase.ExchangeGoldGrams,
				"exchange_gold_purity": purchase.ExchangeGoldPurity,
				"status":               purchase.Status,
				"payment_status":       purchase.PaymentStatus,
				"locked":               purchase.Locked,
				"locked_at":            purchase.LockedAt,
				"locked_by":            purchase.LockedBy,
				"finalized_at":         purchase.FinalizedAt,
				"finalized_by":         purchase.FinalizedBy,
				"remark":               purchase.Remark,
				"version":              purchase.Version,
				"updated_at":           purchase.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			purchase.Version = currentVersion
			return shared.ErrConcurrencyConflict
		}

		return r.syncItems(tx, purchase)
	})
}

func (r *GormPurchaseRepository) syncItems(tx *gorm.DB, purchase *trade.Purchase) error {
	currentItemIDs := make([]uuid.UUID, len(purchase.Items))
	for i, item := range purchase.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("purchase_id = ? AND id NOT IN ?", purchase.ID, currentItemIDs).
			Delete(&trade.PurchaseItem{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("purchase_id = ?", purchase.ID).
			Delete(&trade.PurchaseItem{}).Error; err != nil {
			return err
		}
	}

	for i := range purchase.Items {
		purchase.Items[i].PurchaseID = purchase.ID
		if err := tx.Save(&purchase.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes a purchase together with its items
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_id = ?", id).Delete(&trade.PurchaseItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.Purchase{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// GenerateNumber generates the next purchase number, format PUR-YYYY-NNNN
func (r *GormPurchaseRepository) GenerateNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("PUR-%d-", time.Now().Year())
	return nextDocumentNumber(r.db.WithContext(ctx).Model(&trade.Purchase{}), "number", prefix)
}

// applyFilter applies filter options to the query
func (r *GormPurchaseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
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

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPurchaseRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR vendor_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "vendor_id":
			query = query.Where("vendor_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("document_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("document_date <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormPurchaseRepository implements PurchaseRepository
var _ trade.PurchaseRepository = (*GormPurchaseRepository)(nil)
