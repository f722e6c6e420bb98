package ledger

import (
	"strings"
	"time"

	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

var categoryFolder = cases.Fold()

// NormalizeCategoryName produces the canonical form used for uniqueness
// checks: case-folded with whitespace collapsed. "Gold  Rings" and
// "gold rings" normalize to the same key.
func NormalizeCategoryName(name string) string {
	folded := categoryFolder.String(strings.TrimSpace(name))
	return strings.Join(strings.Fields(folded), " ")
}

// InventoryCategory is a stock catalog entry carrying materialized totals.
// CurrentQty and CurrentWeight are projections of the movement ledger and are
// only updated transactionally alongside a movement append.
type InventoryCategory struct {
	shared.BaseEntity
	Name           string          `gorm:"type:varchar(100);not null"`
	NormalizedName string          `gorm:"type:varchar(100);not null;uniqueIndex"` // unique key, see NormalizeCategoryName
	CurrentQty     decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`
	CurrentWeight  decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"` // grams, 3 decimals
}

// TableName returns the table name for GORM
func (InventoryCategory) TableName() string {
	return "inventory_categories"
}

// NewInventoryCategory creates a catalog category with zero stock
func NewInventoryCategory(name string) (*InventoryCategory, error) {
	normalized := NormalizeCategoryName(name)
	if normalized == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}

	return &InventoryCategory{
		BaseEntity:     shared.NewBaseEntity(),
		Name:           strings.TrimSpace(name),
		NormalizedName: normalized,
		CurrentQty:     decimal.Zero,
		CurrentWeight:  decimal.Zero,
	}, nil
}

// ApplyMovement folds a movement's deltas into the materialized totals.
// Must run in the same atomic unit as the movement append.
func (c *InventoryCategory) ApplyMovement(qtyDelta, weightDelta decimal.Decimal) {
	c.CurrentQty = c.CurrentQty.Add(qtyDelta)
	c.CurrentWeight = c.CurrentWeight.Add(weightDelta).Round(3)
	c.UpdatedAt = time.Now()
}

// Rename changes the display name, keeping the normalized key in sync
func (c *InventoryCategory) Rename(name string) error {
	normalized := NormalizeCategoryName(name)
	if normalized == "" {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	c.Name = strings.TrimSpace(name)
	c.NormalizedName = normalized
	c.UpdatedAt = time.Now()
	return nil
}
