package ledger

import (
	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType is the direction of a stock movement
type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// IsValid checks if the movement type is known
func (t MovementType) IsValid() bool {
	return t == MovementIn || t == MovementOut
}

// ReferenceType identifies the document that caused a ledger entry
type ReferenceType string

const (
	ReferenceInvoice  ReferenceType = "invoice"
	ReferencePurchase ReferenceType = "purchase"
)

// FallbackCategoryName is recorded on a movement when neither a catalog
// category nor any item text is available. Movements are written for every
// weighted line regardless of catalog drift, so the audit trail stays whole.
const FallbackCategoryName = "Uncategorized Item"

// StockMovement is an immutable entry in the inventory ledger. Deltas are
// signed: outflows carry negative quantity and weight.
type StockMovement struct {
	shared.BaseEntity
	MovementType MovementType    `gorm:"type:varchar(10);not null"`
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index"` // nil when no catalog category matched
	CategoryName string          `gorm:"type:varchar(100);not null"` // catalog name, or item category/description fallback
	QtyDelta     decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	WeightDelta  decimal.Decimal `gorm:"type:decimal(18,3);not null"` // grams, 3 decimals, negative for outflow
	Purity       int             `gorm:"not null;default:0"` // purity used for valuation
	Reference    ReferenceType   `gorm:"type:varchar(20);not null;index:idx_stock_movement_ref"`
	ReferenceID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_movement_ref"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates an inventory ledger entry. categoryID may be nil;
// categoryName falls back through catalog name, item category, item
// description, then a generic placeholder.
func NewStockMovement(movementType MovementType, categoryID *uuid.UUID, categoryName string, qtyDelta, weightDelta decimal.Decimal, purity int, reference ReferenceType, referenceID uuid.UUID) (*StockMovement, error) {
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Movement type must be IN or OUT")
	}
	if referenceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Stock movement requires a causing document")
	}
	if movementType == MovementOut && weightDelta.IsPositive() {
		return nil, shared.NewDomainError("INVALID_DELTA", "OUT movements must carry non-positive deltas")
	}
	if movementType == MovementIn && weightDelta.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DELTA", "IN movements must carry non-negative deltas")
	}
	if categoryName == "" {
		categoryName = FallbackCategoryName
	}

	return &StockMovement{
		BaseEntity:   shared.NewBaseEntity(),
		MovementType: movementType,
		CategoryID:   categoryID,
		CategoryName: categoryName,
		QtyDelta:     qtyDelta,
		WeightDelta:  weightDelta.Round(3),
		Purity:       purity,
		Reference:    reference,
		ReferenceID:  referenceID,
	}, nil
}

// ResolveMovementName picks the human-readable name for a movement when the
// catalog has no matching category: item category, then description, then the
// generic placeholder.
func ResolveMovementName(itemCategory, itemDescription string) string {
	if itemCategory != "" {
		return itemCategory
	}
	if itemDescription != "" {
		return itemDescription
	}
	return FallbackCategoryName
}
