package ledger

import (
	"context"

	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockMovementRepository is the append-only inventory ledger store
type StockMovementRepository interface {
	Append(ctx context.Context, movement *StockMovement) error
	FindByReference(ctx context.Context, reference ReferenceType, referenceID uuid.UUID) ([]StockMovement, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StockMovement, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// InventoryCategoryRepository stores catalog categories and their
// materialized stock totals
type InventoryCategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryCategory, error)
	// FindByNormalizedName looks a category up by its canonical key.
	// Returns shared.ErrNotFound when the catalog has no match.
	FindByNormalizedName(ctx context.Context, normalized string) (*InventoryCategory, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryCategory, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// Save persists the category. Returns shared.ErrAlreadyExists when the
	// normalized name collides with another category.
	Save(ctx context.Context, category *InventoryCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionRepository is the append-only money ledger store
type TransactionRepository interface {
	Append(ctx context.Context, transaction *Transaction) error
	FindByReference(ctx context.Context, reference ReferenceType, referenceID uuid.UUID) ([]Transaction, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Transaction, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// GenerateNumber produces the next monotonic number, format TXN-YYYY-NNNN
	GenerateNumber(ctx context.Context) (string, error)
}

// AccountRepository stores money accounts and their materialized balances
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Account, error)
	Save(ctx context.Context, account *Account) error
}

// GoldLedgerRepository is the append-only per-party gold ledger store
type GoldLedgerRepository interface {
	Append(ctx context.Context, entry *GoldLedgerEntry) error
	FindByParty(ctx context.Context, partyID uuid.UUID, filter shared.Filter) ([]GoldLedgerEntry, error)
	CountByParty(ctx context.Context, partyID uuid.UUID, filter shared.Filter) (int64, error)
	// SumByParty returns the total IN and OUT weights for a party.
	// Available balance is in minus out.
	SumByParty(ctx context.Context, partyID uuid.UUID) (in, out decimal.Decimal, err error)
}
