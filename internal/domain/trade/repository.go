package trade

import (
	"context"

	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, number string) (*Invoice, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindOpenByParty returns finalized invoices with a positive balance for a party
	FindOpenByParty(ctx context.Context, partyID uuid.UUID) ([]Invoice, error)
	// FindAllOpen returns every finalized invoice with a positive balance
	FindAllOpen(ctx context.Context) ([]Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error
	// SaveWithLock persists using the aggregate version as an optimistic guard.
	// Returns shared.ErrConcurrencyConflict when another writer got there first.
	SaveWithLock(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	// GenerateNumber produces the next monotonic number, format INV-YYYY-NNNN
	GenerateNumber(ctx context.Context) (string, error)
}

// PurchaseRepository defines persistence operations for purchases
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindByNumber(ctx context.Context, number string) (*Purchase, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Purchase, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindOpenByVendor returns finalized purchases with a positive payable for a vendor
	FindOpenByVendor(ctx context.Context, vendorID uuid.UUID) ([]Purchase, error)
	// FindAllOpen returns every finalized purchase with a positive payable
	FindAllOpen(ctx context.Context) ([]Purchase, error)
	Save(ctx context.Context, purchase *Purchase) error
	SaveWithLock(ctx context.Context, purchase *Purchase) error
	Delete(ctx context.Context, id uuid.UUID) error
	// GenerateNumber produces the next monotonic number, format PUR-YYYY-NNNN
	GenerateNumber(ctx context.Context) (string, error)
}
