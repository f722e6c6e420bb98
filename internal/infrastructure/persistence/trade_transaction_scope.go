package persistence

import (
	"context"

	apptrade "github.com/goldshop/backend/internal/application/trade"
	"github.com/goldshop/backend/internal/domain/audit"
	"github.com/goldshop/backend/internal/domain/ledger"
	"github.com/goldshop/backend/internal/domain/trade"
	"github.com/goldshop/backend/internal/domain/workshop"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// Every finalize, payment and settlement runs through here so that document
// state and ledger appends commit or roll back as one unit.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// InvoiceRepo returns the invoice repository scoped to the current transaction
func (r *gormTransactionalRepositories) InvoiceRepo() trade.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

// PurchaseRepo returns the purchase repository scoped to the current transaction
func (r *gormTransactionalRepositories) PurchaseRepo() trade.PurchaseRepository {
	return NewGormPurchaseRepository(r.tx)
}

// StockMovementRepo returns the stock movement repository scoped to the current transaction
func (r *gormTransactionalRepositories) StockMovementRepo() ledger.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// CategoryRepo returns the inventory category repository scoped to the current transaction
func (r *gormTransactionalRepositories) CategoryRepo() ledger.InventoryCategoryRepository {
	return NewGormInventoryCategoryRepository(r.tx)
}

// TransactionRepo returns the money ledger repository scoped to the current transaction
func (r *gormTransactionalRepositories) TransactionRepo() ledger.TransactionRepository {
	return NewGormTransactionRepository(r.tx)
}

// AccountRepo returns the account repository scoped to the current transaction
func (r *gormTransactionalRepositories) AccountRepo() ledger.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

// GoldLedgerRepo returns the gold ledger repository scoped to the current transaction
func (r *gormTransactionalRepositories) GoldLedgerRepo() ledger.GoldLedgerRepository {
	return NewGormGoldLedgerRepository(r.tx)
}

// JobCardRepo returns the job card repository scoped to the current transaction
func (r *gormTransactionalRepositories) JobCardRepo() workshop.JobCardRepository {
	return NewGormJobCardRepository(r.tx)
}

// AuditRepo returns the audit log repository scoped to the current transaction
func (r *gormTransactionalRepositories) AuditRepo() audit.LogRepository {
	return NewGormAuditLogRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ apptrade.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ apptrade.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
