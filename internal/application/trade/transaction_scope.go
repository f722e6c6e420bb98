package trade

import (
	"context"

	"github.com/goldshop/backend/internal/domain/audit"
	"github.com/goldshop/backend/internal/domain/ledger"
	"github.com/goldshop/backend/internal/domain/trade"
	"github.com/goldshop/backend/internal/domain/workshop"
)

// TransactionScope provides transactional access to the repositories touched
// by finalization and payment. When a function is executed within a scope,
// all repository operations are part of the same database transaction and
// commit or roll back atomically. Finalization depends on this: a document
// flip, its ledger entries and its side effects must land together or not
// at all.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all finalization repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// InvoiceRepo returns the invoice repository scoped to the current transaction
	InvoiceRepo() trade.InvoiceRepository
	// PurchaseRepo returns the purchase repository scoped to the current transaction
	PurchaseRepo() trade.PurchaseRepository
	// StockMovementRepo returns the stock ledger repository scoped to the current transaction
	StockMovementRepo() ledger.StockMovementRepository
	// CategoryRepo returns the inventory category repository scoped to the current transaction
	CategoryRepo() ledger.InventoryCategoryRepository
	// TransactionRepo returns the money ledger repository scoped to the current transaction
	TransactionRepo() ledger.TransactionRepository
	// AccountRepo returns the account repository scoped to the current transaction
	AccountRepo() ledger.AccountRepository
	// GoldLedgerRepo returns the gold ledger repository scoped to the current transaction
	GoldLedgerRepo() ledger.GoldLedgerRepository
	// JobCardRepo returns the job card repository scoped to the current transaction
	JobCardRepo() workshop.JobCardRepository
	// AuditRepo returns the audit trail repository scoped to the current transaction
	AuditRepo() audit.LogRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is
// not required.
type NoOpTransactionScope struct {
	invoiceRepo       trade.InvoiceRepository
	purchaseRepo      trade.PurchaseRepository
	stockMovementRepo ledger.StockMovementRepository
	categoryRepo      ledger.InventoryCategoryRepository
	transactionRepo   ledger.TransactionRepository
	accountRepo       ledger.AccountRepository
	goldLedgerRepo    ledger.GoldLedgerRepository
	jobCardRepo       workshop.JobCardRepository
	auditRepo         audit.LogRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	invoiceRepo trade.InvoiceRepository,
	purchaseRepo trade.PurchaseRepository,
	stockMovementRepo ledger.StockMovementRepository,
	categoryRepo ledger.InventoryCategoryRepository,
	transactionRepo ledger.TransactionRepository,
	accountRepo ledger.AccountRepository,
	goldLedgerRepo ledger.GoldLedgerRepository,
	jobCardRepo workshop.JobCardRepository,
	auditRepo audit.LogRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		invoiceRepo:       invoiceRepo,
		purchaseRepo:      purchaseRepo,
		stockMovementRepo: stockMovementRepo,
		categoryRepo:      categoryRepo,
		transactionRepo:   transactionRepo,
		accountRepo:       accountRepo,
		goldLedgerRepo:    goldLedgerRepo,
		jobCardRepo:       jobCardRepo,
		auditRepo:         auditRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InvoiceRepo returns the invoice repository.
func (s *NoOpTransactionScope) InvoiceRepo() trade.InvoiceRepository { return s.invoiceRepo }

// PurchaseRepo returns the purchase repository.
func (s *NoOpTransactionScope) PurchaseRepo() trade.PurchaseRepository { return s.purchaseRepo }

// StockMovementRepo returns the stock ledger repository.
func (s *NoOpTransactionScope) StockMovementRepo() ledger.StockMovementRepository {
	return s.stockMovementRepo
}

// CategoryRepo returns the inventory category repository.
func (s *NoOpTransactionScope) CategoryRepo() ledger.InventoryCategoryRepository {
	return s.categoryRepo
}

// TransactionRepo returns the money ledger repository.
func (s *NoOpTransactionScope) TransactionRepo() ledger.TransactionRepository {
	return s.transactionRepo
}

// AccountRepo returns the account repository.
func (s *NoOpTransactionScope) AccountRepo() ledger.AccountRepository { return s.accountRepo }

// GoldLedgerRepo returns the gold ledger repository.
func (s *NoOpTransactionScope) GoldLedgerRepo() ledger.GoldLedgerRepository {
	return s.goldLedgerRepo
}

// JobCardRepo returns the job card repository.
func (s *NoOpTransactionScope) JobCardRepo() workshop.JobCardRepository { return s.jobCardRepo }

// AuditRepo returns the audit trail repository.
func (s *NoOpTransactionScope) AuditRepo() audit.LogRepository { return s.auditRepo }

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
