package ledger

import (
	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the accounting direction of a money ledger entry
type TransactionType string

const (
	TransactionDebit  TransactionType = "debit"
	TransactionCredit TransactionType = "credit"
)

// IsValid checks if the transaction type is known
func (t TransactionType) IsValid() bool {
	return t == TransactionDebit || t == TransactionCredit
}

// Well-known transaction categories written by the finalization engine
const (
	CategorySalesInvoice    = "Sales Invoice"
	CategoryPurchasePayment = "Purchase Payment"
	CategoryVendorPayable   = "Vendor Payable"
	CategoryInvoicePayment  = "Invoice Payment"
)

// Transaction is an immutable entry in the money ledger. Number is the
// monotonic human-readable identifier, format TXN-YYYY-NNNN.
type Transaction struct {
	shared.BaseEntity
	Number      string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Type        TransactionType `gorm:"type:varchar(10);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"` // 2 decimals, always positive; Type carries direction
	AccountID   *uuid.UUID      `gorm:"type:uuid;index"`
	PartyID     *uuid.UUID      `gorm:"type:uuid;index"`
	Category    string          `gorm:"type:varchar(100)"`
	PaymentMode string          `gorm:"type:varchar(20)"` // empty for non-payment entries
	Reference   ReferenceType   `gorm:"type:varchar(20);not null;index:idx_transaction_ref"`
	ReferenceID uuid.UUID       `gorm:"type:uuid;not null;index:idx_transaction_ref"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

// NewTransaction creates a money ledger entry
func NewTransaction(number string, txType TransactionType, amount decimal.Decimal, accountID, partyID *uuid.UUID, category, paymentMode string, reference ReferenceType, referenceID uuid.UUID) (*Transaction, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Transaction number cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Transaction type must be debit or credit")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}
	if referenceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Transaction requires a causing document")
	}

	return &Transaction{
		BaseEntity:  shared.NewBaseEntity(),
		Number:      number,
		Type:        txType,
		Amount:      amount.Round(2),
		AccountID:   accountID,
		PartyID:     partyID,
		Category:    category,
		PaymentMode: paymentMode,
		Reference:   reference,
		ReferenceID: referenceID,
	}, nil
}

// SignedAmount returns the amount signed by direction: debits positive,
// credits negative, matching how account balances accumulate.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionCredit {
		return t.Amount.Neg()
	}
	return t.Amount
}
