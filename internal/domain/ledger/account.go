package ledger

import (
	"time"

	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Account is a money account (cash drawer, bank account). CurrentBalance is
// the materialized sum of opening balance plus all transactions against it,
// updated only in the same atomic unit as a transaction append.
type Account struct {
	shared.BaseEntity
	Name           string          `gorm:"type:varchar(100);not null"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// NewAccount creates an account with the given opening balance
func NewAccount(name string, openingBalance decimal.Decimal) (*Account, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}

	return &Account{
		BaseEntity:     shared.NewBaseEntity(),
		Name:           name,
		OpeningBalance: openingBalance.Round(2),
		CurrentBalance: openingBalance.Round(2),
	}, nil
}

// ApplyTransaction folds a transaction into the materialized balance.
// Must run in the same atomic unit as the transaction append.
func (a *Account) ApplyTransaction(t *Transaction) {
	a.CurrentBalance = a.CurrentBalance.Add(t.SignedAmount()).Round(2)
	a.UpdatedAt = time.Now()
}
