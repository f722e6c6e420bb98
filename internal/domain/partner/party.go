package partner

import (
	"time"

	"github.com/goldshop/backend/internal/domain/shared"
)

// PartyType classifies a counterparty of the shop
type PartyType string

const (
	PartyCustomer PartyType = "customer"
	PartyVendor   PartyType = "vendor"
	PartyWorker   PartyType = "worker"
)

// IsValid checks if the party type is known
func (t PartyType) IsValid() bool {
	switch t {
	case PartyCustomer, PartyVendor, PartyWorker:
		return true
	}
	return false
}

// Party is a saved counterparty. Balances (money and gold due from/to) are
// never stored on the party; they are projections computed from the ledgers
// and open documents on demand.
type Party struct {
	shared.BaseEntity
	Name      string    `gorm:"type:varchar(200);not null;index"`
	PartyType PartyType `gorm:"type:varchar(20);not null"`
	Phone     string    `gorm:"type:varchar(30)"`
	Active    bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Party) TableName() string {
	return "parties"
}

// NewParty creates a new saved party
func NewParty(name string, partyType PartyType, phone string) (*Party, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PARTY_NAME", "Party name cannot be empty")
	}
	if !partyType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PARTY_TYPE", "Party type must be customer, vendor or worker")
	}

	return &Party{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		PartyType:  partyType,
		Phone:      phone,
		Active:     true,
	}, nil
}

// Deactivate marks the party inactive without destroying ledger history
func (p *Party) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}
