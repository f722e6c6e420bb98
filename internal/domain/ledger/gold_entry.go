package ledger

import (
	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/goldshop/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoldEntryType is the direction of a gold ledger entry relative to the shop:
// IN is gold received from the party, OUT is gold handed to the party.
type GoldEntryType string

const (
	GoldIn  GoldEntryType = "IN"
	GoldOut GoldEntryType = "OUT"
)

// IsValid checks if the entry type is known
func (t GoldEntryType) IsValid() bool {
	return t == GoldIn || t == GoldOut
}

// GoldPurpose classifies why gold changed hands
type GoldPurpose string

const (
	PurposeAdvanceGold GoldPurpose = "advance_gold"
	PurposeExchange    GoldPurpose = "exchange"
	PurposeJobWork     GoldPurpose = "job_work"
)

// IsValid checks if the purpose is known
func (p GoldPurpose) IsValid() bool {
	switch p {
	case PurposeAdvanceGold, PurposeExchange, PurposeJobWork:
		return true
	}
	return false
}

// GoldLedgerEntry is an immutable weight-based entry in a party's gold ledger
type GoldLedgerEntry struct {
	shared.BaseEntity
	PartyID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        GoldEntryType   `gorm:"type:varchar(10);not null"`
	WeightGrams decimal.Decimal `gorm:"type:decimal(18,3);not null"` // 3 decimals, always positive; Type carries direction
	Purity      int             `gorm:"not null"`
	Purpose     GoldPurpose     `gorm:"type:varchar(20);not null"`
	Reference   ReferenceType   `gorm:"type:varchar(20);not null;index:idx_gold_entry_ref"`
	ReferenceID uuid.UUID       `gorm:"type:uuid;not null;index:idx_gold_entry_ref"`
}

// TableName returns the table name for GORM
func (GoldLedgerEntry) TableName() string {
	return "gold_ledger_entries"
}

// NewGoldLedgerEntry creates a gold ledger entry for a party
func NewGoldLedgerEntry(partyID uuid.UUID, entryType GoldEntryType, weightGrams decimal.Decimal, purity int, purpose GoldPurpose, reference ReferenceType, referenceID uuid.UUID) (*GoldLedgerEntry, error) {
	if partyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTY", "Gold ledger entry requires a party")
	}
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTRY_TYPE", "Gold entry type must be IN or OUT")
	}
	if weightGrams.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Gold entry weight must be positive")
	}
	if _, err := valueobject.NewPurity(purity); err != nil {
		return nil, shared.NewDomainError("INVALID_PURITY", err.Error())
	}
	if !purpose.IsValid() {
		return nil, shared.NewDomainError("INVALID_PURPOSE", "Unknown gold ledger purpose")
	}
	if referenceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Gold ledger entry requires a causing document")
	}

	return &GoldLedgerEntry{
		BaseEntity:  shared.NewBaseEntity(),
		PartyID:     partyID,
		Type:        entryType,
		WeightGrams: weightGrams.Round(3),
		Purity:      purity,
		Purpose:     purpose,
		Reference:   reference,
		ReferenceID: referenceID,
	}, nil
}
