package trade

import (
	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types for the purchase aggregate
const (
	EventTypePurchaseCreated   = "purchase.created"
	EventTypePurchaseFinalized = "purchase.finalized"
	AggregateTypePurchase      = "Purchase"
)

// PurchaseCreatedEvent is raised when a draft purchase is created
type PurchaseCreatedEvent struct {
	shared.BaseDomainEvent
	Number   string    `json:"number"`
	VendorID uuid.UUID `json:"vendor_id"`
}

// NewPurchaseCreatedEvent creates a new PurchaseCreatedEvent
func NewPurchaseCreatedEvent(p *Purchase) *PurchaseCreatedEvent {
	return &PurchaseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseCreated, AggregateTypePurchase, p.ID),
		Number:          p.Number,
		VendorID:        p.VendorID,
	}
}

// PurchaseFinalizedEvent is raised when a purchase is committed to the ledgers
type PurchaseFinalizedEvent struct {
	shared.BaseDomainEvent
	Number     string    `json:"number"`
	VendorID   uuid.UUID `json:"vendor_id"`
	GrandTotal string    `json:"grand_total"`
	BalanceDue string    `json:"balance_due"`
	Locked     bool      `json:"locked"`
}

// NewPurchaseFinalizedEvent creates a new PurchaseFinalizedEvent
func NewPurchaseFinalizedEvent(p *Purchase) *PurchaseFinalizedEvent {
	return &PurchaseFinalizedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseFinalized, AggregateTypePurchase, p.ID),
		Number:          p.Number,
		VendorID:        p.VendorID,
		GrandTotal:      p.GrandTotal.StringFixed(2),
		BalanceDue:      p.BalanceDue.StringFixed(2),
		Locked:          p.Locked,
	}
}
