package trade

import (
	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types for the invoice aggregate
const (
	EventTypeInvoiceCreated   = "invoice.created"
	EventTypeInvoiceFinalized = "invoice.finalized"
	AggregateTypeInvoice      = "Invoice"
)

// InvoiceCreatedEvent is raised when a draft invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	Number    string     `json:"number"`
	PartyID   *uuid.UUID `json:"party_id,omitempty"`
	PartyName string     `json:"party_name"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, inv.ID),
		Number:          inv.Number,
		PartyID:         inv.PartyID,
		PartyName:       inv.PartyName,
	}
}

// InvoiceFinalizedEvent is raised when an invoice is committed to the ledgers
type InvoiceFinalizedEvent struct {
	shared.BaseDomainEvent
	Number     string     `json:"number"`
	PartyID    *uuid.UUID `json:"party_id,omitempty"`
	GrandTotal string     `json:"grand_total"`
	JobCardID  *uuid.UUID `json:"job_card_id,omitempty"`
}

// NewInvoiceFinalizedEvent creates a new InvoiceFinalizedEvent
func NewInvoiceFinalizedEvent(inv *Invoice) *InvoiceFinalizedEvent {
	return &InvoiceFinalizedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceFinalized, AggregateTypeInvoice, inv.ID),
		Number:          inv.Number,
		PartyID:         inv.PartyID,
		GrandTotal:      inv.GrandTotal.StringFixed(2),
		JobCardID:       inv.JobCardID,
	}
}
