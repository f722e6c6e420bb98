package trade

import (
	"fmt"
	"time"

	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/goldshop/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceItem represents a line item on a sales invoice.
// Weights are carried to 3 decimals, money values to 2.
type InvoiceItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description  string          `gorm:"type:varchar(200)"`
	CategoryName string          `gorm:"type:varchar(100)"` // free-text catalog reference, resolved at finalize time
	Quantity     decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	WeightGrams  decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	Purity       int             `gorm:"not null;default:0"`
	RatePerGram  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	MakingCharge decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LineTotal    decimal.Decimal `gorm:"type:decimal(18,2);not null"` // WeightGrams * RatePerGram + MakingCharge
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// NewInvoiceItem creates a new invoice line item
func NewInvoiceItem(invoiceID uuid.UUID, description, categoryName string, quantity, weightGrams decimal.Decimal, purity int, ratePerGram, makingCharge decimal.Decimal) (*InvoiceItem, error) {
	if description == "" && categoryName == "" {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item needs a description or a category")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if weightGrams.IsNegative() {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}
	if weightGrams.IsPositive() {
		if _, err := valueobject.NewPurity(purity); err != nil {
			return nil, shared.NewDomainError("INVALID_PURITY", err.Error())
		}
	}
	if ratePerGram.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate per gram cannot be negative")
	}
	if makingCharge.IsNegative() {
		return nil, shared.NewDomainError("INVALID_MAKING_CHARGE", "Making charge cannot be negative")
	}

	now := time.Now()
	item := &InvoiceItem{
		ID:           uuid.New(),
		InvoiceID:    invoiceID,
		Description:  description,
		CategoryName: categoryName,
		Quantity:     quantity,
		WeightGrams:  weightGrams.Round(3),
		Purity:       purity,
		RatePerGram:  ratePerGram,
		MakingCharge: makingCharge,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	item.recalculate()
	return item, nil
}

func (i *InvoiceItem) recalculate() {
	metalValue := i.WeightGrams.Mul(i.RatePerGram)
	i.LineTotal = metalValue.Add(i.MakingCharge).Round(2)
}

// Invoice is the sales invoice aggregate root. A draft invoice is fully
// mutable; finalizing it commits ledger entries and makes it immutable
// except for audited admin overrides.
type Invoice struct {
	shared.BaseAggregateRoot
	Number        string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	PartyID       *uuid.UUID      `gorm:"type:uuid;index"` // nil for walk-in customers
	PartyName     string          `gorm:"type:varchar(200);not null"` // saved-party snapshot, or the walk-in name
	JobCardID     *uuid.UUID      `gorm:"type:uuid"`
	Items         []InvoiceItem   `gorm:"foreignKey:InvoiceID;references:ID"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"` // percent, e.g. 5 for 5% VAT
	TaxAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	BalanceDue    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status        DocumentStatus  `gorm:"type:varchar(20);not null;default:'draft'"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null;default:'unpaid'"`
	Locked        bool            `gorm:"not null;default:false"`
	LockedAt      *time.Time
	LockedBy      *uuid.UUID `gorm:"type:uuid"`
	FinalizedAt   *time.Time `gorm:"index"`
	FinalizedBy   *uuid.UUID `gorm:"type:uuid"`
	DocumentDate  time.Time  `gorm:"not null;index"` // drives outstanding-report aging
	Remark        string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new draft invoice. partyID is nil for walk-in sales,
// in which case partyName carries the walk-in customer's name.
func NewInvoice(number string, partyID *uuid.UUID, partyName string) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if partyName == "" {
		return nil, shared.NewDomainError("INVALID_PARTY_NAME", "Customer name cannot be empty")
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		PartyID:           partyID,
		PartyName:         partyName,
		Items:             make([]InvoiceItem, 0),
		Subtotal:          decimal.Zero,
		TaxRate:           decimal.Zero,
		TaxAmount:         decimal.Zero,
		GrandTotal:        decimal.Zero,
		PaidAmount:        decimal.Zero,
		BalanceDue:        decimal.Zero,
		Status:            DocumentStatusDraft,
		PaymentStatus:     PaymentStatusUnpaid,
		DocumentDate:      time.Now(),
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// IsWalkIn returns true when the invoice has no saved counterparty
func (inv *Invoice) IsWalkIn() bool {
	return inv.PartyID == nil
}

// IsDraft returns true if the invoice has not been finalized
func (inv *Invoice) IsDraft() bool {
	return inv.Status == DocumentStatusDraft
}

// IsFinalized returns true once the invoice is committed to the ledgers
func (inv *Invoice) IsFinalized() bool {
	return inv.Status == DocumentStatusFinalized
}

// CanModify returns true if ordinary (non-override) edits are allowed
func (inv *Invoice) CanModify() bool {
	return inv.IsDraft() && !inv.Locked
}

// AddItem adds a line item. Only allowed while in draft status.
func (inv *Invoice) AddItem(description, categoryName string, quantity, weightGrams decimal.Decimal, purity int, ratePerGram, makingCharge decimal.Decimal) (*InvoiceItem, error) {
	if !inv.IsDraft() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a finalized invoice")
	}

	item, err := NewInvoiceItem(inv.ID, description, categoryName, quantity, weightGrams, purity, ratePerGram, makingCharge)
	if err != nil {
		return nil, err
	}

	inv.Items = append(inv.Items, *item)
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()

	return item, nil
}

// RemoveItem removes a line item. Only allowed while in draft status.
func (inv *Invoice) RemoveItem(itemID uuid.UUID) error {
	if !inv.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a finalized invoice")
	}

	for idx, item := range inv.Items {
		if item.ID == itemID {
			inv.Items = append(inv.Items[:idx], inv.Items[idx+1:]...)
			inv.recalculateTotals()
			inv.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Invoice item not found")
}

// SetTaxRate sets the VAT percentage and recalculates totals
func (inv *Invoice) SetTaxRate(rate decimal.Decimal) error {
	if !inv.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Cannot change tax on a finalized invoice")
	}
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}

	inv.TaxRate = rate
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()

	return nil
}

// LinkJobCard links the invoice to a workshop job card. The job card will be
// locked when the invoice is finalized.
func (inv *Invoice) LinkJobCard(jobCardID uuid.UUID) error {
	if !inv.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Cannot link a job card to a finalized invoice")
	}
	if jobCardID == uuid.Nil {
		return shared.NewDomainError("INVALID_JOBCARD", "Job card ID cannot be empty")
	}

	inv.JobCardID = &jobCardID
	inv.UpdatedAt = time.Now()

	return nil
}

// SetRemark sets the invoice remark
func (inv *Invoice) SetRemark(remark string) {
	inv.Remark = remark
	inv.UpdatedAt = time.Now()
}

// ApplyPayment records a settled amount against the invoice and moves the
// payment status. The amount must be positive and must not exceed the
// remaining balance.
func (inv *Invoice) ApplyPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(inv.BalanceDue) {
		return shared.NewDomainError("OVERPAYMENT",
			fmt.Sprintf("Payment of %s exceeds remaining balance of %s", amount.StringFixed(2), inv.BalanceDue.StringFixed(2)))
	}

	inv.PaidAmount = inv.PaidAmount.Add(amount).Round(2)
	inv.BalanceDue = inv.GrandTotal.Sub(inv.PaidAmount).Round(2)
	inv.refreshPaymentStatus()
	inv.UpdatedAt = time.Now()

	return nil
}

// Finalize commits the invoice: status flips to finalized and the document
// locks. Ledger writes are orchestrated by the application layer inside the
// same atomic unit.
func (inv *Invoice) Finalize(by uuid.UUID) error {
	if inv.IsFinalized() {
		return shared.ErrAlreadyFinalized
	}
	if len(inv.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot finalize an invoice without items")
	}
	if inv.GrandTotal.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Invoice grand total must be positive")
	}

	now := time.Now()
	inv.Status = DocumentStatusFinalized
	inv.FinalizedAt = &now
	inv.FinalizedBy = &by
	inv.Locked = true
	inv.LockedAt = &now
	inv.LockedBy = &by
	inv.UpdatedAt = now

	inv.AddDomainEvent(NewInvoiceFinalizedEvent(inv))

	return nil
}

// recalculateTotals recalculates subtotal, tax, grand total and balance
func (inv *Invoice) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range inv.Items {
		subtotal = subtotal.Add(item.LineTotal)
	}
	inv.Subtotal = subtotal.Round(2)
	inv.TaxAmount = inv.Subtotal.Mul(inv.TaxRate).Div(decimal.NewFromInt(100)).Round(2)
	inv.GrandTotal = inv.Subtotal.Add(inv.TaxAmount).Round(2)
	inv.BalanceDue = inv.GrandTotal.Sub(inv.PaidAmount).Round(2)
	inv.refreshPaymentStatus()
}

func (inv *Invoice) refreshPaymentStatus() {
	switch {
	case inv.PaidAmount.IsZero():
		inv.PaymentStatus = PaymentStatusUnpaid
	case inv.BalanceDue.IsPositive():
		inv.PaymentStatus = PaymentStatusPartial
	default:
		inv.PaymentStatus = PaymentStatusPaid
	}
}

// ItemCount returns the number of line items
func (inv *Invoice) ItemCount() int {
	return len(inv.Items)
}

// TotalWeight returns the summed item weight in grams
func (inv *Invoice) TotalWeight() decimal.Decimal {
	total := decimal.Zero
	for _, item := range inv.Items {
		total = total.Add(item.WeightGrams)
	}
	return total.Round(3)
}

// GetItem returns an item by its ID
func (inv *Invoice) GetItem(itemID uuid.UUID) *InvoiceItem {
	for idx := range inv.Items {
		if inv.Items[idx].ID == itemID {
			return &inv.Items[idx]
		}
	}
	return nil
}
