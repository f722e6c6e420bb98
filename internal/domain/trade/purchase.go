package trade

import (
	"time"

	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/goldshop/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseItem represents a line item on a vendor purchase. The vendor's
// claimed purity is recorded as EnteredPurity but stock valuation always uses
// the shop's fixed valuation purity at finalize time.
type PurchaseItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description   string          `gorm:"type:varchar(200)"`
	CategoryName  string          `gorm:"type:varchar(100)"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	WeightGrams   decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	EnteredPurity int             `gorm:"not null"`
	RatePerGram   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LineValue     decimal.Decimal `gorm:"type:decimal(18,2);not null"` // WeightGrams * RatePerGram
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// NewPurchaseItem creates a new purchase line item
func NewPurchaseItem(purchaseID uuid.UUID, description, categoryName string, quantity, weightGrams decimal.Decimal, enteredPurity int, ratePerGram decimal.Decimal) (*PurchaseItem, error) {
	if description == "" && categoryName == "" {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item needs a description or a category")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if weightGrams.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Weight must be positive")
	}
	if _, err := valueobject.NewPurity(enteredPurity); err != nil {
		return nil, shared.NewDomainError("INVALID_PURITY", err.Error())
	}
	if ratePerGram.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate per gram cannot be negative")
	}

	now := time.Now()
	item := &PurchaseItem{
		ID:            uuid.New(),
		PurchaseID:    purchaseID,
		Description:   description,
		CategoryName:  categoryName,
		Quantity:      quantity,
		WeightGrams:   weightGrams.Round(3),
		EnteredPurity: enteredPurity,
		RatePerGram:   ratePerGram,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	item.LineValue = item.WeightGrams.Mul(item.RatePerGram).Round(2)
	return item, nil
}

// Purchase is the vendor purchase aggregate root. Unlike an invoice, a
// finalized purchase locks only once its money balance reaches zero; it may
// remain partially paid and unlocked indefinitely.
type Purchase struct {
	shared.BaseAggregateRoot
	Number             string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	VendorID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	VendorName         string          `gorm:"type:varchar(200);not null"`
	Items              []PurchaseItem  `gorm:"foreignKey:PurchaseID;references:ID"`
	Subtotal           decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	GrandTotal         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaidAmount         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	BalanceDue         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PayingAccountID    *uuid.UUID      `gorm:"type:uuid"` // account debited for PaidAmount at finalize
	AdvanceGoldGrams   decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`
	AdvanceGoldPurity  int             `gorm:"not null;default:0"`
	ExchangeGoldGrams  decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`
	ExchangeGoldPurity int             `gorm:"not null;default:0"`
	Status             DocumentStatus  `gorm:"type:varchar(20);not null;default:'draft'"`
	PaymentStatus      PaymentStatus   `gorm:"type:varchar(20);not null;default:'unpaid'"`
	Locked             bool            `gorm:"not null;default:false"`
	LockedAt           *time.Time
	LockedBy           *uuid.UUID `gorm:"type:uuid"`
	FinalizedAt        *time.Time `gorm:"index"`
	FinalizedBy        *uuid.UUID `gorm:"type:uuid"`
	DocumentDate       time.Time  `gorm:"not null;index"`
	Remark             string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a new draft purchase for a saved vendor
func NewPurchase(number string, vendorID uuid.UUID, vendorName string) (*Purchase, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Purchase number cannot be empty")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if vendorName == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR_NAME", "Vendor name cannot be empty")
	}

	p := &Purchase{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		VendorID:          vendorID,
		VendorName:        vendorName,
		Items:             make([]PurchaseItem, 0),
		Subtotal:          decimal.Zero,
		GrandTotal:        decimal.Zero,
		PaidAmount:        decimal.Zero,
		BalanceDue:        decimal.Zero,
		AdvanceGoldGrams:  decimal.Zero,
		ExchangeGoldGrams: decimal.Zero,
		Status:            DocumentStatusDraft,
		PaymentStatus:     PaymentStatusUnpaid,
		DocumentDate:      time.Now(),
	}

	p.AddDomainEvent(NewPurchaseCreatedEvent(p))

	return p, nil
}

// IsDraft returns true if the purchase has not been finalized
func (p *Purchase) IsDraft() bool {
	return p.Status == DocumentStatusDraft
}

// IsFinalized returns true once the purchase is committed to the ledgers
func (p *Purchase) IsFinalized() bool {
	return p.Status == DocumentStatusFinalized
}

// CanModify returns true if ordinary (non-override) edits are allowed
func (p *Purchase) CanModify() bool {
	return p.IsDraft() && !p.Locked
}

// AddItem adds a line item. Only allowed while in draft status.
func (p *Purchase) AddItem(description, categoryName string, quantity, weightGrams decimal.Decimal, enteredPurity int, ratePerGram decimal.Decimal) (*PurchaseItem, error) {
	if !p.IsDraft() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a finalized purchase")
	}

	item, err := NewPurchaseItem(p.ID, description, categoryName, quantity, weightGrams, enteredPurity, ratePerGram)
	if err != nil {
		return nil, err
	}

	p.Items = append(p.Items, *item)
	p.recalculateTotals()
	p.UpdatedAt = time.Now()

	return item, nil
}

// RemoveItem removes a line item. Only allowed while in draft status.
func (p *Purchase) RemoveItem(itemID uuid.UUID) error {
	if !p.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a finalized purchase")
	}

	for idx, item := range p.Items {
		if item.ID == itemID {
			p.Items = append(p.Items[:idx], p.Items[idx+1:]...)
			p.recalculateTotals()
			p.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Purchase item not found")
}

// SetPayment records how much money is paid up front and from which account.
// The remainder becomes a payable to the vendor at finalize time.
func (p *Purchase) SetPayment(amount decimal.Decimal, accountID *uuid.UUID) error {
	if !p.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Cannot change payment on a finalized purchase")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Paid amount cannot be negative")
	}
	if amount.GreaterThan(p.GrandTotal) {
		return shared.NewDomainError("OVERPAYMENT", "Paid amount cannot exceed grand total")
	}
	if amount.IsPositive() && accountID == nil {
		return shared.NewDomainError("MISSING_ACCOUNT", "A paying account is required for a money payment")
	}

	p.PaidAmount = amount.Round(2)
	p.PayingAccountID = accountID
	p.recalculateTotals()
	p.UpdatedAt = time.Now()

	return nil
}

// SetAdvanceGold records gold handed to the vendor as an advance (ledger OUT)
func (p *Purchase) SetAdvanceGold(weightGrams decimal.Decimal, purity int) error {
	if !p.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Cannot change gold terms on a finalized purchase")
	}
	if weightGrams.IsNegative() {
		return shared.NewDomainError("INVALID_WEIGHT", "Advance gold weight cannot be negative")
	}
	if weightGrams.IsPositive() {
		if _, err := valueobject.NewPurity(purity); err != nil {
			return shared.NewDomainError("INVALID_PURITY", err.Error())
		}
	}

	p.AdvanceGoldGrams = weightGrams.Round(3)
	p.AdvanceGoldPurity = purity
	p.UpdatedAt = time.Now()

	return nil
}

// SetExchangeGold records gold received from the vendor (ledger IN)
func (p *Purchase) SetExchangeGold(weightGrams decimal.Decimal, purity int) error {
	if !p.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Cannot change gold terms on a finalized purchase")
	}
	if weightGrams.IsNegative() {
		return shared.NewDomainError("INVALID_WEIGHT", "Exchange gold weight cannot be negative")
	}
	if weightGrams.IsPositive() {
		if _, err := valueobject.NewPurity(purity); err != nil {
			return shared.NewDomainError("INVALID_PURITY", err.Error())
		}
	}

	p.ExchangeGoldGrams = weightGrams.Round(3)
	p.ExchangeGoldPurity = purity
	p.UpdatedAt = time.Now()

	return nil
}

// SetRemark sets the purchase remark
func (p *Purchase) SetRemark(remark string) {
	p.Remark = remark
	p.UpdatedAt = time.Now()
}

// Finalize commits the purchase. The document locks only when nothing remains
// payable; a partially paid purchase stays unlocked until settled.
func (p *Purchase) Finalize(by uuid.UUID) error {
	if p.IsFinalized() {
		return shared.ErrAlreadyFinalized
	}
	if len(p.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot finalize a purchase without items")
	}

	now := time.Now()
	p.Status = DocumentStatusFinalized
	p.FinalizedAt = &now
	p.FinalizedBy = &by
	p.UpdatedAt = now

	if p.BalanceDue.IsZero() {
		p.Locked = true
		p.LockedAt = &now
		p.LockedBy = &by
	}

	p.AddDomainEvent(NewPurchaseFinalizedEvent(p))

	return nil
}

// SettleBalance applies a later payment against an open payable and locks the
// purchase once the balance reaches zero.
func (p *Purchase) SettleBalance(amount decimal.Decimal, by uuid.UUID) error {
	if !p.IsFinalized() {
		return shared.NewDomainError("INVALID_STATE", "Only finalized purchases carry a settleable payable")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Settlement amount must be positive")
	}
	if amount.GreaterThan(p.BalanceDue) {
		return shared.NewDomainError("OVERPAYMENT", "Settlement exceeds remaining payable")
	}

	p.PaidAmount = p.PaidAmount.Add(amount).Round(2)
	p.BalanceDue = p.GrandTotal.Sub(p.PaidAmount).Round(2)
	p.refreshPaymentStatus()

	if p.BalanceDue.IsZero() {
		now := time.Now()
		p.Locked = true
		p.LockedAt = &now
		p.LockedBy = &by
	}
	p.UpdatedAt = time.Now()

	return nil
}

// recalculateTotals recalculates subtotal, grand total and balance
func (p *Purchase) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range p.Items {
		subtotal = subtotal.Add(item.LineValue)
	}
	p.Subtotal = subtotal.Round(2)
	p.GrandTotal = p.Subtotal
	p.BalanceDue = p.GrandTotal.Sub(p.PaidAmount).Round(2)
	p.refreshPaymentStatus()
}

func (p *Purchase) refreshPaymentStatus() {
	switch {
	case p.PaidAmount.IsZero() && p.BalanceDue.IsPositive():
		p.PaymentStatus = PaymentStatusUnpaid
	case p.BalanceDue.IsPositive():
		p.PaymentStatus = PaymentStatusPartial
	default:
		p.PaymentStatus = PaymentStatusPaid
	}
}

// TotalWeight returns the summed item weight in grams
func (p *Purchase) TotalWeight() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.WeightGrams)
	}
	return total.Round(3)
}
