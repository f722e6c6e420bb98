package trade

import (
	"time"

	"github.com/goldshop/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Invoice DTOs ====================

// CreateInvoiceRequest represents a request to create a draft invoice
type CreateInvoiceRequest struct {
	PartyID   *uuid.UUID               `json:"party_id"`
	PartyName string                   `json:"party_name" binding:"required,min=1,max=200"`
	JobCardID *uuid.UUID               `json:"job_card_id"`
	TaxRate   *decimal.Decimal         `json:"tax_rate"`
	Items     []CreateInvoiceItemInput `json:"items"`
	Remark    string                   `json:"remark"`
}

// CreateInvoiceItemInput represents a line item in the create request
type CreateInvoiceItemInput struct {
	Description  string          `json:"description" binding:"max=200"`
	CategoryName string          `json:"category_name" binding:"max=100"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	WeightGrams  decimal.Decimal `json:"weight_grams"`
	Purity       int             `json:"purity" binding:"purity"`
	RatePerGram  decimal.Decimal `json:"rate_per_gram"`
	MakingCharge decimal.Decimal `json:"making_charge"`
}

// UpdateInvoiceRequest represents draft edits to an invoice. OverrideReason
// is only read when the edit targets a locked document and lands in the
// override audit entry.
type UpdateInvoiceRequest struct {
	PartyID        *uuid.UUID       `json:"party_id"`
	PartyName      *string          `json:"party_name"`
	JobCardID      *uuid.UUID       `json:"job_card_id"`
	TaxRate        *decimal.Decimal `json:"tax_rate"`
	Remark         *string          `json:"remark"`
	OverrideReason string           `json:"override_reason"`
}

// AddInvoiceItemRequest represents a request to add a line item to a draft
type AddInvoiceItemRequest struct {
	Description  string          `json:"description" binding:"max=200"`
	CategoryName string          `json:"category_name" binding:"max=100"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	WeightGrams  decimal.Decimal `json:"weight_grams"`
	Purity       int             `json:"purity" binding:"purity"`
	RatePerGram  decimal.Decimal `json:"rate_per_gram"`
	MakingCharge decimal.Decimal `json:"making_charge"`
}

// AddPaymentRequest represents a payment against a finalized invoice.
// GoldWeightGrams and GoldRatePerGram are only read for GOLD_EXCHANGE mode.
type AddPaymentRequest struct {
	Mode            string           `json:"mode" binding:"required"`
	Amount          decimal.Decimal  `json:"amount"`
	AccountID       *uuid.UUID       `json:"account_id"`
	GoldWeightGrams decimal.Decimal  `json:"gold_weight_grams"`
	GoldPurity      int              `json:"gold_purity" binding:"purity"`
	GoldRatePerGram *decimal.Decimal `json:"gold_rate_per_gram"`
}

// InvoiceListFilter represents filter options for the invoice list
type InvoiceListFilter struct {
	Search        string     `form:"search"`
	PartyID       *uuid.UUID `form:"party_id"`
	Status        string     `form:"status"`
	PaymentStatus string     `form:"payment_status"`
	StartDate     *time.Time `form:"start_date"`
	EndDate       *time.Time `form:"end_date"`
	Page          int        `form:"page" binding:"min=0"`
	PageSize      int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// InvoiceItemResponse represents a line item in API responses
type InvoiceItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	Description  string          `json:"description"`
	CategoryName string          `json:"category_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	WeightGrams  decimal.Decimal `json:"weight_grams"`
	Purity       int             `json:"purity"`
	RatePerGram  decimal.Decimal `json:"rate_per_gram"`
	MakingCharge decimal.Decimal `json:"making_charge"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	Number        string                `json:"number"`
	PartyID       *uuid.UUID            `json:"party_id,omitempty"`
	PartyName     string                `json:"party_name"`
	JobCardID     *uuid.UUID            `json:"job_card_id,omitempty"`
	Items         []InvoiceItemResponse `json:"items"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TaxRate       decimal.Decimal       `json:"tax_rate"`
	TaxAmount     decimal.Decimal       `json:"tax_amount"`
	GrandTotal    decimal.Decimal       `json:"grand_total"`
	PaidAmount    decimal.Decimal       `json:"paid_amount"`
	BalanceDue    decimal.Decimal       `json:"balance_due"`
	TotalWeight   decimal.Decimal       `json:"total_weight"`
	Status        string                `json:"status"`
	PaymentStatus string                `json:"payment_status"`
	Locked        bool                  `json:"locked"`
	LockedAt      *time.Time            `json:"locked_at,omitempty"`
	FinalizedAt   *time.Time            `json:"finalized_at,omitempty"`
	FinalizedBy   *uuid.UUID            `json:"finalized_by,omitempty"`
	DocumentDate  time.Time             `json:"document_date"`
	Remark        string                `json:"remark"`
	Warning       string                `json:"warning,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// ToInvoiceResponse converts an invoice aggregate to its response form
func ToInvoiceResponse(inv *trade.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, InvoiceItemResponse{
			ID:           item.ID,
			Description:  item.Description,
			CategoryName: item.CategoryName,
			Quantity:     item.Quantity,
			WeightGrams:  item.WeightGrams,
			Purity:       item.Purity,
			RatePerGram:  item.RatePerGram,
			MakingCharge: item.MakingCharge,
			LineTotal:    item.LineTotal,
		})
	}

	return InvoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		PartyID:       inv.PartyID,
		PartyName:     inv.PartyName,
		JobCardID:     inv.JobCardID,
		Items:         items,
		Subtotal:      inv.Subtotal,
		TaxRate:       inv.TaxRate,
		TaxAmount:     inv.TaxAmount,
		GrandTotal:    inv.GrandTotal,
		PaidAmount:    inv.PaidAmount,
		BalanceDue:    inv.BalanceDue,
		TotalWeight:   inv.TotalWeight(),
		Status:        string(inv.Status),
		PaymentStatus: string(inv.PaymentStatus),
		Locked:        inv.Locked,
		LockedAt:      inv.LockedAt,
		FinalizedAt:   inv.FinalizedAt,
		FinalizedBy:   inv.FinalizedBy,
		DocumentDate:  inv.DocumentDate,
		Remark:        inv.Remark,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// ==================== Purchase DTOs ====================

// CreatePurchaseRequest represents a request to create a draft purchase
type CreatePurchaseRequest struct {
	VendorID   uuid.UUID                 `json:"vendor_id" binding:"required"`
	VendorName string                    `json:"vendor_name" binding:"required,min=1,max=200"`
	Items      []CreatePurchaseItemInput `json:"items"`
	Remark     string                    `json:"remark"`
}

// CreatePurchaseItemInput represents a line item in the create request
type CreatePurchaseItemInput struct {
	Description   string          `json:"description" binding:"max=200"`
	CategoryName  string          `json:"category_name" binding:"max=100"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	WeightGrams   decimal.Decimal `json:"weight_grams" binding:"required"`
	EnteredPurity int             `json:"entered_purity" binding:"required,purity"`
	RatePerGram   decimal.Decimal `json:"rate_per_gram"`
}

// UpdatePurchaseRequest represents draft edits to a purchase. OverrideReason
// feeds the override audit entry when the target is locked.
type UpdatePurchaseRequest struct {
	VendorName     *string `json:"vendor_name"`
	Remark         *string `json:"remark"`
	OverrideReason string  `json:"override_reason"`
}

// AddPurchaseItemRequest represents a request to add a line item to a draft
type AddPurchaseItemRequest struct {
	Description   string          `json:"description" binding:"max=200"`
	CategoryName  string          `json:"category_name" binding:"max=100"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	WeightGrams   decimal.Decimal `json:"weight_grams" binding:"required"`
	EnteredPurity int             `json:"entered_purity" binding:"required,purity"`
	RatePerGram   decimal.Decimal `json:"rate_per_gram"`
}

// SetPurchasePaymentRequest sets the up-front money payment on a draft
type SetPurchasePaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	AccountID *uuid.UUID      `json:"account_id"`
}

// SetPurchaseGoldRequest sets advance or exchange gold terms on a draft
type SetPurchaseGoldRequest struct {
	WeightGrams decimal.Decimal `json:"weight_grams"`
	Purity      int             `json:"purity" binding:"purity"`
}

// SettlePurchaseRequest applies a later payment against an open payable
type SettlePurchaseRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	AccountID uuid.UUID       `json:"account_id" binding:"required"`
}

// PurchaseListFilter represents filter options for the purchase list
type PurchaseListFilter struct {
	Search        string     `form:"search"`
	VendorID      *uuid.UUID `form:"vendor_id"`
	Status        string     `form:"status"`
	PaymentStatus string     `form:"payment_status"`
	StartDate     *time.Time `form:"start_date"`
	EndDate       *time.Time `form:"end_date"`
	Page          int        `form:"page" binding:"min=0"`
	PageSize      int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PurchaseItemResponse represents a line item in API responses
type PurchaseItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	Description   string          `json:"description"`
	CategoryName  string          `json:"category_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	WeightGrams   decimal.Decimal `json:"weight_grams"`
	EnteredPurity int             `json:"entered_purity"`
	RatePerGram   decimal.Decimal `json:"rate_per_gram"`
	LineValue     decimal.Decimal `json:"line_value"`
}

// PurchaseResponse represents a purchase in API responses
type PurchaseResponse struct {
	ID                 uuid.UUID              `json:"id"`
	Number             string                 `json:"number"`
	VendorID           uuid.UUID              `json:"vendor_id"`
	VendorName         string                 `json:"vendor_name"`
	Items              []PurchaseItemResponse `json:"items"`
	Subtotal           decimal.Decimal        `json:"subtotal"`
	GrandTotal         decimal.Decimal        `json:"grand_total"`
	PaidAmount         decimal.Decimal        `json:"paid_amount"`
	BalanceDue         decimal.Decimal        `json:"balance_due"`
	PayingAccountID    *uuid.UUID             `json:"paying_account_id,omitempty"`
	AdvanceGoldGrams   decimal.Decimal        `json:"advance_gold_grams"`
	AdvanceGoldPurity  int                    `json:"advance_gold_purity"`
	ExchangeGoldGrams  decimal.Decimal        `json:"exchange_gold_grams"`
	ExchangeGoldPurity int                    `json:"exchange_gold_purity"`
	TotalWeight        decimal.Decimal        `json:"total_weight"`
	Status             string                 `json:"status"`
	PaymentStatus      string                 `json:"payment_status"`
	Locked             bool                   `json:"locked"`
	LockedAt           *time.Time             `json:"locked_at,omitempty"`
	FinalizedAt        *time.Time             `json:"finalized_at,omitempty"`
	FinalizedBy        *uuid.UUID             `json:"finalized_by,omitempty"`
	DocumentDate       time.Time              `json:"document_date"`
	Remark             string                 `json:"remark"`
	Warning            string                 `json:"warning,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// ToPurchaseResponse converts a purchase aggregate to its response form
func ToPurchaseResponse(p *trade.Purchase) PurchaseResponse {
	items := make([]PurchaseItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, PurchaseItemResponse{
			ID:            item.ID,
			Description:   item.Description,
			CategoryName:  item.CategoryName,
			Quantity:      item.Quantity,
			WeightGrams:   item.WeightGrams,
			EnteredPurity: item.EnteredPurity,
			RatePerGram:   item.RatePerGram,
			LineValue:     item.LineValue,
		})
	}

	return PurchaseResponse{
		ID:                 p.ID,
		Number:             p.Number,
		VendorID:           p.VendorID,
		VendorName:         p.VendorName,
		Items:              items,
		Subtotal:           p.Subtotal,
		GrandTotal:         p.GrandTotal,
		PaidAmount:         p.PaidAmount,
		BalanceDue:         p.BalanceDue,
		PayingAccountID:    p.PayingAccountID,
		AdvanceGoldGrams:   p.AdvanceGoldGrams,
		AdvanceGoldPurity:  p.AdvanceGoldPurity,
		ExchangeGoldGrams:  p.ExchangeGoldGrams,
		ExchangeGoldPurity: p.ExchangeGoldPurity,
		TotalWeight:        p.TotalWeight(),
		Status:             string(p.Status),
		PaymentStatus:      string(p.PaymentStatus),
		Locked:             p.Locked,
		LockedAt:           p.LockedAt,
		FinalizedAt:        p.FinalizedAt,
		FinalizedBy:        p.FinalizedBy,
		DocumentDate:       p.DocumentDate,
		Remark:             p.Remark,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
