package ledger

import (
	"time"

	"github.com/goldshop/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create a catalog category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// RenameCategoryRequest represents a request to rename a catalog category
type RenameCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateAccountRequest represents a request to create a money account
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required,min=1,max=100"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// LedgerListFilter represents filter options for ledger listings
type LedgerListFilter struct {
	Search    string     `form:"search"`
	Reference string     `form:"reference"`
	StartDate *time.Time `form:"start_date"`
	EndDate   *time.Time `form:"end_date"`
	Page      int        `form:"page" binding:"min=0"`
	PageSize  int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// StockMovementResponse represents an inventory ledger entry in API responses
type StockMovementResponse struct {
	ID           uuid.UUID       `json:"id"`
	MovementType string          `json:"movement_type"`
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name"`
	QtyDelta     decimal.Decimal `json:"qty_delta"`
	WeightDelta  decimal.Decimal `json:"weight_delta"`
	Purity       int             `json:"purity"`
	Reference    string          `json:"reference"`
	ReferenceID  uuid.UUID       `json:"reference_id"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToStockMovementResponse converts a stock movement to its response form
func ToStockMovementResponse(m *ledger.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:           m.ID,
		MovementType: string(m.MovementType),
		CategoryID:   m.CategoryID,
		CategoryName: m.CategoryName,
		QtyDelta:     m.QtyDelta,
		WeightDelta:  m.WeightDelta,
		Purity:       m.Purity,
		Reference:    string(m.Reference),
		ReferenceID:  m.ReferenceID,
		CreatedAt:    m.CreatedAt,
	}
}

// TransactionResponse represents a money ledger entry in API responses
type TransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	AccountID   *uuid.UUID      `json:"account_id,omitempty"`
	PartyID     *uuid.UUID      `json:"party_id,omitempty"`
	Category    string          `json:"category"`
	PaymentMode string          `json:"payment_mode,omitempty"`
	Reference   string          `json:"reference"`
	ReferenceID uuid.UUID       `json:"reference_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToTransactionResponse converts a transaction to its response form
func ToTransactionResponse(t *ledger.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Number:      t.Number,
		Type:        string(t.Type),
		Amount:      t.Amount,
		AccountID:   t.AccountID,
		PartyID:     t.PartyID,
		Category:    t.Category,
		PaymentMode: t.PaymentMode,
		Reference:   string(t.Reference),
		ReferenceID: t.ReferenceID,
		CreatedAt:   t.CreatedAt,
	}
}

// CategoryResponse represents a catalog category in API responses
type CategoryResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	CurrentQty    decimal.Decimal `json:"current_qty"`
	CurrentWeight decimal.Decimal `json:"current_weight"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToCategoryResponse converts a category to its response form
func ToCategoryResponse(c *ledger.InventoryCategory) CategoryResponse {
	return CategoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		CurrentQty:    c.CurrentQty,
		CurrentWeight: c.CurrentWeight,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// AccountResponse represents a money account in API responses
type AccountResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToAccountResponse converts an account to its response form
func ToAccountResponse(a *ledger.Account) AccountResponse {
	return AccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		OpeningBalance: a.OpeningBalance,
		CurrentBalance: a.CurrentBalance,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// GoldEntryResponse represents a gold ledger entry in API responses
type GoldEntryResponse struct {
	ID          uuid.UUID       `json:"id"`
	PartyID     uuid.UUID       `json:"party_id"`
	Type        string          `json:"type"`
	WeightGrams decimal.Decimal `json:"weight_grams"`
	Purity      int             `json:"purity"`
	Purpose     string          `json:"purpose"`
	Reference   string          `json:"reference"`
	ReferenceID uuid.UUID       `json:"reference_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToGoldEntryResponse converts a gold ledger entry to its response form
func ToGoldEntryResponse(e *ledger.GoldLedgerEntry) GoldEntryResponse {
	return GoldEntryResponse{
		ID:          e.ID,
		PartyID:     e.PartyID,
		Type:        string(e.Type),
		WeightGrams: e.WeightGrams,
		Purity:      e.Purity,
		Purpose:     string(e.Purpose),
		Reference:   string(e.Reference),
		ReferenceID: e.ReferenceID,
		CreatedAt:   e.CreatedAt,
	}
}
