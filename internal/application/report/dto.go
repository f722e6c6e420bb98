package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AgingBuckets splits an outstanding balance by document age in days.
// Current covers 0 to 7 days, Overdue covers 8 to 30, Critical is 31 and up.
type AgingBuckets struct {
	Current  decimal.Decimal `json:"current"`
	Overdue  decimal.Decimal `json:"overdue"`
	Critical decimal.Decimal `json:"critical"`
}

// OutstandingDocument is one open document contributing to a party's balance
type OutstandingDocument struct {
	ID           uuid.UUID       `json:"id"`
	Number       string          `json:"number"`
	DocumentDate time.Time       `json:"document_date"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	BalanceDue   decimal.Decimal `json:"balance_due"`
	AgeDays      int             `json:"age_days"`
}

// OutstandingRow aggregates one party's open balance with its aging split
type OutstandingRow struct {
	PartyID   uuid.UUID             `json:"party_id"`
	PartyName string                `json:"party_name"`
	Total     decimal.Decimal       `json:"total"`
	Aging     AgingBuckets          `json:"aging"`
	Documents []OutstandingDocument `json:"documents"`
}

// OutstandingResponse is the full outstanding balances report
type OutstandingResponse struct {
	Receivables     []OutstandingRow `json:"receivables"`
	Payables        []OutstandingRow `json:"payables"`
	ReceivableTotal decimal.Decimal  `json:"receivable_total"`
	PayableTotal    decimal.Decimal  `json:"payable_total"`
	ReceivableAging AgingBuckets     `json:"receivable_aging"`
	PayableAging    AgingBuckets     `json:"payable_aging"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// PartySummaryResponse is the balance summary for one party
type PartySummaryResponse struct {
	PartyID          uuid.UUID       `json:"party_id"`
	PartyName        string          `json:"party_name"`
	PartyType        string          `json:"party_type"`
	ReceivableTotal  decimal.Decimal `json:"receivable_total"`
	PayableTotal     decimal.Decimal `json:"payable_total"`
	OpenInvoices     int             `json:"open_invoices"`
	OpenPurchases    int             `json:"open_purchases"`
	GoldInGrams      decimal.Decimal `json:"gold_in_grams"`
	GoldOutGrams     decimal.Decimal `json:"gold_out_grams"`
	GoldBalanceGrams decimal.Decimal `json:"gold_balance_grams"`
	ReceivableAging  AgingBuckets    `json:"receivable_aging"`
}
