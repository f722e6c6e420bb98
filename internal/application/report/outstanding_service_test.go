package report

import (
	"context"
	"testing"
	"time"

	"github.com/goldshop/backend/internal/domain/ledger"
	"github.com/goldshop/backend/internal/domain/partner"
	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/goldshop/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Read-only fakes feeding the projection. Only the open-document and gold
// lookups matter here; the write paths are never called.

type fakeInvoiceRepo struct {
	open []trade.Invoice
}

func (r *fakeInvoiceRepo) FindByID(context.Context, uuid.UUID) (*trade.Invoice, error) {
	return nil, shared.ErrNotFound
}
func (r *fakeInvoiceRepo) FindByNumber(context.Context, string) (*trade.Invoice, error) {
	return nil, shared.ErrNotFound
}
func (r *fakeInvoiceRepo) FindAll(context.Context, shared.Filter) ([]trade.Invoice, error) {
	return nil, nil
}
func (r *fakeInvoiceRepo) Count(context.Context, shared.Filter) (int64, error) { return 0, nil }
func (r *fakeInvoiceRepo) FindOpenByParty(_ context.Context, partyID uuid.UUID) ([]trade.Invoice, error) {
	result := make([]trade.Invoice, 0)
	for _, inv := range r.open {
		if inv.PartyID != nil && *inv.PartyID == partyID {
			result = append(result, inv)
		}
	}
	return result, nil
}
func (r *fakeInvoiceRepo) FindAllOpen(context.Context) ([]trade.Invoice, error) { return r.open, nil }
func (r *fakeInvoiceRepo) Save(context.Context, *trade.Invoice) error           { return nil }
func (r *fakeInvoiceRepo) SaveWithLock(context.Context, *trade.Invoice) error   { return nil }
func (r *fakeInvoiceRepo) Delete(context.Context, uuid.UUID) error              { return nil }
func (r *fakeInvoiceRepo) GenerateNumber(context.Context) (string, error)       { return "", nil }

type fakePurchaseRepo struct {
	open []trade.Purchase
}

func (r *fakePurchaseRepo) FindByID(context.Context, uuid.UUID) (*trade.Purchase, error) {
	return nil, shared.ErrNotFound
}
func (r *fakePurchaseRepo) FindByNumber(context.Context, string) (*trade.Purchase, error) {
	return nil, shared.ErrNotFound
}
func (r *fakePurchaseRepo) FindAll(context.Context, shared.Filter) ([]trade.Purchase, error) {
	return nil, nil
}
func (r *fakePurchaseRepo) Count(context.Context, shared.Filter) (int64, error) { return 0, nil }
func (r *fakePurchaseRepo) FindOpenByVendor(_ context.Context, vendorID uuid.UUID) ([]trade.Purchase, error) {
	result := make([]trade.Purchase, 0)
	for _, p := range r.open {
		if p.VendorID == vendorID {
			result = append(result, p)
		}
	}
	return result, nil
}
func (r *fakePurchaseRepo) FindAllOpen(context.Context) ([]trade.Purchase, error) { return r.open, nil }
func (r *fakePurchaseRepo) Save(context.Context, *trade.Purchase) error           { return nil }
func (r *fakePurchaseRepo) SaveWithLock(context.Context, *trade.Purchase) error   { return nil }
func (r *fakePurchaseRepo) Delete(context.Context, uuid.UUID) error               { return nil }
func (r *fakePurchaseRepo) GenerateNumber(context.Context) (string, error)        { return "", nil }

type goldTotals struct {
	in  decimal.Decimal
	out decimal.Decimal
}

type fakeGoldRepo struct {
	totals map[uuid.UUID]goldTotals
}

func (r *fakeGoldRepo) Append(context.Context, *ledger.GoldLedgerEntry) error { return nil }
func (r *fakeGoldRepo) FindByParty(context.Context, uuid.UUID, shared.Filter) ([]ledger.GoldLedgerEntry, error) {
	return nil, nil
}
func (r *fakeGoldRepo) CountByParty(context.Context, uuid.UUID, shared.Filter) (int64, error) {
	return 0, nil
}
func (r *fakeGoldRepo) SumByParty(_ context.Context, partyID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	if t, ok := r.totals[partyID]; ok {
		return t.in, t.out, nil
	}
	return decimal.Zero, decimal.Zero, nil
}

type fakePartyRepo struct {
	byID map[uuid.UUID]*partner.Party
}

func (r *fakePartyRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Party, error) {
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}
func (r *fakePartyRepo) FindAll(context.Context, shared.Filter) ([]partner.Party, error) {
	return nil, nil
}
func (r *fakePartyRepo) Count(context.Context, shared.Filter) (int64, error) { return 0, nil }
func (r *fakePartyRepo) Save(context.Context, *partner.Party) error          { return nil }

var reportNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

// openInvoice builds a finalized invoice with the given open balance, dated
// daysOld days before the report clock
func openInvoice(t *testing.T, partyID *uuid.UUID, partyName string, amount int64, daysOld int) trade.Invoice {
	t.Helper()
	inv, err := trade.NewInvoice("INV-2026-"+uuid.NewString()[:4], partyID, partyName)
	require.NoError(t, err)
	_, err = inv.AddItem("Gold item", "Chains",
		decimal.NewFromInt(1), decimal.NewFromInt(1), 916,
		decimal.NewFromInt(amount), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, inv.Finalize(uuid.New()))
	inv.DocumentDate = reportNow.AddDate(0, 0, -daysOld)
	return *inv
}

func openPurchase(t *testing.T, vendorID uuid.UUID, vendorName string, amount int64, daysOld int) trade.Purchase {
	t.Helper()
	p, err := trade.NewPurchase("PUR-2026-"+uuid.NewString()[:4], vendorID, vendorName)
	require.NoError(t, err)
	_, err = p.AddItem("Old gold", "Raw Gold",
		decimal.NewFromInt(1), decimal.NewFromInt(1), 750,
		decimal.NewFromInt(amount))
	require.NoError(t, err)
	require.NoError(t, p.Finalize(uuid.New()))
	p.DocumentDate = reportNow.AddDate(0, 0, -daysOld)
	return *p
}

func newReportService(invoices *fakeInvoiceRepo, purchases *fakePurchaseRepo, gold *fakeGoldRepo, parties *fakePartyRepo) *OutstandingService {
	service := NewOutstandingService(invoices, purchases, gold, parties, zap.NewNop())
	service.now = func() time.Time { return reportNow }
	return service
}

func TestOutstandingService_GetOutstanding(t *testing.T) {
	partyA := uuid.New()
	partyB := uuid.New()
	vendor := uuid.New()

	invoices := &fakeInvoiceRepo{open: []trade.Invoice{
		openInvoice(t, &partyA, "Anita", 1000, 2),
		openInvoice(t, &partyA, "Anita", 500, 15),
		openInvoice(t, &partyB, "Bharat", 200, 45),
		openInvoice(t, nil, "Walk-in Customer", 100, 1),
	}}
	purchases := &fakePurchaseRepo{open: []trade.Purchase{
		openPurchase(t, vendor, "Sharma Bullion", 600, 10),
	}}
	service := newReportService(invoices, purchases,
		&fakeGoldRepo{totals: map[uuid.UUID]goldTotals{}},
		&fakePartyRepo{byID: map[uuid.UUID]*partner.Party{}})

	report, err := service.GetOutstanding(context.Background())
	require.NoError(t, err)

	t.Run("walk-ins carry no receivable", func(t *testing.T) {
		assert.Equal(t, "1700.00", report.ReceivableTotal.StringFixed(2))
		require.Len(t, report.Receivables, 2)
	})

	t.Run("aging buckets split at 7 and 30 days", func(t *testing.T) {
		assert.Equal(t, "1000.00", report.ReceivableAging.Current.StringFixed(2))
		assert.Equal(t, "500.00", report.ReceivableAging.Overdue.StringFixed(2))
		assert.Equal(t, "200.00", report.ReceivableAging.Critical.StringFixed(2))
	})

	t.Run("rows sort by total, documents by date", func(t *testing.T) {
		first := report.Receivables[0]
		assert.Equal(t, partyA, first.PartyID)
		assert.Equal(t, "1500.00", first.Total.StringFixed(2))
		require.Len(t, first.Documents, 2)
		assert.True(t, first.Documents[0].DocumentDate.Before(first.Documents[1].DocumentDate))

		assert.Equal(t, partyB, report.Receivables[1].PartyID)
	})

	t.Run("payables come from open purchases", func(t *testing.T) {
		assert.Equal(t, "600.00", report.PayableTotal.StringFixed(2))
		require.Len(t, report.Payables, 1)
		assert.Equal(t, vendor, report.Payables[0].PartyID)
		assert.Equal(t, "600.00", report.PayableAging.Overdue.StringFixed(2))
	})

	t.Run("report carries the generation clock", func(t *testing.T) {
		assert.Equal(t, reportNow, report.GeneratedAt)
	})
}

func TestOutstandingService_GetPartySummary(t *testing.T) {
	party, err := partner.NewParty("Anita", partner.PartyCustomer, "")
	require.NoError(t, err)

	invoices := &fakeInvoiceRepo{open: []trade.Invoice{
		openInvoice(t, &party.ID, party.Name, 1000, 2),
		openInvoice(t, &party.ID, party.Name, 500, 15),
	}}
	purchases := &fakePurchaseRepo{open: []trade.Purchase{
		openPurchase(t, party.ID, party.Name, 600, 10),
	}}
	gold := &fakeGoldRepo{totals: map[uuid.UUID]goldTotals{
		party.ID: {in: decimal.NewFromInt(30), out: decimal.NewFromInt(10)},
	}}
	parties := &fakePartyRepo{byID: map[uuid.UUID]*partner.Party{party.ID: party}}

	service := newReportService(invoices, purchases, gold, parties)

	summary, err := service.GetPartySummary(context.Background(), party.ID)
	require.NoError(t, err)

	assert.Equal(t, party.Name, summary.PartyName)
	assert.Equal(t, "1500.00", summary.ReceivableTotal.StringFixed(2))
	assert.Equal(t, "600.00", summary.PayableTotal.StringFixed(2))
	assert.Equal(t, 2, summary.OpenInvoices)
	assert.Equal(t, 1, summary.OpenPurchases)
	assert.Equal(t, "30.000", summary.GoldInGrams.StringFixed(3))
	assert.Equal(t, "10.000", summary.GoldOutGrams.StringFixed(3))
	assert.Equal(t, "20.000", summary.GoldBalanceGrams.StringFixed(3))
	assert.Equal(t, "1000.00", summary.ReceivableAging.Current.StringFixed(2))
	assert.Equal(t, "500.00", summary.ReceivableAging.Overdue.StringFixed(2))

	t.Run("unknown party", func(t *testing.T) {
		_, err := service.GetPartySummary(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
