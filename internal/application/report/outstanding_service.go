package report

import (
	"context"
	"sort"
	"time"

	"github.com/goldshop/backend/internal/domain/ledger"
	"github.com/goldshop/backend/internal/domain/partner"
	"github.com/goldshop/backend/internal/domain/trade"
	"github.com/goldshop/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Aging bucket boundaries in days
const (
	agingCurrentMaxDays = 7
	agingOverdueMaxDays = 30
)

// OutstandingService projects party balances from the open documents and the
// gold ledger. Nothing here writes; balances are always recomputed from
// facts, never stored.
type OutstandingService struct {
	invoiceRepo  trade.InvoiceRepository
	purchaseRepo trade.PurchaseRepository
	goldRepo     ledger.GoldLedgerRepository
	partyRepo    partner.PartyRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewOutstandingService creates an OutstandingService
func NewOutstandingService(
	invoiceRepo trade.InvoiceRepository,
	purchaseRepo trade.PurchaseRepository,
	goldRepo ledger.GoldLedgerRepository,
	partyRepo partner.PartyRepository,
	logger *zap.Logger,
) *OutstandingService {
	return &OutstandingService{
		invoiceRepo:  invoiceRepo,
		purchaseRepo: purchaseRepo,
		goldRepo:     goldRepo,
		partyRepo:    partyRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// GetOutstanding builds the full outstanding balances report: receivables
// from open invoices, payables from open purchases, each split into aging
// buckets by document date.
func (s *OutstandingService) GetOutstanding(ctx context.Context) (*OutstandingResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "outstanding")
	defer span.End()

	now := s.now()

	invoices, err := s.invoiceRepo.FindAllOpen(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	purchases, err := s.purchaseRepo.FindAllOpen(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	receivables, receivableTotal, receivableAging := s.groupInvoices(invoices, now)
	payables, payableTotal, payableAging := s.groupPurchases(purchases, now)

	return &OutstandingResponse{
		Receivables:     receivables,
		Payables:        payables,
		ReceivableTotal: receivableTotal,
		PayableTotal:    payableTotal,
		ReceivableAging: receivableAging,
		PayableAging:    payableAging,
		GeneratedAt:     now,
	}, nil
}

// GetPartySummary computes one party's balance position: money owed to the
// shop, money the shop owes, and the net gold held for the party.
func (s *OutstandingService) GetPartySummary(ctx context.Context, partyID uuid.UUID) (*PartySummaryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "party_summary")
	defer span.End()
	telemetry.SetAttribute(span, "party_id", partyID.String())

	party, err := s.partyRepo.FindByID(ctx, partyID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	invoices, err := s.invoiceRepo.FindOpenByParty(ctx, partyID)
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchaseRepo.FindOpenByVendor(ctx, partyID)
	if err != nil {
		return nil, err
	}
	goldIn, goldOut, err := s.goldRepo.SumByParty(ctx, partyID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	receivable := decimal.Zero
	aging := newAgingBuckets()
	for idx := range invoices {
		balance := invoices[idx].BalanceDue
		receivable = receivable.Add(balance)
		aging.add(ageDays(invoices[idx].DocumentDate, now), balance)
	}

	payable := decimal.Zero
	for idx := range purchases {
		payable = payable.Add(purchases[idx].BalanceDue)
	}

	return &PartySummaryResponse{
		PartyID:          party.ID,
		PartyName:        party.Name,
		PartyType:        string(party.PartyType),
		ReceivableTotal:  receivable.Round(2),
		PayableTotal:     payable.Round(2),
		OpenInvoices:     len(invoices),
		OpenPurchases:    len(purchases),
		GoldInGrams:      goldIn.Round(3),
		GoldOutGrams:     goldOut.Round(3),
		GoldBalanceGrams: goldIn.Sub(goldOut).Round(3),
		ReceivableAging:  aging.buckets(),
	}, nil
}

func (s *OutstandingService) groupInvoices(invoices []trade.Invoice, now time.Time) ([]OutstandingRow, decimal.Decimal, AgingBuckets) {
	rows := make(map[uuid.UUID]*outstandingAccumulator)
	total := decimal.Zero
	overall := newAgingBuckets()

	for idx := range invoices {
		inv := &invoices[idx]
		if inv.PartyID == nil {
			// walk-ins carry no receivable
			continue
		}
		acc := rows[*inv.PartyID]
		if acc == nil {
			acc = &outstandingAccumulator{partyID: *inv.PartyID, partyName: inv.PartyName, aging: newAgingBuckets()}
			rows[*inv.PartyID] = acc
		}
		days := ageDays(inv.DocumentDate, now)
		acc.add(OutstandingDocument{
			ID:           inv.ID,
			Number:       inv.Number,
			DocumentDate: inv.DocumentDate,
			GrandTotal:   inv.GrandTotal,
			BalanceDue:   inv.BalanceDue,
			AgeDays:      days,
		})
		overall.add(days, inv.BalanceDue)
		total = total.Add(inv.BalanceDue)
	}

	return flattenRows(rows), total.Round(2), overall.buckets()
}

func (s *OutstandingService) groupPurchases(purchases []trade.Purchase, now time.Time) ([]OutstandingRow, decimal.Decimal, AgingBuckets) {
	rows := make(map[uuid.UUID]*outstandingAccumulator)
	total := decimal.Zero
	overall := newAgingBuckets()

	for idx := range purchases {
		p := &purchases[idx]
		acc := rows[p.VendorID]
		if acc == nil {
			acc = &outstandingAccumulator{partyID: p.VendorID, partyName: p.VendorName, aging: newAgingBuckets()}
			rows[p.VendorID] = acc
		}
		days := ageDays(p.DocumentDate, now)
		acc.add(OutstandingDocument{
			ID:           p.ID,
			Number:       p.Number,
			DocumentDate: p.DocumentDate,
			GrandTotal:   p.GrandTotal,
			BalanceDue:   p.BalanceDue,
			AgeDays:      days,
		})
		overall.add(days, p.BalanceDue)
		total = total.Add(p.BalanceDue)
	}

	return flattenRows(rows), total.Round(2), overall.buckets()
}

// ageDays counts whole days since the document date, never negative
func ageDays(documentDate, now time.Time) int {
	days := int(now.Sub(documentDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

type agingAccumulator struct {
	current  decimal.Decimal
	overdue  decimal.Decimal
	critical decimal.Decimal
}

func newAgingBuckets() agingAccumulator {
	return agingAccumulator{current: decimal.Zero, overdue: decimal.Zero, critical: decimal.Zero}
}

func (a *agingAccumulator) add(days int, amount decimal.Decimal) {
	switch {
	case days <= agingCurrentMaxDays:
		a.current = a.current.Add(amount)
	case days <= agingOverdueMaxDays:
		a.overdue = a.overdue.Add(amount)
	default:
		a.critical = a.critical.Add(amount)
	}
}

func (a *agingAccumulator) buckets() AgingBuckets {
	return AgingBuckets{
		Current:  a.current.Round(2),
		Overdue:  a.overdue.Round(2),
		Critical: a.critical.Round(2),
	}
}

type outstandingAccumulator struct {
	partyID   uuid.UUID
	partyName string
	total     decimal.Decimal
	aging     agingAccumulator
	documents []OutstandingDocument
}

func (o *outstandingAccumulator) add(doc OutstandingDocument) {
	o.total = o.total.Add(doc.BalanceDue)
	o.aging.add(doc.AgeDays, doc.BalanceDue)
	o.documents = append(o.documents, doc)
}

func flattenRows(rows map[uuid.UUID]*outstandingAccumulator) []OutstandingRow {
	result := make([]OutstandingRow, 0, len(rows))
	for _, acc := range rows {
		sort.Slice(acc.documents, func(i, j int) bool {
			return acc.documents[i].DocumentDate.Before(acc.documents[j].DocumentDate)
		})
		result = append(result, OutstandingRow{
			PartyID:   acc.partyID,
			PartyName: acc.partyName,
			Total:     acc.total.Round(2),
			Aging:     acc.aging.buckets(),
			Documents: acc.documents,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Total.GreaterThan(result[j].Total)
	})
	return result
}
