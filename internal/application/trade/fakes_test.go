package trade

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/goldshop/backend/internal/domain/audit"
	"github.com/goldshop/backend/internal/domain/ledger"
	"github.com/goldshop/backend/internal/domain/partner"
	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/goldshop/backend/internal/domain/trade"
	"github.com/goldshop/backend/internal/domain/workshop"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory repository fakes backing the service tests. They implement the
// full repository interfaces but ignore filters where the tests don't need
// them.

type memInvoiceRepo struct {
	byID map[uuid.UUID]*trade.Invoice
	seq  int
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{byID: make(map[uuid.UUID]*trade.Invoice)}
}

func (r *memInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.Invoice, error) {
	if inv, ok := r.byID[id]; ok {
		return inv, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memInvoiceRepo) FindByNumber(_ context.Context, number string) (*trade.Invoice, error) {
	for _, inv := range r.byID {
		if inv.Number == number {
			return inv, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memInvoiceRepo) FindAll(_ context.Context, _ shared.Filter) ([]trade.Invoice, error) {
	result := make([]trade.Invoice, 0, len(r.byID))
	for _, inv := range r.byID {
		result = append(result, *inv)
	}
	return result, nil
}

func (r *memInvoiceRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *memInvoiceRepo) FindOpenByParty(_ context.Context, partyID uuid.UUID) ([]trade.Invoice, error) {
	result := make([]trade.Invoice, 0)
	for _, inv := range r.byID {
		if inv.IsFinalized() && inv.BalanceDue.IsPositive() &&
			inv.PartyID != nil && *inv.PartyID == partyID {
			result = append(result, *inv)
		}
	}
	return result, nil
}

func (r *memInvoiceRepo) FindAllOpen(_ context.Context) ([]trade.Invoice, error) {
	result := make([]trade.Invoice, 0)
	for _, inv := range r.byID {
		if inv.IsFinalized() && inv.BalanceDue.IsPositive() {
			result = append(result, *inv)
		}
	}
	return result, nil
}

func (r *memInvoiceRepo) Save(_ context.Context, invoice *trade.Invoice) error {
	r.byID[invoice.ID] = invoice
	return nil
}

func (r *memInvoiceRepo) SaveWithLock(_ context.Context, invoice *trade.Invoice) error {
	stored, ok := r.byID[invoice.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != invoice.Version {
		return shared.ErrConcurrencyConflict
	}
	invoice.IncrementVersion()
	r.byID[invoice.ID] = invoice
	return nil
}

func (r *memInvoiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *memInvoiceRepo) GenerateNumber(_ context.Context) (string, error) {
	r.seq++
	return fmt.Sprintf("INV-%d-%04d", time.Now().Year(), r.seq), nil
}

type memPurchaseRepo struct {
	byID map[uuid.UUID]*trade.Purchase
	seq  int
}

func newMemPurchaseRepo() *memPurchaseRepo {
	return &memPurchaseRepo{byID: make(map[uuid.UUID]*trade.Purchase)}
}

func (r *memPurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.Purchase, error) {
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memPurchaseRepo) FindByNumber(_ context.Context, number string) (*trade.Purchase, error) {
	for _, p := range r.byID {
		if p.Number == number {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memPurchaseRepo) FindAll(_ context.Context, _ shared.Filter) ([]trade.Purchase, error) {
	result := make([]trade.Purchase, 0, len(r.byID))
	for _, p := range r.byID {
		result = append(result, *p)
	}
	return result, nil
}

func (r *memPurchaseRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *memPurchaseRepo) FindOpenByVendor(_ context.Context, vendorID uuid.UUID) ([]trade.Purchase, error) {
	result := make([]trade.Purchase, 0)
	for _, p := range r.byID {
		if p.IsFinalized() && p.BalanceDue.IsPositive() && p.VendorID == vendorID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *memPurchaseRepo) FindAllOpen(_ context.Context) ([]trade.Purchase, error) {
	result := make([]trade.Purchase, 0)
	for _, p := range r.byID {
		if p.IsFinalized() && p.BalanceDue.IsPositive() {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *memPurchaseRepo) Save(_ context.Context, purchase *trade.Purchase) error {
	r.byID[purchase.ID] = purchase
	return nil
}

func (r *memPurchaseRepo) SaveWithLock(_ context.Context, purchase *trade.Purchase) error {
	stored, ok := r.byID[purchase.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != purchase.Version {
		return shared.ErrConcurrencyConflict
	}
	purchase.IncrementVersion()
	r.byID[purchase.ID] = purchase
	return nil
}

func (r *memPurchaseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *memPurchaseRepo) GenerateNumber(_ context.Context) (string, error) {
	r.seq++
	return fmt.Sprintf("PUR-%d-%04d", time.Now().Year(), r.seq), nil
}

type memStockMovementRepo struct {
	entries []*ledger.StockMovement
}

func (r *memStockMovementRepo) Append(_ context.Context, movement *ledger.StockMovement) error {
	r.entries = append(r.entries, movement)
	return nil
}

func (r *memStockMovementRepo) FindByReference(_ context.Context, reference ledger.ReferenceType, referenceID uuid.UUID) ([]ledger.StockMovement, error) {
	result := make([]ledger.StockMovement, 0)
	for _, m := range r.entries {
		if m.Reference == reference && m.ReferenceID == referenceID {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (r *memStockMovementRepo) FindAll(_ context.Context, _ shared.Filter) ([]ledger.StockMovement, error) {
	result := make([]ledger.StockMovement, 0, len(r.entries))
	for _, m := range r.entries {
		result = append(result, *m)
	}
	return result, nil
}

func (r *memStockMovementRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.entries)), nil
}

type memCategoryRepo struct {
	byID map[uuid.UUID]*ledger.InventoryCategory
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{byID: make(map[uuid.UUID]*ledger.InventoryCategory)}
}

func (r *memCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.InventoryCategory, error) {
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memCategoryRepo) FindByNormalizedName(_ context.Context, normalized string) (*ledger.InventoryCategory, error) {
	for _, c := range r.byID {
		if c.NormalizedName == normalized {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCategoryRepo) FindAll(_ context.Context, _ shared.Filter) ([]ledger.InventoryCategory, error) {
	result := make([]ledger.InventoryCategory, 0, len(r.byID))
	for _, c := range r.byID {
		result = append(result, *c)
	}
	return result, nil
}

func (r *memCategoryRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *memCategoryRepo) Save(_ context.Context, category *ledger.InventoryCategory) error {
	for _, existing := range r.byID {
		if existing.NormalizedName == category.NormalizedName && existing.ID != category.ID {
			return shared.ErrAlreadyExists
		}
	}
	r.byID[category.ID] = category
	return nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

type memTransactionRepo struct {
	entries []*ledger.Transaction
	seq     int
}

func (r *memTransactionRepo) Append(_ context.Context, transaction *ledger.Transaction) error {
	r.entries = append(r.entries, transaction)
	return nil
}

func (r *memTransactionRepo) FindByReference(_ context.Context, reference ledger.ReferenceType, referenceID uuid.UUID) ([]ledger.Transaction, error) {
	result := make([]ledger.Transaction, 0)
	for _, txn := range r.entries {
		if txn.Reference == reference && txn.ReferenceID == referenceID {
			result = append(result, *txn)
		}
	}
	return result, nil
}

func (r *memTransactionRepo) FindAll(_ context.Context, _ shared.Filter) ([]ledger.Transaction, error) {
	result := make([]ledger.Transaction, 0, len(r.entries))
	for _, txn := range r.entries {
		result = append(result, *txn)
	}
	return result, nil
}

func (r *memTransactionRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.entries)), nil
}

func (r *memTransactionRepo) GenerateNumber(_ context.Context) (string, error) {
	r.seq++
	return fmt.Sprintf("TXN-%d-%04d", time.Now().Year(), r.seq), nil
}

type memAccountRepo struct {
	byID map[uuid.UUID]*ledger.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{byID: make(map[uuid.UUID]*ledger.Account)}
}

func (r *memAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.Account, error) {
	if a, ok := r.byID[id]; ok {
		return a, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memAccountRepo) FindAll(_ context.Context, _ shared.Filter) ([]ledger.Account, error) {
	result := make([]ledger.Account, 0, len(r.byID))
	for _, a := range r.byID {
		result = append(result, *a)
	}
	return result, nil
}

func (r *memAccountRepo) Save(_ context.Context, account *ledger.Account) error {
	r.byID[account.ID] = account
	return nil
}

type memGoldLedgerRepo struct {
	entries []*ledger.GoldLedgerEntry
}

func (r *memGoldLedgerRepo) Append(_ context.Context, entry *ledger.GoldLedgerEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memGoldLedgerRepo) FindByParty(_ context.Context, partyID uuid.UUID, _ shared.Filter) ([]ledger.GoldLedgerEntry, error) {
	result := make([]ledger.GoldLedgerEntry, 0)
	for _, e := range r.entries {
		if e.PartyID == partyID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (r *memGoldLedgerRepo) CountByParty(_ context.Context, partyID uuid.UUID, _ shared.Filter) (int64, error) {
	var count int64
	for _, e := range r.entries {
		if e.PartyID == partyID {
			count++
		}
	}
	return count, nil
}

func (r *memGoldLedgerRepo) SumByParty(_ context.Context, partyID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	in, out := decimal.Zero, decimal.Zero
	for _, e := range r.entries {
		if e.PartyID != partyID {
			continue
		}
		if e.Type == ledger.GoldIn {
			in = in.Add(e.WeightGrams)
		} else {
			out = out.Add(e.WeightGrams)
		}
	}
	return in, out, nil
}

type memJobCardRepo struct {
	byID map[uuid.UUID]*workshop.JobCard
}

func newMemJobCardRepo() *memJobCardRepo {
	return &memJobCardRepo{byID: make(map[uuid.UUID]*workshop.JobCard)}
}

func (r *memJobCardRepo) FindByID(_ context.Context, id uuid.UUID) (*workshop.JobCard, error) {
	if j, ok := r.byID[id]; ok {
		return j, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memJobCardRepo) Save(_ context.Context, jobCard *workshop.JobCard) error {
	r.byID[jobCard.ID] = jobCard
	return nil
}

type memAuditRepo struct {
	entries []*audit.LogEntry
}

func (r *memAuditRepo) Append(_ context.Context, entry *audit.LogEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memAuditRepo) FindByRecord(_ context.Context, module string, recordID uuid.UUID) ([]audit.LogEntry, error) {
	result := make([]audit.LogEntry, 0)
	for _, e := range r.entries {
		if e.Module == module && e.RecordID == recordID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (r *memAuditRepo) FindAll(_ context.Context, _ shared.Filter) ([]audit.LogEntry, error) {
	result := make([]audit.LogEntry, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, *e)
	}
	return result, nil
}

func (r *memAuditRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.entries)), nil
}

type memPartyRepo struct {
	byID map[uuid.UUID]*partner.Party
}

func newMemPartyRepo() *memPartyRepo {
	return &memPartyRepo{byID: make(map[uuid.UUID]*partner.Party)}
}

func (r *memPartyRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Party, error) {
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memPartyRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Party, error) {
	result := make([]partner.Party, 0, len(r.byID))
	for _, p := range r.byID {
		result = append(result, *p)
	}
	return result, nil
}

func (r *memPartyRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *memPartyRepo) Save(_ context.Context, party *partner.Party) error {
	r.byID[party.ID] = party
	return nil
}

// Interface conformance for the fakes
var (
	_ trade.InvoiceRepository            = (*memInvoiceRepo)(nil)
	_ trade.PurchaseRepository           = (*memPurchaseRepo)(nil)
	_ ledger.StockMovementRepository     = (*memStockMovementRepo)(nil)
	_ ledger.InventoryCategoryRepository = (*memCategoryRepo)(nil)
	_ ledger.TransactionRepository       = (*memTransactionRepo)(nil)
	_ ledger.AccountRepository           = (*memAccountRepo)(nil)
	_ ledger.GoldLedgerRepository        = (*memGoldLedgerRepo)(nil)
	_ workshop.JobCardRepository         = (*memJobCardRepo)(nil)
	_ audit.LogRepository                = (*memAuditRepo)(nil)
	_ partner.PartyRepository            = (*memPartyRepo)(nil)
)

// fixture wires the fakes into a NoOpTransactionScope for service tests
type fixture struct {
	invoices   *memInvoiceRepo
	purchases  *memPurchaseRepo
	movements  *memStockMovementRepo
	categories *memCategoryRepo
	txns       *memTransactionRepo
	accounts   *memAccountRepo
	gold       *memGoldLedgerRepo
	jobCards   *memJobCardRepo
	audits     *memAuditRepo
	parties    *memPartyRepo
	scope      *NoOpTransactionScope
}

func newFixture() *fixture {
	f := &fixture{
		invoices:   newMemInvoiceRepo(),
		purchases:  newMemPurchaseRepo(),
		movements:  &memStockMovementRepo{},
		categories: newMemCategoryRepo(),
		txns:       &memTransactionRepo{},
		accounts:   newMemAccountRepo(),
		gold:       &memGoldLedgerRepo{},
		jobCards:   newMemJobCardRepo(),
		audits:     &memAuditRepo{},
		parties:    newMemPartyRepo(),
	}
	f.scope = NewNoOpTransactionScope(
		f.invoices, f.purchases, f.movements, f.categories,
		f.txns, f.accounts, f.gold, f.jobCards, f.audits)
	return f
}

func (f *fixture) addParty(t *testing.T, name string, partyType partner.PartyType) *partner.Party {
	t.Helper()
	party, err := partner.NewParty(name, partyType, "")
	require.NoError(t, err)
	require.NoError(t, f.parties.Save(context.Background(), party))
	return party
}

func (f *fixture) addAccount(t *testing.T, name string, opening int64) *ledger.Account {
	t.Helper()
	account, err := ledger.NewAccount(name, decimal.NewFromInt(opening))
	require.NoError(t, err)
	require.NoError(t, f.accounts.Save(context.Background(), account))
	return account
}

func (f *fixture) addCategory(t *testing.T, name string) *ledger.InventoryCategory {
	t.Helper()
	category, err := ledger.NewInventoryCategory(name)
	require.NoError(t, err)
	require.NoError(t, f.categories.Save(context.Background(), category))
	return category
}

// draftInvoice stores a one-line draft: 1 x 20g at 50/g plus 100 making,
// grand total 1100
func (f *fixture) draftInvoice(t *testing.T, partyID *uuid.UUID, partyName string) *trade.Invoice {
	t.Helper()
	number, err := f.invoices.GenerateNumber(context.Background())
	require.NoError(t, err)
	invoice, err := trade.NewInvoice(number, partyID, partyName)
	require.NoError(t, err)
	_, err = invoice.AddItem("Gold chain", "Chains",
		decimal.NewFromInt(1), decimal.NewFromInt(20), 916,
		decimal.NewFromInt(50), decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, f.invoices.Save(context.Background(), invoice))
	return invoice
}

// draftPurchase stores a one-line draft: 50g at 20/g, grand total 1000.
// The vendor-entered purity is deliberately not the shop's valuation purity.
func (f *fixture) draftPurchase(t *testing.T, vendorID uuid.UUID, vendorName string) *trade.Purchase {
	t.Helper()
	number, err := f.purchases.GenerateNumber(context.Background())
	require.NoError(t, err)
	purchase, err := trade.NewPurchase(number, vendorID, vendorName)
	require.NoError(t, err)
	_, err = purchase.AddItem("Old gold lot", "Raw Gold",
		decimal.NewFromInt(1), decimal.NewFromInt(50), 750,
		decimal.NewFromInt(20))
	require.NoError(t, err)
	require.NoError(t, f.purchases.Save(context.Background(), purchase))
	return purchase
}

func staffActor() shared.Identity {
	return shared.NewIdentity(uuid.New(), "Counter Staff", shared.RoleStaff)
}

func adminActor() shared.Identity {
	return shared.NewIdentity(uuid.New(), "Shop Admin", shared.RoleAdmin)
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}
