package ledger

import (
	"context"

	"github.com/goldshop/backend/internal/domain/ledger"
	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LedgerService exposes the read side of the three ledgers plus catalog and
// account management. Ledger entries themselves are only ever written by
// finalization and payments; nothing here appends to them.
type LedgerService struct {
	movementRepo ledger.StockMovementRepository
	categoryRepo ledger.InventoryCategoryRepository
	txnRepo      ledger.TransactionRepository
	accountRepo  ledger.AccountRepository
	goldRepo     ledger.GoldLedgerRepository
	logger       *zap.Logger
}

// NewLedgerService creates a LedgerService
func NewLedgerService(
	movementRepo ledger.StockMovementRepository,
	categoryRepo ledger.InventoryCategoryRepository,
	txnRepo ledger.TransactionRepository,
	accountRepo ledger.AccountRepository,
	goldRepo ledger.GoldLedgerRepository,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		movementRepo: movementRepo,
		categoryRepo: categoryRepo,
		txnRepo:      txnRepo,
		accountRepo:  accountRepo,
		goldRepo:     goldRepo,
		logger:       logger,
	}
}

// ListStockMovements retrieves inventory ledger entries with pagination
func (s *LedgerService) ListStockMovements(ctx context.Context, filter LedgerListFilter) (*shared.Paginated[StockMovementResponse], error) {
	domainFilter := buildFilter(filter)

	movements, err := s.movementRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.movementRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]StockMovementResponse, 0, len(movements))
	for idx := range movements {
		items = append(items, ToStockMovementResponse(&movements[idx]))
	}
	return shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize), nil
}

// ListTransactions retrieves money ledger entries with pagination
func (s *LedgerService) ListTransactions(ctx context.Context, filter LedgerListFilter) (*shared.Paginated[TransactionResponse], error) {
	domainFilter := buildFilter(filter)

	transactions, err := s.txnRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.txnRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]TransactionResponse, 0, len(transactions))
	for idx := range transactions {
		items = append(items, ToTransactionResponse(&transactions[idx]))
	}
	return shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize), nil
}

// ListGoldEntries retrieves a party's gold ledger with pagination
func (s *LedgerService) ListGoldEntries(ctx context.Context, partyID uuid.UUID, filter LedgerListFilter) (*shared.Paginated[GoldEntryResponse], error) {
	domainFilter := buildFilter(filter)

	entries, err := s.goldRepo.FindByParty(ctx, partyID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.goldRepo.CountByParty(ctx, partyID, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]GoldEntryResponse, 0, len(entries))
	for idx := range entries {
		items = append(items, ToGoldEntryResponse(&entries[idx]))
	}
	return shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize), nil
}

// CreateCategory creates a catalog category. Names that fold to the same
// canonical form collide, so "Gold Rings" and "gold  rings" cannot coexist.
func (s *LedgerService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := ledger.NewInventoryCategory(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("inventory category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name", category.Name))

	response := ToCategoryResponse(category)
	return &response, nil
}

// RenameCategory renames a catalog category, keeping the canonical key unique
func (s *LedgerService) RenameCategory(ctx context.Context, categoryID uuid.UUID, req RenameCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := category.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// ListCategories retrieves catalog categories with their materialized totals
func (s *LedgerService) ListCategories(ctx context.Context, filter LedgerListFilter) (*shared.Paginated[CategoryResponse], error) {
	domainFilter := buildFilter(filter)

	categories, err := s.categoryRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.categoryRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]CategoryResponse, 0, len(categories))
	for idx := range categories {
		items = append(items, ToCategoryResponse(&categories[idx]))
	}
	return shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize), nil
}

// CreateAccount creates a money account with an opening balance
func (s *LedgerService) CreateAccount(ctx context.Context, req CreateAccountRequest) (*AccountResponse, error) {
	account, err := ledger.NewAccount(req.Name, req.OpeningBalance)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account created",
		zap.String("account_id", account.ID.String()),
		zap.String("name", account.Name))

	response := ToAccountResponse(account)
	return &response, nil
}

// ListAccounts retrieves money accounts with their materialized balances
func (s *LedgerService) ListAccounts(ctx context.Context, filter LedgerListFilter) ([]AccountResponse, error) {
	accounts, err := s.accountRepo.FindAll(ctx, buildFilter(filter))
	if err != nil {
		return nil, err
	}

	items := make([]AccountResponse, 0, len(accounts))
	for idx := range accounts {
		items = append(items, ToAccountResponse(&accounts[idx]))
	}
	return items, nil
}

func buildFilter(filter LedgerListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Reference != "" {
		domainFilter.Filters["reference"] = filter.Reference
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}
	return domainFilter
}
