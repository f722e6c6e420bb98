package trade

import (
	"context"

	"github.com/goldshop/backend/internal/domain/audit"
	"github.com/goldshop/backend/internal/domain/partner"
	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/goldshop/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PurchaseService handles draft purchase lifecycle operations
type PurchaseService struct {
	scope     TransactionScope
	partyRepo partner.PartyRepository
	logger    *zap.Logger
}

// NewPurchaseService creates a PurchaseService
func NewPurchaseService(scope TransactionScope, partyRepo partner.PartyRepository, logger *zap.Logger) *PurchaseService {
	return &PurchaseService{scope: scope, partyRepo: partyRepo, logger: logger}
}

// Create creates a new draft purchase for a saved vendor
func (s *PurchaseService) Create(ctx context.Context, req CreatePurchaseRequest, actor shared.Identity) (*PurchaseResponse, error) {
	vendor, err := s.partyRepo.FindByID(ctx, req.VendorID)
	if err != nil {
		return nil, err
	}
	vendorName := vendor.Name

	var created *trade.Purchase
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		number, err := repos.PurchaseRepo().GenerateNumber(ctx)
		if err != nil {
			return err
		}

		purchase, err := trade.NewPurchase(number, req.VendorID, vendorName)
		if err != nil {
			return err
		}

		for _, item := range req.Items {
			if _, err := purchase.AddItem(item.Description, item.CategoryName,
				item.Quantity, item.WeightGrams, item.EnteredPurity, item.RatePerGram); err != nil {
				return err
			}
		}

		if req.Remark != "" {
			purchase.SetRemark(req.Remark)
		}

		entry, err := audit.NewLogEntry("purchase", purchase.ID, audit.ActionCreate, actor, audit.Changes{
			"number": purchase.Number,
		})
		if err != nil {
			return err
		}
		if err := repos.AuditRepo().Append(ctx, entry); err != nil {
			return err
		}

		if err := repos.PurchaseRepo().Save(ctx, purchase); err != nil {
			return err
		}

		created = purchase
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase created",
		zap.String("purchase_id", created.ID.String()),
		zap.String("number", created.Number))

	response := ToPurchaseResponse(created)
	return &response, nil
}

// GetByID retrieves a purchase by ID
func (s *PurchaseService) GetByID(ctx context.Context, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	var response *PurchaseResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.PurchaseRepo().FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}
		r := ToPurchaseResponse(purchase)
		response = &r
		return nil
	})
	return response, err
}

// List retrieves purchases with filtering and pagination
func (s *PurchaseService) List(ctx context.Context, filter PurchaseListFilter) (*shared.Paginated[PurchaseResponse], error) {
	domainFilter := buildPurchaseFilter(filter)

	var page *shared.Paginated[PurchaseResponse]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchases, err := repos.PurchaseRepo().FindAll(ctx, domainFilter)
		if err != nil {
			return err
		}
		total, err := repos.PurchaseRepo().Count(ctx, domainFilter)
		if err != nil {
			return err
		}

		items := make([]PurchaseResponse, 0, len(purchases))
		for idx := range purchases {
			items = append(items, ToPurchaseResponse(&purchases[idx]))
		}
		page = shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
		return nil
	})
	return page, err
}

// Update edits a purchase. Drafts accept the full edit set; locked documents
// follow the same override policy as invoices.
func (s *PurchaseService) Update(ctx context.Context, purchaseID uuid.UUID, req UpdatePurchaseRequest, actor shared.Identity) (*PurchaseResponse, error) {
	var updated *trade.Purchase
	var override bool

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.PurchaseRepo().FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}

		if purchase.CanModify() {
			if req.VendorName != nil {
				purchase.VendorName = *req.VendorName
			}
			if req.Remark != nil {
				purchase.SetRemark(*req.Remark)
			}
			if err := repos.PurchaseRepo().Save(ctx, purchase); err != nil {
				return err
			}
			updated = purchase
			return nil
		}

		if !actor.Role.CanOverrideLocks() {
			return shared.NewDomainError("ADMIN_OVERRIDE_REQUIRED",
				"Document is locked; an admin override is required to modify it")
		}

		override = true
		changes := overrideChanges(req.OverrideReason, purchase.LockedAt, purchase.LockedBy)
		if req.VendorName != nil {
			changes["vendor_name"] = map[string]string{"from": purchase.VendorName, "to": *req.VendorName}
			purchase.VendorName = *req.VendorName
		}
		if req.Remark != nil {
			changes["remark"] = map[string]string{"from": purchase.Remark, "to": *req.Remark}
			purchase.SetRemark(*req.Remark)
		}

		entry, err := audit.NewLogEntry("purchase", purchase.ID, audit.ActionAdminOverrideEdit, actor, changes)
		if err != nil {
			return err
		}
		if err := repos.AuditRepo().Append(ctx, entry); err != nil {
			return err
		}

		if err := repos.PurchaseRepo().SaveWithLock(ctx, purchase); err != nil {
			return err
		}
		updated = purchase
		return nil
	})
	if err != nil {
		return nil, err
	}

	if override {
		s.logger.Warn("locked purchase modified via admin override",
			zap.String("purchase_id", purchaseID.String()),
			zap.String("actor", actor.Name))
	}

	response := ToPurchaseResponse(updated)
	if override {
		response.Warning = OverrideWarning(updated.Number)
	}
	return &response, nil
}

// AddItem adds a line item to a draft purchase
func (s *PurchaseService) AddItem(ctx context.Context, purchaseID uuid.UUID, req AddPurchaseItemRequest) (*PurchaseResponse, error) {
	return s.mutateDraft(ctx, purchaseID, func(purchase *trade.Purchase) error {
		_, err := purchase.AddItem(req.Description, req.CategoryName,
			req.Quantity, req.WeightGrams, req.EnteredPurity, req.RatePerGram)
		return err
	})
}

// RemoveItem removes a line item from a draft purchase
func (s *PurchaseService) RemoveItem(ctx context.Context, purchaseID, itemID uuid.UUID) (*PurchaseResponse, error) {
	return s.mutateDraft(ctx, purchaseID, func(purchase *trade.Purchase) error {
		return purchase.RemoveItem(itemID)
	})
}

// SetPayment sets the up-front money payment terms on a draft purchase
func (s *PurchaseService) SetPayment(ctx context.Context, purchaseID uuid.UUID, req SetPurchasePaymentRequest) (*PurchaseResponse, error) {
	return s.mutateDraft(ctx, purchaseID, func(purchase *trade.Purchase) error {
		return purchase.SetPayment(req.Amount, req.AccountID)
	})
}

// SetAdvanceGold sets the advance gold terms on a draft purchase
func (s *PurchaseService) SetAdvanceGold(ctx context.Context, purchaseID uuid.UUID, req SetPurchaseGoldRequest) (*PurchaseResponse, error) {
	return s.mutateDraft(ctx, purchaseID, func(purchase *trade.Purchase) error {
		return purchase.SetAdvanceGold(req.WeightGrams, req.Purity)
	})
}

// SetExchangeGold sets the exchange gold terms on a draft purchase
func (s *PurchaseService) SetExchangeGold(ctx context.Context, purchaseID uuid.UUID, req SetPurchaseGoldRequest) (*PurchaseResponse, error) {
	return s.mutateDraft(ctx, purchaseID, func(purchase *trade.Purchase) error {
		return purchase.SetExchangeGold(req.WeightGrams, req.Purity)
	})
}

// Delete removes a purchase under the same policy as invoice deletion
func (s *PurchaseService) Delete(ctx context.Context, purchaseID uuid.UUID, reason string, actor shared.Identity) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.PurchaseRepo().FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}

		if purchase.CanModify() {
			return repos.PurchaseRepo().Delete(ctx, purchaseID)
		}

		if !actor.Role.CanOverrideLocks() {
			return shared.NewDomainError("ADMIN_OVERRIDE_REQUIRED",
				"Document is locked; an admin override is required to delete it")
		}

		changes := overrideChanges(reason, purchase.LockedAt, purchase.LockedBy)
		changes["number"] = purchase.Number
		changes["grand_total"] = purchase.GrandTotal.StringFixed(2)
		entry, err := audit.NewLogEntry("purchase", purchase.ID, audit.ActionAdminOverrideDelete, actor, changes)
		if err != nil {
			return err
		}
		if err := repos.AuditRepo().Append(ctx, entry); err != nil {
			return err
		}

		s.logger.Warn("locked purchase deleted via admin override",
			zap.String("purchase_id", purchaseID.String()),
			zap.String("number", purchase.Number),
			zap.String("actor", actor.Name))

		return repos.PurchaseRepo().Delete(ctx, purchaseID)
	})
}

func (s *PurchaseService) mutateDraft(ctx context.Context, purchaseID uuid.UUID, mutate func(*trade.Purchase) error) (*PurchaseResponse, error) {
	var updated *trade.Purchase
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.PurchaseRepo().FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}
		if err := mutate(purchase); err != nil {
			return err
		}
		if err := repos.PurchaseRepo().Save(ctx, purchase); err != nil {
			return err
		}
		updated = purchase
		return nil
	})
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(updated)
	return &response, nil
}

func buildPurchaseFilter(filter PurchaseListFilter) shared.Filter {
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
	if filter.VendorID != nil {
		domainFilter.Filters["vendor_id"] = *filter.VendorID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.PaymentStatus != "" {
		domainFilter.Filters["payment_status"] = filter.PaymentStatus
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}
	return domainFilter
}
