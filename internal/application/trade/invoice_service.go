package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/goldshop/backend/internal/domain/audit"
	"github.com/goldshop/backend/internal/domain/partner"
	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/goldshop/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OverrideWarning is attached to responses when an admin mutates a locked
// document through the override path. It names the finalized document so the
// caller knows exactly which lock was bypassed.
func OverrideWarning(number string) string {
	return fmt.Sprintf("Document %s is locked by finalization; the change was applied via admin override and recorded in the audit trail", number)
}

// overrideChanges starts an override audit payload with the reason and the
// lock metadata of the document being bypassed.
func overrideChanges(reason string, lockedAt *time.Time, lockedBy *uuid.UUID) audit.Changes {
	changes := audit.Changes{"reason": reason}
	if lockedAt != nil {
		changes["locked_at"] = lockedAt.Format(time.RFC3339)
	}
	if lockedBy != nil {
		changes["locked_by"] = lockedBy.String()
	}
	return changes
}

// InvoiceService handles draft invoice lifecycle operations. Finalization and
// payments live in FinalizeService and PaymentService; this service covers
// everything that happens to an invoice before and around them.
type InvoiceService struct {
	scope     TransactionScope
	partyRepo partner.PartyRepository
	logger    *zap.Logger
}

// NewInvoiceService creates an InvoiceService
func NewInvoiceService(scope TransactionScope, partyRepo partner.PartyRepository, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{scope: scope, partyRepo: partyRepo, logger: logger}
}

// Create creates a new draft invoice. A nil party ID makes it a walk-in sale
// carrying only the customer's name.
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest, actor shared.Identity) (*InvoiceResponse, error) {
	partyName := req.PartyName
	if req.PartyID != nil {
		party, err := s.partyRepo.FindByID(ctx, *req.PartyID)
		if err != nil {
			return nil, err
		}
		partyName = party.Name
	}

	var created *trade.Invoice
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		number, err := repos.InvoiceRepo().GenerateNumber(ctx)
		if err != nil {
			return err
		}

		invoice, err := trade.NewInvoice(number, req.PartyID, partyName)
		if err != nil {
			return err
		}

		for _, item := range req.Items {
			if _, err := invoice.AddItem(item.Description, item.CategoryName,
				item.Quantity, item.WeightGrams, item.Purity,
				item.RatePerGram, item.MakingCharge); err != nil {
				return err
			}
		}

		if req.TaxRate != nil {
			if err := invoice.SetTaxRate(*req.TaxRate); err != nil {
				return err
			}
		}
		if req.JobCardID != nil {
			if err := invoice.LinkJobCard(*req.JobCardID); err != nil {
				return err
			}
		}
		if req.Remark != "" {
			invoice.SetRemark(req.Remark)
		}

		entry, err := audit.NewLogEntry("invoice", invoice.ID, audit.ActionCreate, actor, audit.Changes{
			"number": invoice.Number,
		})
		if err != nil {
			return err
		}
		if err := repos.AuditRepo().Append(ctx, entry); err != nil {
			return err
		}

		if err := repos.InvoiceRepo().Save(ctx, invoice); err != nil {
			return err
		}

		created = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("invoice created",
		zap.String("invoice_id", created.ID.String()),
		zap.String("number", created.Number))

	response := ToInvoiceResponse(created)
	return &response, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	var response *InvoiceResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		r := ToInvoiceResponse(invoice)
		response = &r
		return nil
	})
	return response, err
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, filter InvoiceListFilter) (*shared.Paginated[InvoiceResponse], error) {
	domainFilter := buildInvoiceFilter(filter)

	var page *shared.Paginated[InvoiceResponse]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoices, err := repos.InvoiceRepo().FindAll(ctx, domainFilter)
		if err != nil {
			return err
		}
		total, err := repos.InvoiceRepo().Count(ctx, domainFilter)
		if err != nil {
			return err
		}

		items := make([]InvoiceResponse, 0, len(invoices))
		for idx := range invoices {
			items = append(items, ToInvoiceResponse(&invoices[idx]))
		}
		page = shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
		return nil
	})
	return page, err
}

// Update edits an invoice. Drafts accept the full edit set. Locked documents
// reject the edit unless the actor's role allows overrides, in which case the
// change is applied, flagged with a warning and written to the audit trail.
func (s *InvoiceService) Update(ctx context.Context, invoiceID uuid.UUID, req UpdateInvoiceRequest, actor shared.Identity) (*InvoiceResponse, error) {
	var updated *trade.Invoice
	var override bool

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}

		if invoice.CanModify() {
			if err := s.applyDraftUpdate(ctx, repos, invoice, req); err != nil {
				return err
			}
			updated = invoice
			return nil
		}

		if !actor.Role.CanOverrideLocks() {
			return shared.NewDomainError("ADMIN_OVERRIDE_REQUIRED",
				"Document is locked; an admin override is required to modify it")
		}

		override = true
		changes := overrideChanges(req.OverrideReason, invoice.LockedAt, invoice.LockedBy)
		if req.PartyName != nil {
			changes["party_name"] = map[string]string{"from": invoice.PartyName, "to": *req.PartyName}
			invoice.PartyName = *req.PartyName
		}
		if req.Remark != nil {
			changes["remark"] = map[string]string{"from": invoice.Remark, "to": *req.Remark}
			invoice.SetRemark(*req.Remark)
		}

		entry, err := audit.NewLogEntry("invoice", invoice.ID, audit.ActionAdminOverrideEdit, actor, changes)
		if err != nil {
			return err
		}
		if err := repos.AuditRepo().Append(ctx, entry); err != nil {
			return err
		}

		if err := repos.InvoiceRepo().SaveWithLock(ctx, invoice); err != nil {
			return err
		}
		updated = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}

	if override {
		s.logger.Warn("locked invoice modified via admin override",
			zap.String("invoice_id", invoiceID.String()),
			zap.String("actor", actor.Name))
	}

	response := ToInvoiceResponse(updated)
	if override {
		response.Warning = OverrideWarning(updated.Number)
	}
	return &response, nil
}

func (s *InvoiceService) applyDraftUpdate(ctx context.Context, repos TransactionalRepositories, invoice *trade.Invoice, req UpdateInvoiceRequest) error {
	if req.PartyID != nil {
		party, err := s.partyRepo.FindByID(ctx, *req.PartyID)
		if err != nil {
			return err
		}
		invoice.PartyID = req.PartyID
		invoice.PartyName = party.Name
	}
	if req.PartyName != nil {
		invoice.PartyName = *req.PartyName
	}
	if req.TaxRate != nil {
		if err := invoice.SetTaxRate(*req.TaxRate); err != nil {
			return err
		}
	}
	if req.JobCardID != nil {
		if err := invoice.LinkJobCard(*req.JobCardID); err != nil {
			return err
		}
	}
	if req.Remark != nil {
		invoice.SetRemark(*req.Remark)
	}
	return repos.InvoiceRepo().Save(ctx, invoice)
}

// AddItem adds a line item to a draft invoice
func (s *InvoiceService) AddItem(ctx context.Context, invoiceID uuid.UUID, req AddInvoiceItemRequest) (*InvoiceResponse, error) {
	var updated *trade.Invoice
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if _, err := invoice.AddItem(req.Description, req.CategoryName,
			req.Quantity, req.WeightGrams, req.Purity,
			req.RatePerGram, req.MakingCharge); err != nil {
			return err
		}
		if err := repos.InvoiceRepo().Save(ctx, invoice); err != nil {
			return err
		}
		updated = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(updated)
	return &response, nil
}

// RemoveItem removes a line item from a draft invoice
func (s *InvoiceService) RemoveItem(ctx context.Context, invoiceID, itemID uuid.UUID) (*InvoiceResponse, error) {
	var updated *trade.Invoice
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if err := invoice.RemoveItem(itemID); err != nil {
			return err
		}
		if err := repos.InvoiceRepo().Save(ctx, invoice); err != nil {
			return err
		}
		updated = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(updated)
	return &response, nil
}

// Delete removes an invoice. Drafts delete freely. A locked document needs an
// override-capable role; the deletion is then recorded in the audit trail
// before the document goes. Ledger entries it caused are history and stay.
func (s *InvoiceService) Delete(ctx context.Context, invoiceID uuid.UUID, reason string, actor shared.Identity) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}

		if invoice.CanModify() {
			return repos.InvoiceRepo().Delete(ctx, invoiceID)
		}

		if !actor.Role.CanOverrideLocks() {
			return shared.NewDomainError("ADMIN_OVERRIDE_REQUIRED",
				"Document is locked; an admin override is required to delete it")
		}

		changes := overrideChanges(reason, invoice.LockedAt, invoice.LockedBy)
		changes["number"] = invoice.Number
		changes["grand_total"] = invoice.GrandTotal.StringFixed(2)
		entry, err := audit.NewLogEntry("invoice", invoice.ID, audit.ActionAdminOverrideDelete, actor, changes)
		if err != nil {
			return err
		}
		if err := repos.AuditRepo().Append(ctx, entry); err != nil {
			return err
		}

		s.logger.Warn("locked invoice deleted via admin override",
			zap.String("invoice_id", invoiceID.String()),
			zap.String("number", invoice.Number),
			zap.String("actor", actor.Name))

		return repos.InvoiceRepo().Delete(ctx, invoiceID)
	})
}

func buildInvoiceFilter(filter InvoiceListFilter) shared.Filter {
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
	if filter.PartyID != nil {
		domainFilter.Filters["party_id"] = *filter.PartyID
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
