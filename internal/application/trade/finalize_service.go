package trade

import (
	"context"
	"errors"

	"github.com/goldshop/backend/internal/domain/audit"
	"github.com/goldshop/backend/internal/domain/ledger"
	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/goldshop/backend/internal/domain/shared/valueobject"
	"github.com/goldshop/backend/internal/domain/trade"
	"github.com/goldshop/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FinalizeService orchestrates the finalize critical section: a draft
// document flips to finalized and every ledger consequence lands in the same
// database transaction. Either everything commits or nothing does; a reader
// can never observe a finalized document whose ledger entries are missing.
type FinalizeService struct {
	scope           TransactionScope
	logger          *zap.Logger
	valuationPurity int
}

// NewFinalizeService creates a FinalizeService. valuationPurity is the fixed
// purity (per mille) used to value purchased stock regardless of what the
// vendor claimed on the line items.
func NewFinalizeService(scope TransactionScope, logger *zap.Logger, valuationPurity int) *FinalizeService {
	if valuationPurity <= 0 {
		valuationPurity = valueobject.Purity916.Int()
	}
	return &FinalizeService{
		scope:           scope,
		logger:          logger,
		valuationPurity: valuationPurity,
	}
}

// FinalizeInvoice commits a draft invoice. In one atomic unit it writes the
// stock OUT movements, debits the party's receivable, locks any linked job
// card, appends the audit record and flips the invoice status. A second
// finalize of the same invoice fails with ALREADY_FINALIZED and writes
// nothing.
func (s *FinalizeService) FinalizeInvoice(ctx context.Context, invoiceID uuid.UUID, actor shared.Identity) (*InvoiceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "finalize")
	defer span.End()
	telemetry.SetAttribute(span, "invoice_id", invoiceID.String())

	var finalized *trade.Invoice
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}

		if err := invoice.Finalize(actor.UserID); err != nil {
			return err
		}

		for _, item := range invoice.Items {
			// Weightless service lines never touch the stock ledger
			if !item.WeightGrams.IsPositive() {
				continue
			}
			if err := s.writeStockMovement(ctx, repos, ledger.MovementOut,
				item.CategoryName, item.Description,
				item.Quantity.Neg(), item.WeightGrams.Neg(), item.Purity,
				ledger.ReferenceInvoice, invoice.ID); err != nil {
				return err
			}
		}

		// Walk-in sales settle at the counter and never touch the money ledger
		if !invoice.IsWalkIn() {
			number, err := repos.TransactionRepo().GenerateNumber(ctx)
			if err != nil {
				return err
			}
			txn, err := ledger.NewTransaction(number, ledger.TransactionDebit, invoice.GrandTotal,
				nil, invoice.PartyID, ledger.CategorySalesInvoice, "", ledger.ReferenceInvoice, invoice.ID)
			if err != nil {
				return err
			}
			if err := repos.TransactionRepo().Append(ctx, txn); err != nil {
				return err
			}
		}

		if invoice.JobCardID != nil {
			jobCard, err := repos.JobCardRepo().FindByID(ctx, *invoice.JobCardID)
			if err != nil {
				return err
			}
			if err := jobCard.Lock(actor.UserID, invoice.ID); err != nil {
				return err
			}
			if err := repos.JobCardRepo().Save(ctx, jobCard); err != nil {
				return err
			}
		}

		entry, err := audit.NewLogEntry("invoice", invoice.ID, audit.ActionFinalize, actor, audit.Changes{
			"number":      invoice.Number,
			"grand_total": invoice.GrandTotal.StringFixed(2),
		})
		if err != nil {
			return err
		}
		if err := repos.AuditRepo().Append(ctx, entry); err != nil {
			return err
		}

		if err := repos.InvoiceRepo().SaveWithLock(ctx, invoice); err != nil {
			return err
		}

		finalized = invoice
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		if !errors.Is(err, shared.ErrAlreadyFinalized) {
			s.logger.Warn("invoice finalize failed",
				zap.String("invoice_id", invoiceID.String()),
				zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("invoice finalized",
		zap.String("invoice_id", finalized.ID.String()),
		zap.String("number", finalized.Number),
		zap.String("grand_total", finalized.GrandTotal.StringFixed(2)),
		zap.String("actor", actor.Name))

	response := ToInvoiceResponse(finalized)
	return &response, nil
}

// FinalizePurchase commits a draft purchase. In one atomic unit it writes the
// stock IN movements valued at the shop's fixed purity, records the money
// paid out and any remaining vendor payable, appends the gold ledger entries
// for advance and exchange gold, appends the audit record and flips the
// purchase status. The document locks only when nothing remains payable.
func (s *FinalizeService) FinalizePurchase(ctx context.Context, purchaseID uuid.UUID, actor shared.Identity) (*PurchaseResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase", "finalize")
	defer span.End()
	telemetry.SetAttribute(span, "purchase_id", purchaseID.String())

	var finalized *trade.Purchase
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.PurchaseRepo().FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}

		if err := purchase.Finalize(actor.UserID); err != nil {
			return err
		}

		for _, item := range purchase.Items {
			// Stock is valued at the shop's purity, not the vendor's claim
			if err := s.writeStockMovement(ctx, repos, ledger.MovementIn,
				item.CategoryName, item.Description,
				item.Quantity, item.WeightGrams, s.valuationPurity,
				ledger.ReferencePurchase, purchase.ID); err != nil {
				return err
			}
		}

		vendorID := purchase.VendorID
		if purchase.PaidAmount.IsPositive() {
			number, err := repos.TransactionRepo().GenerateNumber(ctx)
			if err != nil {
				return err
			}
			// Money out of the shop account; the vendor-facing entry is the
			// payable below. Party-tagged credits mean obligations only.
			txn, err := ledger.NewTransaction(number, ledger.TransactionCredit, purchase.PaidAmount,
				purchase.PayingAccountID, nil, ledger.CategoryPurchasePayment, "",
				ledger.ReferencePurchase, purchase.ID)
			if err != nil {
				return err
			}
			if err := repos.TransactionRepo().Append(ctx, txn); err != nil {
				return err
			}
			if err := s.applyToAccount(ctx, repos, txn); err != nil {
				return err
			}
		}

		if purchase.BalanceDue.IsPositive() {
			number, err := repos.TransactionRepo().GenerateNumber(ctx)
			if err != nil {
				return err
			}
			txn, err := ledger.NewTransaction(number, ledger.TransactionCredit, purchase.BalanceDue,
				nil, &vendorID, ledger.CategoryVendorPayable, "",
				ledger.ReferencePurchase, purchase.ID)
			if err != nil {
				return err
			}
			if err := repos.TransactionRepo().Append(ctx, txn); err != nil {
				return err
			}
		}

		if purchase.AdvanceGoldGrams.IsPositive() {
			entry, err := ledger.NewGoldLedgerEntry(vendorID, ledger.GoldOut,
				purchase.AdvanceGoldGrams, purchase.AdvanceGoldPurity,
				ledger.PurposeAdvanceGold, ledger.ReferencePurchase, purchase.ID)
			if err != nil {
				return err
			}
			if err := repos.GoldLedgerRepo().Append(ctx, entry); err != nil {
				return err
			}
		}

		if purchase.ExchangeGoldGrams.IsPositive() {
			entry, err := ledger.NewGoldLedgerEntry(vendorID, ledger.GoldIn,
				purchase.ExchangeGoldGrams, purchase.ExchangeGoldPurity,
				ledger.PurposeExchange, ledger.ReferencePurchase, purchase.ID)
			if err != nil {
				return err
			}
			if err := repos.GoldLedgerRepo().Append(ctx, entry); err != nil {
				return err
			}
		}

		entry, err := audit.NewLogEntry("purchase", purchase.ID, audit.ActionFinalize, actor, audit.Changes{
			"number":      purchase.Number,
			"grand_total": purchase.GrandTotal.StringFixed(2),
			"balance_due": purchase.BalanceDue.StringFixed(2),
		})
		if err != nil {
			return err
		}
		if err := repos.AuditRepo().Append(ctx, entry); err != nil {
			return err
		}

		if err := repos.PurchaseRepo().SaveWithLock(ctx, purchase); err != nil {
			return err
		}

		finalized = purchase
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		if !errors.Is(err, shared.ErrAlreadyFinalized) {
			s.logger.Warn("purchase finalize failed",
				zap.String("purchase_id", purchaseID.String()),
				zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("purchase finalized",
		zap.String("purchase_id", finalized.ID.String()),
		zap.String("number", finalized.Number),
		zap.String("grand_total", finalized.GrandTotal.StringFixed(2)),
		zap.Bool("locked", finalized.Locked),
		zap.String("actor", actor.Name))

	response := ToPurchaseResponse(finalized)
	return &response, nil
}

// writeStockMovement appends one inventory ledger entry for a document line.
// A catalog category matched by normalized name gets its materialized totals
// updated in the same unit; a line with no catalog match still produces a
// movement, carrying a nil category and the best available name.
func (s *FinalizeService) writeStockMovement(ctx context.Context, repos TransactionalRepositories,
	movementType ledger.MovementType, categoryName, description string,
	qtyDelta, weightDelta decimal.Decimal, purity int,
	reference ledger.ReferenceType, referenceID uuid.UUID) error {

	var categoryID *uuid.UUID
	name := ledger.ResolveMovementName(categoryName, description)

	if categoryName != "" {
		category, err := repos.CategoryRepo().FindByNormalizedName(ctx, ledger.NormalizeCategoryName(categoryName))
		switch {
		case err == nil:
			categoryID = &category.ID
			name = category.Name
			category.ApplyMovement(qtyDelta, weightDelta)
			if err := repos.CategoryRepo().Save(ctx, category); err != nil {
				return err
			}
		case errors.Is(err, shared.ErrNotFound):
			// no catalog match, movement still gets written
		default:
			return err
		}
	}

	movement, err := ledger.NewStockMovement(movementType, categoryID, name,
		qtyDelta, weightDelta, purity, reference, referenceID)
	if err != nil {
		return err
	}
	return repos.StockMovementRepo().Append(ctx, movement)
}

// applyToAccount folds a transaction into its account's materialized balance
func (s *FinalizeService) applyToAccount(ctx context.Context, repos TransactionalRepositories, txn *ledger.Transaction) error {
	if txn.AccountID == nil {
		return nil
	}
	account, err := repos.AccountRepo().FindByID(ctx, *txn.AccountID)
	if err != nil {
		return err
	}
	account.ApplyTransaction(txn)
	return repos.AccountRepo().Save(ctx, account)
}
