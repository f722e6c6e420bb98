package trade

import (
	"context"
	"fmt"

	"github.com/goldshop/backend/internal/domain/ledger"
	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/goldshop/backend/internal/domain/trade"
	"github.com/goldshop/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService applies payments against finalized documents. Every payment
// runs in one atomic unit covering the document, the money ledger, the
// affected account balance and, for gold exchange, the party's gold ledger.
type PaymentService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewPaymentService creates a PaymentService
func NewPaymentService(scope TransactionScope, logger *zap.Logger) *PaymentService {
	return &PaymentService{scope: scope, logger: logger}
}

// AddInvoicePayment records a payment against a finalized invoice. Money
// modes need a receiving account; GOLD_EXCHANGE consumes the party's gold
// balance at the quoted rate instead. Validation runs mode first, then
// amounts, then account and party requirements, then the balance guard.
func (s *PaymentService) AddInvoicePayment(ctx context.Context, invoiceID uuid.UUID, req AddPaymentRequest, actor shared.Identity) (*InvoiceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "add_payment")
	defer span.End()
	telemetry.SetAttribute(span, "invoice_id", invoiceID.String())
	telemetry.SetAttribute(span, "mode", req.Mode)

	mode := trade.PaymentMode(req.Mode)
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_MODE",
			fmt.Sprintf("Unknown payment mode %q", req.Mode))
	}

	var updated *trade.Invoice
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if !invoice.IsFinalized() {
			return shared.NewDomainError("INVALID_STATE", "Payments apply to finalized invoices only")
		}

		if mode == trade.PaymentModeGoldExchange {
			err = s.applyGoldExchange(ctx, repos, invoice, req)
		} else {
			err = s.applyMoneyPayment(ctx, repos, invoice, mode, req)
		}
		if err != nil {
			return err
		}

		if err := repos.InvoiceRepo().SaveWithLock(ctx, invoice); err != nil {
			return err
		}

		updated = invoice
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("invoice payment recorded",
		zap.String("invoice_id", updated.ID.String()),
		zap.String("mode", string(mode)),
		zap.String("payment_status", string(updated.PaymentStatus)),
		zap.String("actor", actor.Name))

	response := ToInvoiceResponse(updated)
	return &response, nil
}

func (s *PaymentService) applyMoneyPayment(ctx context.Context, repos TransactionalRepositories, invoice *trade.Invoice, mode trade.PaymentMode, req AddPaymentRequest) error {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if req.AccountID == nil {
		return shared.NewDomainError("MISSING_ACCOUNT", "A receiving account is required for a money payment")
	}

	if err := invoice.ApplyPayment(req.Amount); err != nil {
		return err
	}

	number, err := repos.TransactionRepo().GenerateNumber(ctx)
	if err != nil {
		return err
	}
	txn, err := ledger.NewTransaction(number, ledger.TransactionDebit, req.Amount,
		req.AccountID, invoice.PartyID, ledger.CategoryInvoicePayment, string(mode),
		ledger.ReferenceInvoice, invoice.ID)
	if err != nil {
		return err
	}
	if err := repos.TransactionRepo().Append(ctx, txn); err != nil {
		return err
	}

	account, err := repos.AccountRepo().FindByID(ctx, *req.AccountID)
	if err != nil {
		return err
	}
	account.ApplyTransaction(txn)
	return repos.AccountRepo().Save(ctx, account)
}

// applyGoldExchange settles part of the balance with gold from the party's
// ledger. The monetary value is weight times the quoted rate; the party must
// actually hold that much gold with the shop.
func (s *PaymentService) applyGoldExchange(ctx context.Context, repos TransactionalRepositories, invoice *trade.Invoice, req AddPaymentRequest) error {
	if invoice.IsWalkIn() {
		return shared.NewDomainError("MISSING_PARTY", "Gold exchange needs a saved party with a gold ledger")
	}
	if req.GoldWeightGrams.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_WEIGHT", "Gold exchange weight must be positive")
	}
	if req.GoldRatePerGram == nil || req.GoldRatePerGram.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_RATE", "Gold exchange needs a positive rate per gram")
	}

	weight := req.GoldWeightGrams.Round(3)
	value := weight.Mul(*req.GoldRatePerGram).Round(2)

	in, out, err := repos.GoldLedgerRepo().SumByParty(ctx, *invoice.PartyID)
	if err != nil {
		return err
	}
	available := in.Sub(out).Round(3)
	if available.LessThan(weight) {
		return shared.NewDomainError("INSUFFICIENT_GOLD",
			fmt.Sprintf("Gold exchange of %s g exceeds the party's available balance of %s g",
				weight.StringFixed(3), available.StringFixed(3)))
	}

	if err := invoice.ApplyPayment(value); err != nil {
		return err
	}

	entry, err := ledger.NewGoldLedgerEntry(*invoice.PartyID, ledger.GoldOut,
		weight, req.GoldPurity, ledger.PurposeExchange, ledger.ReferenceInvoice, invoice.ID)
	if err != nil {
		return err
	}
	if err := repos.GoldLedgerRepo().Append(ctx, entry); err != nil {
		return err
	}

	number, err := repos.TransactionRepo().GenerateNumber(ctx)
	if err != nil {
		return err
	}
	txn, err := ledger.NewTransaction(number, ledger.TransactionDebit, value,
		nil, invoice.PartyID, ledger.CategoryInvoicePayment, string(trade.PaymentModeGoldExchange),
		ledger.ReferenceInvoice, invoice.ID)
	if err != nil {
		return err
	}
	return repos.TransactionRepo().Append(ctx, txn)
}

// SettlePurchase pays down an open vendor payable from an account. The
// purchase locks once its balance reaches zero.
func (s *PaymentService) SettlePurchase(ctx context.Context, purchaseID uuid.UUID, req SettlePurchaseRequest, actor shared.Identity) (*PurchaseResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase", "settle")
	defer span.End()
	telemetry.SetAttribute(span, "purchase_id", purchaseID.String())

	var updated *trade.Purchase
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.PurchaseRepo().FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}

		if err := purchase.SettleBalance(req.Amount, actor.UserID); err != nil {
			return err
		}

		number, err := repos.TransactionRepo().GenerateNumber(ctx)
		if err != nil {
			return err
		}
		accountID := req.AccountID
		txn, err := ledger.NewTransaction(number, ledger.TransactionCredit, req.Amount,
			&accountID, nil, ledger.CategoryPurchasePayment, "",
			ledger.ReferencePurchase, purchase.ID)
		if err != nil {
			return err
		}
		if err := repos.TransactionRepo().Append(ctx, txn); err != nil {
			return err
		}

		account, err := repos.AccountRepo().FindByID(ctx, accountID)
		if err != nil {
			return err
		}
		account.ApplyTransaction(txn)
		if err := repos.AccountRepo().Save(ctx, account); err != nil {
			return err
		}

		if err := repos.PurchaseRepo().SaveWithLock(ctx, purchase); err != nil {
			return err
		}

		updated = purchase
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("purchase settled",
		zap.String("purchase_id", updated.ID.String()),
		zap.String("balance_due", updated.BalanceDue.StringFixed(2)),
		zap.Bool("locked", updated.Locked),
		zap.String("actor", actor.Name))

	response := ToPurchaseResponse(updated)
	return &response, nil
}
