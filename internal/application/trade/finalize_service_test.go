package trade

import (
	"context"
	"errors"
	"testing"

	"github.com/goldshop/backend/internal/domain/audit"
	"github.com/goldshop/backend/internal/domain/ledger"
	"github.com/goldshop/backend/internal/domain/partner"
	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/goldshop/backend/internal/domain/trade"
	"github.com/goldshop/backend/internal/domain/workshop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFinalizeService_FinalizeInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("commits stock, money ledger and audit together", func(t *testing.T) {
		f := newFixture()
		service := NewFinalizeService(f.scope, zap.NewNop(), 916)

		category := f.addCategory(t, "Chains")
		category.ApplyMovement(decimal.NewFromInt(5), decimal.NewFromInt(100))

		party := f.addParty(t, "Anita", partner.PartyCustomer)
		invoice := f.draftInvoice(t, &party.ID, party.Name)

		response, err := service.FinalizeInvoice(ctx, invoice.ID, staffActor())
		require.NoError(t, err)

		assert.Equal(t, "finalized", response.Status)
		assert.True(t, response.Locked)

		require.Len(t, f.movements.entries, 1)
		movement := f.movements.entries[0]
		assert.Equal(t, ledger.MovementOut, movement.MovementType)
		assert.Equal(t, "-20.000", movement.WeightDelta.StringFixed(3))
		assert.Equal(t, "-1", movement.QtyDelta.String())
		assert.Equal(t, 916, movement.Purity)
		require.NotNil(t, movement.CategoryID)
		assert.Equal(t, category.ID, *movement.CategoryID)
		assert.Equal(t, ledger.ReferenceInvoice, movement.Reference)
		assert.Equal(t, invoice.ID, movement.ReferenceID)

		// catalog totals moved in the same unit
		assert.Equal(t, "80.000", category.CurrentWeight.StringFixed(3))
		assert.Equal(t, "4", category.CurrentQty.String())

		require.Len(t, f.txns.entries, 1)
		txn := f.txns.entries[0]
		assert.Equal(t, ledger.TransactionDebit, txn.Type)
		assert.Equal(t, "1100.00", txn.Amount.StringFixed(2))
		assert.Equal(t, party.ID, *txn.PartyID)
		assert.Equal(t, ledger.CategorySalesInvoice, txn.Category)

		require.Len(t, f.audits.entries, 1)
		assert.Equal(t, audit.ActionFinalize, f.audits.entries[0].Action)
		assert.Equal(t, invoice.ID, f.audits.entries[0].RecordID)
	})

	t.Run("walk-in sale writes no money ledger entry", func(t *testing.T) {
		f := newFixture()
		service := NewFinalizeService(f.scope, zap.NewNop(), 916)

		invoice := f.draftInvoice(t, nil, "Walk-in Customer")

		_, err := service.FinalizeInvoice(ctx, invoice.ID, staffActor())
		require.NoError(t, err)

		assert.Len(t, f.movements.entries, 1)
		assert.Empty(t, f.txns.entries)
	})

	t.Run("missing catalog category still writes the movement", func(t *testing.T) {
		f := newFixture()
		service := NewFinalizeService(f.scope, zap.NewNop(), 916)

		invoice := f.draftInvoice(t, nil, "Walk-in Customer")

		_, err := service.FinalizeInvoice(ctx, invoice.ID, staffActor())
		require.NoError(t, err)

		require.Len(t, f.movements.entries, 1)
		movement := f.movements.entries[0]
		assert.Nil(t, movement.CategoryID)
		assert.Equal(t, "Chains", movement.CategoryName)
	})

	t.Run("locks a linked job card in the same unit", func(t *testing.T) {
		f := newFixture()
		service := NewFinalizeService(f.scope, zap.NewNop(), 916)

		jobCard, err := workshop.NewJobCard("JC-2026-0001", nil, "Anita")
		require.NoError(t, err)
		require.NoError(t, f.jobCards.Save(ctx, jobCard))

		invoice := f.draftInvoice(t, nil, "Anita")
		require.NoError(t, invoice.LinkJobCard(jobCard.ID))
		require.NoError(t, f.invoices.Save(ctx, invoice))

		actor := staffActor()
		_, err = service.FinalizeInvoice(ctx, invoice.ID, actor)
		require.NoError(t, err)

		assert.True(t, jobCard.Locked)
		assert.Equal(t, workshop.JobCardInvoiced, jobCard.Status)
		assert.Equal(t, invoice.ID, *jobCard.InvoiceID)
		assert.Equal(t, actor.UserID, *jobCard.LockedBy)
	})

	t.Run("weightless service line writes no stock movement", func(t *testing.T) {
		f := newFixture()
		service := NewFinalizeService(f.scope, zap.NewNop(), 916)

		invoice := f.draftInvoice(t, nil, "Walk-in Customer")
		_, err := invoice.AddItem("Polishing", "",
			decimal.NewFromInt(1), decimal.Zero, 0,
			decimal.Zero, decimal.NewFromInt(50))
		require.NoError(t, err)
		require.NoError(t, f.invoices.Save(ctx, invoice))

		_, err = service.FinalizeInvoice(ctx, invoice.ID, staffActor())
		require.NoError(t, err)

		require.Len(t, f.movements.entries, 1, "only the weighted line moves stock")
		assert.Equal(t, "-20.000", f.movements.entries[0].WeightDelta.StringFixed(3))
	})

	t.Run("second finalize fails and writes nothing more", func(t *testing.T) {
		f := newFixture()
		service := NewFinalizeService(f.scope, zap.NewNop(), 916)

		invoice := f.draftInvoice(t, nil, "Walk-in Customer")
		_, err := service.FinalizeInvoice(ctx, invoice.ID, staffActor())
		require.NoError(t, err)

		_, err = service.FinalizeInvoice(ctx, invoice.ID, staffActor())
		assert.True(t, errors.Is(err, shared.ErrAlreadyFinalized))

		assert.Len(t, f.movements.entries, 1)
		assert.Len(t, f.audits.entries, 1)
	})

	t.Run("empty draft rejected", func(t *testing.T) {
		f := newFixture()
		service := NewFinalizeService(f.scope, zap.NewNop(), 916)

		number, err := f.invoices.GenerateNumber(ctx)
		require.NoError(t, err)
		invoice, err := trade.NewInvoice(number, nil, "Walk-in Customer")
		require.NoError(t, err)
		require.NoError(t, f.invoices.Save(ctx, invoice))

		_, err = service.FinalizeInvoice(ctx, invoice.ID, staffActor())
		assertDomainCode(t, err, "NO_ITEMS")
		assert.Empty(t, f.movements.entries)
	})
}

func TestFinalizeService_FinalizePurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("stock is valued at the shop purity", func(t *testing.T) {
		f := newFixture()
		service := NewFinalizeService(f.scope, zap.NewNop(), 916)

		vendor := f.addParty(t, "Sharma Bullion", partner.PartyVendor)
		purchase := f.draftPurchase(t, vendor.ID, vendor.Name)

		_, err := service.FinalizePurchase(ctx, purchase.ID, staffActor())
		require.NoError(t, err)

		require.Len(t, f.movements.entries, 1)
		movement := f.movements.entries[0]
		assert.Equal(t, ledger.MovementIn, movement.MovementType)
		assert.Equal(t, "50.000", movement.WeightDelta.StringFixed(3))
		assert.Equal(t, 916, movement.Purity, "vendor claimed 750, valuation wins")
		assert.Equal(t, ledger.ReferencePurchase, movement.Reference)
	})

	t.Run("paid amount credits the paying account and the rest becomes a payable", func(t *testing.T) {
		f := newFixture()
		service := NewFinalizeService(f.scope, zap.NewNop(), 916)

		vendor := f.addParty(t, "Sharma Bullion", partner.PartyVendor)
		account := f.addAccount(t, "Cash Drawer", 1000)

		purchase := f.draftPurchase(t, vendor.ID, vendor.Name)
		require.NoError(t, purchase.SetPayment(decimal.NewFromInt(400), &account.ID))
		require.NoError(t, f.purchases.Save(ctx, purchase))

		response, err := service.FinalizePurchase(ctx, purchase.ID, staffActor())
		require.NoError(t, err)

		assert.Equal(t, "finalized", response.Status)
		assert.False(t, response.Locked, "open payable keeps the purchase unlocked")
		assert.Equal(t, "600.00", response.BalanceDue.StringFixed(2))

		require.Len(t, f.txns.entries, 2)
		paid := f.txns.entries[0]
		assert.Equal(t, ledger.TransactionCredit, paid.Type)
		assert.Equal(t, "400.00", paid.Amount.StringFixed(2))
		assert.Equal(t, account.ID, *paid.AccountID)
		assert.Nil(t, paid.PartyID, "paid amount is an account movement, not a vendor obligation")
		assert.Equal(t, ledger.CategoryPurchasePayment, paid.Category)

		payable := f.txns.entries[1]
		assert.Equal(t, ledger.TransactionCredit, payable.Type)
		assert.Equal(t, "600.00", payable.Amount.StringFixed(2))
		assert.Nil(t, payable.AccountID)
		assert.Equal(t, ledger.CategoryVendorPayable, payable.Category)
		assert.Equal(t, vendor.ID, *payable.PartyID)

		assert.Equal(t, "600.00", account.CurrentBalance.StringFixed(2))
	})

	t.Run("fully paid purchase locks at finalize", func(t *testing.T) {
		f := newFixture()
		service := NewFinalizeService(f.scope, zap.NewNop(), 916)

		vendor := f.addParty(t, "Sharma Bullion", partner.PartyVendor)
		account := f.addAccount(t, "Cash Drawer", 2000)

		purchase := f.draftPurchase(t, vendor.ID, vendor.Name)
		require.NoError(t, purchase.SetPayment(decimal.NewFromInt(1000), &account.ID))
		require.NoError(t, f.purchases.Save(ctx, purchase))

		response, err := service.FinalizePurchase(ctx, purchase.ID, staffActor())
		require.NoError(t, err)

		assert.True(t, response.Locked)
		require.Len(t, f.txns.entries, 1, "no payable entry when fully paid")
		assert.Equal(t, "1000.00", account.CurrentBalance.StringFixed(2))
	})

	t.Run("gold terms land in the vendor gold ledger", func(t *testing.T) {
		f := newFixture()
		service := NewFinalizeService(f.scope, zap.NewNop(), 916)

		vendor := f.addParty(t, "Sharma Bullion", partner.PartyVendor)
		purchase := f.draftPurchase(t, vendor.ID, vendor.Name)
		require.NoError(t, purchase.SetAdvanceGold(decimal.NewFromInt(10), 916))
		require.NoError(t, purchase.SetExchangeGold(decimal.NewFromInt(5), 999))
		require.NoError(t, f.purchases.Save(ctx, purchase))

		_, err := service.FinalizePurchase(ctx, purchase.ID, staffActor())
		require.NoError(t, err)

		require.Len(t, f.gold.entries, 2)
		advance := f.gold.entries[0]
		assert.Equal(t, ledger.GoldOut, advance.Type)
		assert.Equal(t, "10.000", advance.WeightGrams.StringFixed(3))
		assert.Equal(t, ledger.PurposeAdvanceGold, advance.Purpose)
		assert.Equal(t, vendor.ID, advance.PartyID)

		exchange := f.gold.entries[1]
		assert.Equal(t, ledger.GoldIn, exchange.Type)
		assert.Equal(t, "5.000", exchange.WeightGrams.StringFixed(3))
		assert.Equal(t, ledger.PurposeExchange, exchange.Purpose)
	})

	t.Run("second finalize fails", func(t *testing.T) {
		f := newFixture()
		service := NewFinalizeService(f.scope, zap.NewNop(), 916)

		vendor := f.addParty(t, "Sharma Bullion", partner.PartyVendor)
		purchase := f.draftPurchase(t, vendor.ID, vendor.Name)

		_, err := service.FinalizePurchase(ctx, purchase.ID, staffActor())
		require.NoError(t, err)

		_, err = service.FinalizePurchase(ctx, purchase.ID, staffActor())
		assert.True(t, errors.Is(err, shared.ErrAlreadyFinalized))
		assert.Len(t, f.movements.entries, 1)
	})

	t.Run("missing valuation config falls back to 916", func(t *testing.T) {
		f := newFixture()
		service := NewFinalizeService(f.scope, zap.NewNop(), 0)

		vendor := f.addParty(t, "Sharma Bullion", partner.PartyVendor)
		purchase := f.draftPurchase(t, vendor.ID, vendor.Name)

		_, err := service.FinalizePurchase(ctx, purchase.ID, staffActor())
		require.NoError(t, err)

		require.Len(t, f.movements.entries, 1)
		assert.Equal(t, 916, f.movements.entries[0].Purity)
	})
}

func TestFinalizeService_CategoryWeightRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	service := NewFinalizeService(f.scope, zap.NewNop(), 916)

	category := f.addCategory(t, "Chains")
	category.ApplyMovement(decimal.NewFromInt(10), decimal.NewFromInt(100))

	vendor := f.addParty(t, "Sharma Bullion", partner.PartyVendor)
	number, err := f.purchases.GenerateNumber(ctx)
	require.NoError(t, err)
	purchase, err := trade.NewPurchase(number, vendor.ID, vendor.Name)
	require.NoError(t, err)
	_, err = purchase.AddItem("Chain lot", "Chains",
		decimal.NewFromInt(2), decimal.NewFromInt(50), 750,
		decimal.NewFromInt(20))
	require.NoError(t, err)
	require.NoError(t, f.purchases.Save(ctx, purchase))

	_, err = service.FinalizePurchase(ctx, purchase.ID, staffActor())
	require.NoError(t, err)

	invoice := f.draftInvoice(t, nil, "Walk-in Customer")
	_, err = service.FinalizeInvoice(ctx, invoice.ID, staffActor())
	require.NoError(t, err)

	// 100 opening + 50 purchased - 20 sold, to 3 decimals
	assert.Equal(t, "130.000", category.CurrentWeight.StringFixed(3))
	assert.Equal(t, "11", category.CurrentQty.String())
}
