package trade

import (
	"errors"
	"testing"

	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(t *testing.T) *Invoice {
	t.Helper()
	inv, err := NewInvoice("INV-2026-0001", nil, "Walk-in Customer")
	require.NoError(t, err)
	return inv
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestNewInvoice(t *testing.T) {
	t.Run("creates a draft for a walk-in customer", func(t *testing.T) {
		inv := newTestInvoice(t)

		assert.True(t, inv.IsDraft())
		assert.True(t, inv.IsWalkIn())
		assert.True(t, inv.CanModify())
		assert.Equal(t, PaymentStatusUnpaid, inv.PaymentStatus)
		assert.False(t, inv.Locked)
	})

	t.Run("rejects an empty number", func(t *testing.T) {
		_, err := NewInvoice("", nil, "Walk-in Customer")
		assertDomainCode(t, err, "INVALID_NUMBER")
	})

	t.Run("rejects an empty customer name", func(t *testing.T) {
		_, err := NewInvoice("INV-2026-0001", nil, "")
		assertDomainCode(t, err, "INVALID_PARTY_NAME")
	})

	t.Run("keeps the saved party reference", func(t *testing.T) {
		partyID := uuid.New()
		inv, err := NewInvoice("INV-2026-0002", &partyID, "Anita")
		require.NoError(t, err)
		assert.False(t, inv.IsWalkIn())
		assert.Equal(t, partyID, *inv.PartyID)
	})
}

func TestInvoice_AddItem(t *testing.T) {
	t.Run("line total is weight times rate plus making charge", func(t *testing.T) {
		inv := newTestInvoice(t)

		item, err := inv.AddItem("Gold chain", "Chains",
			decimal.NewFromInt(1), decimal.NewFromInt(20), 916,
			decimal.NewFromInt(50), decimal.NewFromInt(100))
		require.NoError(t, err)

		assert.True(t, item.LineTotal.Equal(decimal.NewFromInt(1100)),
			"got %s", item.LineTotal)
		assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(1100)))
		assert.True(t, inv.GrandTotal.Equal(decimal.NewFromInt(1100)))
		assert.True(t, inv.BalanceDue.Equal(decimal.NewFromInt(1100)))
	})

	t.Run("weight rounds to three decimals", func(t *testing.T) {
		inv := newTestInvoice(t)

		item, err := inv.AddItem("Ring", "Rings",
			decimal.NewFromInt(1), decimal.RequireFromString("5.12345"), 916,
			decimal.NewFromInt(100), decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, "5.123", item.WeightGrams.StringFixed(3))
	})

	t.Run("weightless service line needs no purity", func(t *testing.T) {
		inv := newTestInvoice(t)

		item, err := inv.AddItem("Polishing", "",
			decimal.NewFromInt(1), decimal.Zero, 0,
			decimal.Zero, decimal.NewFromInt(50))
		require.NoError(t, err)
		assert.True(t, item.LineTotal.Equal(decimal.NewFromInt(50)))
	})

	t.Run("rejects invalid lines", func(t *testing.T) {
		inv := newTestInvoice(t)
		one := decimal.NewFromInt(1)

		_, err := inv.AddItem("", "", one, decimal.NewFromInt(5), 916, one, one)
		assertDomainCode(t, err, "INVALID_ITEM")

		_, err = inv.AddItem("Ring", "", decimal.Zero, decimal.NewFromInt(5), 916, one, one)
		assertDomainCode(t, err, "INVALID_QUANTITY")

		_, err = inv.AddItem("Ring", "", one, decimal.NewFromInt(-5), 916, one, one)
		assertDomainCode(t, err, "INVALID_WEIGHT")

		_, err = inv.AddItem("Ring", "", one, decimal.NewFromInt(5), 1200, one, one)
		assertDomainCode(t, err, "INVALID_PURITY")

		_, err = inv.AddItem("Ring", "", one, decimal.NewFromInt(5), 916, one.Neg(), one)
		assertDomainCode(t, err, "INVALID_RATE")

		_, err = inv.AddItem("Ring", "", one, decimal.NewFromInt(5), 916, one, one.Neg())
		assertDomainCode(t, err, "INVALID_MAKING_CHARGE")
	})
}

func TestInvoice_RemoveItem(t *testing.T) {
	inv := newTestInvoice(t)
	item, err := inv.AddItem("Gold chain", "Chains",
		decimal.NewFromInt(1), decimal.NewFromInt(20), 916,
		decimal.NewFromInt(50), decimal.NewFromInt(100))
	require.NoError(t, err)

	t.Run("removes and recalculates", func(t *testing.T) {
		require.NotNil(t, inv.GetItem(item.ID))
		require.NoError(t, inv.RemoveItem(item.ID))
		assert.Nil(t, inv.GetItem(item.ID))
		assert.Equal(t, 0, inv.ItemCount())
		assert.True(t, inv.GrandTotal.IsZero())
	})

	t.Run("unknown item id", func(t *testing.T) {
		err := inv.RemoveItem(uuid.New())
		assertDomainCode(t, err, "ITEM_NOT_FOUND")
	})
}

func TestInvoice_SetTaxRate(t *testing.T) {
	inv := newTestInvoice(t)
	_, err := inv.AddItem("Gold chain", "Chains",
		decimal.NewFromInt(1), decimal.NewFromInt(20), 916,
		decimal.NewFromInt(50), decimal.NewFromInt(100))
	require.NoError(t, err)

	t.Run("recalculates tax and grand total", func(t *testing.T) {
		require.NoError(t, inv.SetTaxRate(decimal.NewFromInt(5)))

		assert.Equal(t, "55.00", inv.TaxAmount.StringFixed(2))
		assert.Equal(t, "1155.00", inv.GrandTotal.StringFixed(2))
		assert.Equal(t, "1155.00", inv.BalanceDue.StringFixed(2))
	})

	t.Run("rejects a negative rate", func(t *testing.T) {
		err := inv.SetTaxRate(decimal.NewFromInt(-1))
		assertDomainCode(t, err, "INVALID_TAX_RATE")
	})
}

func TestInvoice_ApplyPayment(t *testing.T) {
	newFinalized := func(t *testing.T) *Invoice {
		inv := newTestInvoice(t)
		_, err := inv.AddItem("Gold chain", "Chains",
			decimal.NewFromInt(1), decimal.NewFromInt(20), 916,
			decimal.NewFromInt(50), decimal.NewFromInt(100))
		require.NoError(t, err)
		require.NoError(t, inv.Finalize(uuid.New()))
		return inv
	}

	t.Run("moves through partial to paid", func(t *testing.T) {
		inv := newFinalized(t)

		require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(400)))
		assert.Equal(t, PaymentStatusPartial, inv.PaymentStatus)
		assert.Equal(t, "700.00", inv.BalanceDue.StringFixed(2))

		require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(700)))
		assert.Equal(t, PaymentStatusPaid, inv.PaymentStatus)
		assert.True(t, inv.BalanceDue.IsZero())
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		inv := newFinalized(t)
		err := inv.ApplyPayment(decimal.Zero)
		assertDomainCode(t, err, "INVALID_AMOUNT")
	})

	t.Run("rejects overpayment with both figures", func(t *testing.T) {
		inv := newFinalized(t)
		err := inv.ApplyPayment(decimal.NewFromInt(1200))
		assertDomainCode(t, err, "OVERPAYMENT")
		assert.Contains(t, err.Error(), "1200.00")
		assert.Contains(t, err.Error(), "1100.00")
	})
}

func TestInvoice_Finalize(t *testing.T) {
	t.Run("flips to finalized and locks", func(t *testing.T) {
		inv := newTestInvoice(t)
		_, err := inv.AddItem("Gold chain", "Chains",
			decimal.NewFromInt(1), decimal.NewFromInt(20), 916,
			decimal.NewFromInt(50), decimal.NewFromInt(100))
		require.NoError(t, err)

		actor := uuid.New()
		require.NoError(t, inv.Finalize(actor))

		assert.True(t, inv.IsFinalized())
		assert.True(t, inv.Locked)
		assert.Equal(t, actor, *inv.FinalizedBy)
		assert.NotNil(t, inv.FinalizedAt)
		assert.False(t, inv.CanModify())
	})

	t.Run("rejects an empty invoice", func(t *testing.T) {
		inv := newTestInvoice(t)
		err := inv.Finalize(uuid.New())
		assertDomainCode(t, err, "NO_ITEMS")
		assert.True(t, inv.IsDraft())
	})

	t.Run("second finalize fails", func(t *testing.T) {
		inv := newTestInvoice(t)
		_, err := inv.AddItem("Gold chain", "Chains",
			decimal.NewFromInt(1), decimal.NewFromInt(20), 916,
			decimal.NewFromInt(50), decimal.NewFromInt(100))
		require.NoError(t, err)
		require.NoError(t, inv.Finalize(uuid.New()))

		err = inv.Finalize(uuid.New())
		assert.True(t, errors.Is(err, shared.ErrAlreadyFinalized))
	})

	t.Run("finalized invoice refuses edits", func(t *testing.T) {
		inv := newTestInvoice(t)
		item, err := inv.AddItem("Gold chain", "Chains",
			decimal.NewFromInt(1), decimal.NewFromInt(20), 916,
			decimal.NewFromInt(50), decimal.NewFromInt(100))
		require.NoError(t, err)
		require.NoError(t, inv.Finalize(uuid.New()))

		_, err = inv.AddItem("Ring", "Rings",
			decimal.NewFromInt(1), decimal.NewFromInt(5), 916,
			decimal.NewFromInt(50), decimal.Zero)
		assertDomainCode(t, err, "INVALID_STATE")

		assertDomainCode(t, inv.RemoveItem(item.ID), "INVALID_STATE")
		assertDomainCode(t, inv.SetTaxRate(decimal.NewFromInt(5)), "INVALID_STATE")
		assertDomainCode(t, inv.LinkJobCard(uuid.New()), "INVALID_STATE")
	})
}
