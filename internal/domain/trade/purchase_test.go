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

func newTestPurchase(t *testing.T) *Purchase {
	t.Helper()
	p, err := NewPurchase("PUR-2026-0001", uuid.New(), "Sharma Bullion")
	require.NoError(t, err)
	_, err = p.AddItem("Old gold lot", "Raw Gold",
		decimal.NewFromInt(1), decimal.NewFromInt(50), 750,
		decimal.NewFromInt(20))
	require.NoError(t, err)
	return p
}

func TestNewPurchase(t *testing.T) {
	t.Run("rejects a missing vendor", func(t *testing.T) {
		_, err := NewPurchase("PUR-2026-0001", uuid.Nil, "Sharma Bullion")
		assertDomainCode(t, err, "INVALID_VENDOR")
	})

	t.Run("line value is weight times rate", func(t *testing.T) {
		p := newTestPurchase(t)
		assert.Equal(t, "1000.00", p.GrandTotal.StringFixed(2))
		assert.Equal(t, "1000.00", p.BalanceDue.StringFixed(2))
		assert.Equal(t, PaymentStatusUnpaid, p.PaymentStatus)
	})

	t.Run("purchase items always need a valid purity", func(t *testing.T) {
		p := newTestPurchase(t)
		_, err := p.AddItem("Scrap", "", decimal.NewFromInt(1),
			decimal.NewFromInt(10), 0, decimal.NewFromInt(20))
		assertDomainCode(t, err, "INVALID_PURITY")
	})
}

func TestPurchase_SetPayment(t *testing.T) {
	t.Run("records the paid amount and paying account", func(t *testing.T) {
		p := newTestPurchase(t)
		accountID := uuid.New()

		require.NoError(t, p.SetPayment(decimal.NewFromInt(400), &accountID))

		assert.Equal(t, "600.00", p.BalanceDue.StringFixed(2))
		assert.Equal(t, PaymentStatusPartial, p.PaymentStatus)
		assert.Equal(t, accountID, *p.PayingAccountID)
	})

	t.Run("a positive payment needs an account", func(t *testing.T) {
		p := newTestPurchase(t)
		err := p.SetPayment(decimal.NewFromInt(400), nil)
		assertDomainCode(t, err, "MISSING_ACCOUNT")
	})

	t.Run("cannot exceed the grand total", func(t *testing.T) {
		p := newTestPurchase(t)
		accountID := uuid.New()
		err := p.SetPayment(decimal.NewFromInt(1500), &accountID)
		assertDomainCode(t, err, "OVERPAYMENT")
	})

	t.Run("cannot be negative", func(t *testing.T) {
		p := newTestPurchase(t)
		err := p.SetPayment(decimal.NewFromInt(-1), nil)
		assertDomainCode(t, err, "INVALID_AMOUNT")
	})
}

func TestPurchase_GoldTerms(t *testing.T) {
	t.Run("records advance and exchange gold", func(t *testing.T) {
		p := newTestPurchase(t)

		require.NoError(t, p.SetAdvanceGold(decimal.RequireFromString("10.5"), 916))
		require.NoError(t, p.SetExchangeGold(decimal.NewFromInt(5), 999))

		assert.Equal(t, "10.500", p.AdvanceGoldGrams.StringFixed(3))
		assert.Equal(t, 916, p.AdvanceGoldPurity)
		assert.Equal(t, "5.000", p.ExchangeGoldGrams.StringFixed(3))
		assert.Equal(t, 999, p.ExchangeGoldPurity)
	})

	t.Run("positive weight needs a valid purity", func(t *testing.T) {
		p := newTestPurchase(t)
		err := p.SetAdvanceGold(decimal.NewFromInt(10), 0)
		assertDomainCode(t, err, "INVALID_PURITY")
	})
}

func TestPurchase_Finalize(t *testing.T) {
	t.Run("unpaid balance keeps the document unlocked", func(t *testing.T) {
		p := newTestPurchase(t)
		accountID := uuid.New()
		require.NoError(t, p.SetPayment(decimal.NewFromInt(400), &accountID))

		require.NoError(t, p.Finalize(uuid.New()))

		assert.True(t, p.IsFinalized())
		assert.False(t, p.Locked)
		assert.Equal(t, "600.00", p.BalanceDue.StringFixed(2))
	})

	t.Run("a fully paid purchase locks immediately", func(t *testing.T) {
		p := newTestPurchase(t)
		accountID := uuid.New()
		require.NoError(t, p.SetPayment(decimal.NewFromInt(1000), &accountID))

		actor := uuid.New()
		require.NoError(t, p.Finalize(actor))

		assert.True(t, p.Locked)
		assert.Equal(t, actor, *p.LockedBy)
	})

	t.Run("rejects an empty purchase", func(t *testing.T) {
		p, err := NewPurchase("PUR-2026-0002", uuid.New(), "Sharma Bullion")
		require.NoError(t, err)
		assertDomainCode(t, p.Finalize(uuid.New()), "NO_ITEMS")
	})

	t.Run("second finalize fails", func(t *testing.T) {
		p := newTestPurchase(t)
		require.NoError(t, p.Finalize(uuid.New()))
		assert.True(t, errors.Is(p.Finalize(uuid.New()), shared.ErrAlreadyFinalized))
	})
}

func TestPurchase_SettleBalance(t *testing.T) {
	newFinalized := func(t *testing.T) *Purchase {
		p := newTestPurchase(t)
		require.NoError(t, p.Finalize(uuid.New()))
		return p
	}

	t.Run("drafts carry no settleable payable", func(t *testing.T) {
		p := newTestPurchase(t)
		err := p.SettleBalance(decimal.NewFromInt(100), uuid.New())
		assertDomainCode(t, err, "INVALID_STATE")
	})

	t.Run("partial settlement keeps the purchase unlocked", func(t *testing.T) {
		p := newFinalized(t)

		require.NoError(t, p.SettleBalance(decimal.NewFromInt(400), uuid.New()))

		assert.Equal(t, "600.00", p.BalanceDue.StringFixed(2))
		assert.Equal(t, PaymentStatusPartial, p.PaymentStatus)
		assert.False(t, p.Locked)
	})

	t.Run("locks once the balance reaches zero", func(t *testing.T) {
		p := newFinalized(t)
		actor := uuid.New()

		require.NoError(t, p.SettleBalance(decimal.NewFromInt(1000), actor))

		assert.True(t, p.BalanceDue.IsZero())
		assert.Equal(t, PaymentStatusPaid, p.PaymentStatus)
		assert.True(t, p.Locked)
		assert.Equal(t, actor, *p.LockedBy)
	})

	t.Run("rejects settlement over the payable", func(t *testing.T) {
		p := newFinalized(t)
		err := p.SettleBalance(decimal.NewFromInt(1001), uuid.New())
		assertDomainCode(t, err, "OVERPAYMENT")
	})
}
