package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGoldLedgerEntry(t *testing.T) {
	partyID := uuid.New()
	referenceID := uuid.New()

	t.Run("records weight to three decimals", func(t *testing.T) {
		entry, err := NewGoldLedgerEntry(partyID, GoldIn,
			decimal.RequireFromString("12.3456"), 916,
			PurposeExchange, ReferencePurchase, referenceID)
		require.NoError(t, err)

		assert.Equal(t, "12.346", entry.WeightGrams.StringFixed(3))
		assert.Equal(t, GoldIn, entry.Type)
		assert.Equal(t, PurposeExchange, entry.Purpose)
	})

	t.Run("requires a party", func(t *testing.T) {
		_, err := NewGoldLedgerEntry(uuid.Nil, GoldIn,
			decimal.NewFromInt(10), 916, PurposeExchange, ReferencePurchase, referenceID)
		assertDomainCode(t, err, "INVALID_PARTY")
	})

	t.Run("requires a positive weight", func(t *testing.T) {
		_, err := NewGoldLedgerEntry(partyID, GoldOut,
			decimal.Zero, 916, PurposeAdvanceGold, ReferencePurchase, referenceID)
		assertDomainCode(t, err, "INVALID_WEIGHT")
	})

	t.Run("requires a valid purity", func(t *testing.T) {
		_, err := NewGoldLedgerEntry(partyID, GoldOut,
			decimal.NewFromInt(10), 1000, PurposeAdvanceGold, ReferencePurchase, referenceID)
		assertDomainCode(t, err, "INVALID_PURITY")
	})

	t.Run("requires a known purpose", func(t *testing.T) {
		_, err := NewGoldLedgerEntry(partyID, GoldOut,
			decimal.NewFromInt(10), 916, GoldPurpose("gift"), ReferencePurchase, referenceID)
		assertDomainCode(t, err, "INVALID_PURPOSE")
	})

	t.Run("requires a causing document", func(t *testing.T) {
		_, err := NewGoldLedgerEntry(partyID, GoldOut,
			decimal.NewFromInt(10), 916, PurposeAdvanceGold, ReferencePurchase, uuid.Nil)
		assertDomainCode(t, err, "INVALID_REFERENCE")
	})
}
