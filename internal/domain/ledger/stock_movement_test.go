package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockMovement(t *testing.T) {
	referenceID := uuid.New()

	t.Run("outflow carries negative deltas", func(t *testing.T) {
		movement, err := NewStockMovement(MovementOut, nil, "Chains",
			decimal.NewFromInt(-1), decimal.NewFromInt(-20), 916,
			ReferenceInvoice, referenceID)
		require.NoError(t, err)

		assert.Equal(t, MovementOut, movement.MovementType)
		assert.Equal(t, "-20.000", movement.WeightDelta.StringFixed(3))
		assert.Equal(t, 916, movement.Purity)
	})

	t.Run("OUT with positive weight rejected", func(t *testing.T) {
		_, err := NewStockMovement(MovementOut, nil, "Chains",
			decimal.NewFromInt(1), decimal.NewFromInt(20), 916,
			ReferenceInvoice, referenceID)
		assertDomainCode(t, err, "INVALID_DELTA")
	})

	t.Run("IN with negative weight rejected", func(t *testing.T) {
		_, err := NewStockMovement(MovementIn, nil, "Chains",
			decimal.NewFromInt(-1), decimal.NewFromInt(-20), 916,
			ReferencePurchase, referenceID)
		assertDomainCode(t, err, "INVALID_DELTA")
	})

	t.Run("unknown direction rejected", func(t *testing.T) {
		_, err := NewStockMovement(MovementType("SIDEWAYS"), nil, "Chains",
			decimal.NewFromInt(1), decimal.NewFromInt(20), 916,
			ReferencePurchase, referenceID)
		assertDomainCode(t, err, "INVALID_MOVEMENT_TYPE")
	})

	t.Run("requires a causing document", func(t *testing.T) {
		_, err := NewStockMovement(MovementIn, nil, "Chains",
			decimal.NewFromInt(1), decimal.NewFromInt(20), 916,
			ReferencePurchase, uuid.Nil)
		assertDomainCode(t, err, "INVALID_REFERENCE")
	})

	t.Run("blank name falls back to the placeholder", func(t *testing.T) {
		movement, err := NewStockMovement(MovementIn, nil, "",
			decimal.NewFromInt(1), decimal.NewFromInt(20), 916,
			ReferencePurchase, referenceID)
		require.NoError(t, err)
		assert.Equal(t, FallbackCategoryName, movement.CategoryName)
	})
}

func TestResolveMovementName(t *testing.T) {
	assert.Equal(t, "Chains", ResolveMovementName("Chains", "22K gold chain"))
	assert.Equal(t, "22K gold chain", ResolveMovementName("", "22K gold chain"))
	assert.Equal(t, FallbackCategoryName, ResolveMovementName("", ""))
}
