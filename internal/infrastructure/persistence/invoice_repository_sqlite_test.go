package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/goldshop/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newSQLiteDB opens an in-memory database with the trade schema migrated,
// for tests that exercise real SQL round trips
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&trade.Invoice{}, &trade.InvoiceItem{}))
	return db
}

func newDraftInvoice(t *testing.T) *trade.Invoice {
	t.Helper()

	invoice, err := trade.NewInvoice("INV-2026-0001", nil, "Walk-in Customer")
	require.NoError(t, err)

	_, err = invoice.AddItem("Gold chain", "Chains",
		decimal.NewFromInt(1), decimal.NewFromInt(20), 916,
		decimal.NewFromInt(50), decimal.NewFromInt(100))
	require.NoError(t, err)

	return invoice
}

func TestGormInvoiceRepository_SaveAndFind(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	invoice := newDraftInvoice(t)
	require.NoError(t, repo.Save(ctx, invoice))

	loaded, err := repo.FindByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.Number, loaded.Number)
	assert.Len(t, loaded.Items, 1)
	assert.True(t, loaded.GrandTotal.Equal(decimal.NewFromInt(1100)))

	byNumber, err := repo.FindByNumber(ctx, "INV-2026-0001")
	require.NoError(t, err)
	assert.Equal(t, invoice.ID, byNumber.ID)
}

func TestGormInvoiceRepository_SaveWithLock(t *testing.T) {
	t.Run("increments version on success", func(t *testing.T) {
		db := newSQLiteDB(t)
		repo := NewGormInvoiceRepository(db)
		ctx := context.Background()

		invoice := newDraftInvoice(t)
		require.NoError(t, repo.Save(ctx, invoice))

		invoice.SetRemark("updated")
		require.NoError(t, repo.SaveWithLock(ctx, invoice))
		assert.Equal(t, 2, invoice.Version)

		loaded, err := repo.FindByID(ctx, invoice.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, loaded.Version)
		assert.Equal(t, "updated", loaded.Remark)
	})

	t.Run("stale version loses to the committed writer", func(t *testing.T) {
		db := newSQLiteDB(t)
		repo := NewGormInvoiceRepository(db)
		ctx := context.Background()

		invoice := newDraftInvoice(t)
		require.NoError(t, repo.Save(ctx, invoice))

		first, err := repo.FindByID(ctx, invoice.ID)
		require.NoError(t, err)
		second, err := repo.FindByID(ctx, invoice.ID)
		require.NoError(t, err)

		first.SetRemark("winner")
		require.NoError(t, repo.SaveWithLock(ctx, first))

		second.SetRemark("loser")
		err = repo.SaveWithLock(ctx, second)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		loaded, err := repo.FindByID(ctx, invoice.ID)
		require.NoError(t, err)
		assert.Equal(t, "winner", loaded.Remark)
	})
}

func TestGormInvoiceRepository_GenerateNumber(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	year := time.Now().Year()

	number, err := repo.GenerateNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("INV-%d-0001", year), number)

	invoice, err := trade.NewInvoice(number, nil, "Walk-in Customer")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, invoice))

	next, err := repo.GenerateNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("INV-%d-0002", year), next)
}

func TestGormInvoiceRepository_FindAllOpen(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	draft := newDraftInvoice(t)
	require.NoError(t, repo.Save(ctx, draft))

	finalized := newDraftInvoice(t)
	finalized.Number = "INV-2026-0002"
	require.NoError(t, finalized.Finalize(uuid.New()))
	require.NoError(t, repo.Save(ctx, finalized))

	open, err := repo.FindAllOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "INV-2026-0002", open[0].Number)
}
