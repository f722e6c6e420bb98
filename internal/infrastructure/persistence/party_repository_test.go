package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormPartyRepository_FindByID(t *testing.T) {
	t.Run("finds existing party", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPartyRepository(db)

		partyID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "name", "party_type", "phone", "active"}).
			AddRow(partyID, "Ramesh Jewellers", "vendor", "9876500001", true)

		mock.ExpectQuery(`SELECT \* FROM "parties" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(partyID, 1).
			WillReturnRows(rows)

		party, err := repo.FindByID(context.Background(), partyID)

		assert.NoError(t, err)
		assert.NotNil(t, party)
		assert.Equal(t, partyID, party.ID)
		assert.Equal(t, "Ramesh Jewellers", party.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing party", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPartyRepository(db)

		partyID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "parties" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(partyID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		party, err := repo.FindByID(context.Background(), partyID)

		assert.Error(t, err)
		assert.Nil(t, party)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryCategoryRepository_FindByNormalizedName(t *testing.T) {
	t.Run("returns ErrNotFound when catalog has no match", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInventoryCategoryRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "inventory_categories" WHERE normalized_name = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("gold rings", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		category, err := repo.FindByNormalizedName(context.Background(), "gold rings")

		assert.Nil(t, category)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
