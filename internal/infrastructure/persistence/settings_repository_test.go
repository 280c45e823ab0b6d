package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cecypo/powerpack-backend/internal/domain/partner"
	"github.com/cecypo/powerpack-backend/internal/domain/settings"
	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

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

func TestGormSettingsRepository_Get(t *testing.T) {
	t.Run("finds existing settings row", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSettingsRepository(gormDB)

		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "enable_pos_powerup", "enable_warnings"}).
			AddRow(settings.SingletonID, now, now, true, true)

		mock.ExpectQuery(`SELECT \* FROM "powerpack_settings" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(settings.SingletonID, 1).
			WillReturnRows(rows)

		record, err := repo.Get(context.Background())

		require.NoError(t, err)
		assert.True(t, record.EnablePOSPowerup)
		assert.True(t, record.EnableWarnings)
		assert.False(t, record.EnableCompactTheme)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSettingsRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "powerpack_settings" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(settings.SingletonID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.Get(context.Background())

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPartyRepository_FindByTaxID(t *testing.T) {
	t.Run("excludes the current party", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPartyRepository(gormDB)

		registered := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows([]string{"name", "kind", "display_name", "tax_id", "created_at"}).
			AddRow("CUST-0042", "customer", "ACME Ltd", "P051234567X", registered).
			AddRow("SUPP-0007", "supplier", "ACME Supplies", "P051234567X", registered)

		mock.ExpectQuery(`SELECT \* FROM "parties" WHERE tax_id = \$1 AND name <> \$2 ORDER BY created_at DESC`).
			WithArgs("P051234567X", "New Customer").
			WillReturnRows(rows)

		matches, err := repo.FindByTaxID(context.Background(), "P051234567X", "New Customer", "")

		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "CUST-0042", matches[0].PartyName)
		assert.Equal(t, "ACME Ltd", matches[0].DisplayName)
		assert.Equal(t, registered, matches[0].CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("restricts to one kind", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPartyRepository(gormDB)

		rows := sqlmock.NewRows([]string{"name", "kind", "display_name", "tax_id"}).
			AddRow("SUPP-0007", "supplier", "ACME Supplies", "P051234567X")

		mock.ExpectQuery(`SELECT \* FROM "parties" WHERE tax_id = \$1 AND kind = \$2 ORDER BY created_at DESC`).
			WithArgs("P051234567X", "supplier").
			WillReturnRows(rows)

		matches, err := repo.FindByTaxID(context.Background(), "P051234567X", "", partner.PartyKindSupplier)

		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, partner.PartyKindSupplier, matches[0].Kind)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPartyRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "parties" WHERE tax_id = \$1 ORDER BY created_at DESC`).
			WithArgs("GHOST-ID").
			WillReturnRows(sqlmock.NewRows([]string{"name", "kind", "display_name", "tax_id"}))

		matches, err := repo.FindByTaxID(context.Background(), "GHOST-ID", "", "")

		require.NoError(t, err)
		assert.Empty(t, matches)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
