package migrations

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationVersionsStrictlyIncreasing(t *testing.T) {
	last := 0
	for _, m := range migrationsList {
		assert.Greater(t, m.version, last, "migration %q out of order", m.name)
		last = m.version
	}
}

// A fully migrated schema triggers no DDL
func TestMigrateNoopWhenUpToDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	latest := migrationsList[len(migrationsList)-1].version

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT MAX\(version\) FROM schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(latest))

	require.NoError(t, Migrate(db))
	require.NoError(t, mock.ExpectationsWereMet())
}

// From a schema at version 1 only the newer migrations run, each recorded
func TestMigrateAppliesPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT MAX\(version\) FROM schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(1))

	mock.ExpectExec(`ALTER TABLE letter_responses`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).
		WithArgs(2, "letter comparison revision key").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, Migrate(db))
	require.NoError(t, mock.ExpectationsWereMet())
}

// An empty database walks the whole list in order
func TestMigrateFreshDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT MAX\(version\) FROM schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

	// initial schema: one CREATE TABLE per study table
	for range initialSchemaStatements {
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS`).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec(`INSERT INTO schema_migrations`).
		WithArgs(1, "initial study schema").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(`ALTER TABLE letter_responses`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).
		WithArgs(2, "letter comparison revision key").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, Migrate(db))
	require.NoError(t, mock.ExpectationsWereMet())
}
