package migrations

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

/*
	To add a new migration:
	1. Create a function V<MAJOR>x<MINOR>x<PATCH> in this package, accepting
	   *sql.DB and returning an error.
	2. Append it to migrationsList below with the next version number.
	Migrations run in order at startup, before the REST API accepts requests.
	There is no runtime schema patching anywhere else: a missing column is a
	deployment error, not something a request handler repairs.
*/

type migration struct {
	apply   func(db *sql.DB) error
	name    string
	version int
}

var migrationsList = []migration{
	{version: 1, name: "initial study schema", apply: V0x1x0},
	{version: 2, name: "letter comparison revision key", apply: V0x1x1},
}

// Migrate applies every migration newer than the recorded schema version
func Migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT NOT NULL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	var current sql.NullInt64
	err = db.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrationsList {
		if current.Valid && int64(m.version) <= current.Int64 {
			continue
		}
		zap.S().Infof("Applying migration %d (%s)", m.version, m.name)
		err = m.apply(db)
		if err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}
		_, err = db.Exec(`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.version, m.name)
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}
	}
	return nil
}

func execAll(db *sql.DB, statements []string) error {
	for _, statement := range statements {
		_, err := db.Exec(statement)
		if err != nil {
			return fmt.Errorf("%w while executing %s", err, statement)
		}
	}
	return nil
}
