package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/database"
)

// useMockDatabase swaps the global pool for a sqlmock connection and
// restores it when the test ends. The condition cache is flushed so
// earlier tests cannot leak assignments into later ones.
func useMockDatabase(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock connection: %v", err)
	}

	previous := database.Db
	database.Db = db
	FlushConditionCache()

	t.Cleanup(func() {
		database.Db = previous
		_ = db.Close()
		FlushConditionCache()
	})
	return mock
}

func expectationsWereMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func conditionRows(part2, part3 any) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"part2_condition", "part3_condition"}).AddRow(part2, part3)
}

func questionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"question_id", "item_order", "question",
		"option_a", "option_b", "option_c", "option_d", "answer",
	})
}
