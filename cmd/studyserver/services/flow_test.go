package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickhuo/read-or-switch-sub000/pkg/datamodel"
)

// Intake then retrieval: the condition assigned during demographics drives
// the story filter of the formal foraging phase without a second registry
// lookup.
func TestDemographicsThenConditionFilteredStories(t *testing.T) {
	mock := useMockDatabase(t)
	participantID := int64(42)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO participants`).
		WithArgs(participantID, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT part2_condition, part3_condition FROM participants`).
		WithArgs(participantID).
		WillReturnRows(conditionRows(0, 2))
	mock.ExpectExec(`DELETE FROM demographics`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO demographics`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	conditions, err := SubmitDemographics(demographicsRequest())
	require.NoError(t, err)
	require.Equal(t, 0, conditions.Part2Condition)

	// the assignment is cached, so retrieval goes straight to the join
	mock.ExpectQuery(`seg\.sp2_con_id = \?`).
		WithArgs("formal", 0).
		WillReturnRows(storyRows().AddRow(1, "Volcanoes", nil))

	stories, err := GetStories(datamodel.PhaseFormal, &participantID)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, "Volcanoes", stories[0].Title)
	expectationsWereMet(t, mock)
}

// Passage retrieval follows the part3 condition the same way
func TestConditionFilteredPassages(t *testing.T) {
	mock := useMockDatabase(t)
	participantID := int64(42)

	mock.ExpectQuery(`SELECT part2_condition, part3_condition FROM participants`).
		WithArgs(participantID).
		WillReturnRows(conditionRows(1, 3))
	mock.ExpectQuery(`WHERE phase = \? AND sp3_con_id = \?`).
		WithArgs("formal", 3).
		WillReturnRows(sqlmock.NewRows([]string{"passage_id", "pass_order", "title", "content"}).
			AddRow(4, 1, "Glaciers", "Ice moves slowly.").
			AddRow(5, 2, "Geysers", "Water under pressure."))

	passages, err := GetPassages(datamodel.PhaseFormal, &participantID)
	require.NoError(t, err)
	require.Len(t, passages, 2)
	assert.Equal(t, 1, passages[0].PassOrder)
	assert.Equal(t, "Geysers", passages[1].Title)
	expectationsWereMet(t, mock)
}
