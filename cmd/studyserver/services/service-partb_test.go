package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/models"
	"github.com/nickhuo/read-or-switch-sub000/pkg/datamodel"
)

func storyRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"story_id", "title", "topic_id"})
}

func segmentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"segment_id", "story_id", "segment_order", "content"})
}

// Formal retrieval joins stories to segments carrying the participant's
// stored part2 condition.
func TestGetStoriesFormalFiltersByCondition(t *testing.T) {
	mock := useMockDatabase(t)
	participantID := int64(42)

	mock.ExpectQuery(`SELECT part2_condition, part3_condition FROM participants`).
		WithArgs(participantID).
		WillReturnRows(conditionRows(1, 2))
	mock.ExpectQuery(`INNER JOIN story_segments seg ON seg\.story_id = s\.story_id\s+WHERE s\.phase = \? AND seg\.sp2_con_id = \?`).
		WithArgs("formal", 1).
		WillReturnRows(storyRows().AddRow(2, "Deep Sea Vents", 7))

	stories, err := GetStories(datamodel.PhaseFormal, &participantID)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, 2, stories[0].StoryID)
	expectationsWereMet(t, mock)
}

// An unassigned participant gets the unfiltered set, not an error
func TestGetStoriesUnassignedFallsBackUnfiltered(t *testing.T) {
	mock := useMockDatabase(t)
	participantID := int64(99)

	mock.ExpectQuery(`SELECT part2_condition, part3_condition FROM participants`).
		WithArgs(participantID).
		WillReturnRows(conditionRows(nil, nil))
	mock.ExpectQuery(`SELECT story_id, title, topic_id FROM stories\s+WHERE phase = \?`).
		WithArgs("formal").
		WillReturnRows(storyRows().AddRow(1, "Volcanoes", nil).AddRow(2, "Deep Sea Vents", nil))

	stories, err := GetStories(datamodel.PhaseFormal, &participantID)
	require.NoError(t, err)
	assert.Len(t, stories, 2)
	expectationsWereMet(t, mock)
}

// Practice retrieval never consults the condition registry
func TestGetStoriesPracticeUnfiltered(t *testing.T) {
	mock := useMockDatabase(t)

	mock.ExpectQuery(`SELECT story_id, title, topic_id FROM stories\s+WHERE phase = \?`).
		WithArgs("practice").
		WillReturnRows(storyRows())

	stories, err := GetStories(datamodel.PhasePractice, nil)
	require.NoError(t, err)
	assert.Empty(t, stories)
	expectationsWereMet(t, mock)
}

// The order column is text; retrieval must cast it to unsigned so "10"
// sorts after "2", not between "1" and "2".
func TestGetSegmentsNumericOrdering(t *testing.T) {
	mock := useMockDatabase(t)

	mock.ExpectQuery(`ORDER BY CAST\(segment_order AS UNSIGNED\) ASC`).
		WithArgs(3).
		WillReturnRows(segmentRows().
			AddRow(31, 3, 1, "first").
			AddRow(30, 3, 2, "second").
			AddRow(32, 3, 10, "last"))

	segments, err := GetSegments(3, nil)
	require.NoError(t, err)
	require.Len(t, segments, 3)
	assert.Equal(t, []int{1, 2, 10}, []int{segments[0].SegmentOrder, segments[1].SegmentOrder, segments[2].SegmentOrder})
	expectationsWereMet(t, mock)
}

func TestGetSegmentsConditionFilter(t *testing.T) {
	mock := useMockDatabase(t)
	participantID := int64(42)

	mock.ExpectQuery(`SELECT part2_condition, part3_condition FROM participants`).
		WithArgs(participantID).
		WillReturnRows(conditionRows(0, 1))
	mock.ExpectQuery(`WHERE story_id = \? AND sp2_con_id = \?`).
		WithArgs(3, 0).
		WillReturnRows(segmentRows().AddRow(31, 3, 1, "first"))

	segments, err := GetSegments(3, &participantID)
	require.NoError(t, err)
	assert.Len(t, segments, 1)
	expectationsWereMet(t, mock)
}

func TestRecordPartBActionRejectsUnknownAction(t *testing.T) {
	useMockDatabase(t)

	err := RecordPartBAction(models.PartBActionRequest{
		ParticipantID: 42,
		StoryID:       3,
		Action:        "teleport",
	})
	assert.Error(t, err)
}

func TestRecordPartBAction(t *testing.T) {
	mock := useMockDatabase(t)

	mock.ExpectExec(`INSERT INTO part_b_actions`).
		WithArgs(int64(42), 3, nil, "switch", nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := RecordPartBAction(models.PartBActionRequest{
		ParticipantID: 42,
		StoryID:       3,
		Action:        "switch",
	})
	assert.NoError(t, err)
	expectationsWereMet(t, mock)
}

// Submission targets the phase-scoped table picked by the typed lookup
func TestSubmitPartBPhaseTableSelection(t *testing.T) {
	mock := useMockDatabase(t)

	isCorrect := true
	mock.ExpectExec(`INSERT INTO part_b_responses_formal \(participant_id, story_id, summary\)`).
		WithArgs(int64(42), 3, "they forage").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO part_b_responses_formal \(participant_id, story_id, question_id`).
		WithArgs(int64(42), 3, 11, "B", true, nil).
		WillReturnResult(sqlmock.NewResult(2, 1))

	err := SubmitPartB(models.PartBSubmitRequest{
		ParticipantID: 42,
		Phase:         "formal",
		StoryID:       3,
		Summary:       "they forage",
		Responses: []models.QuestionResponse{
			{QuestionID: 11, Response: "B", IsCorrect: &isCorrect},
		},
	})
	assert.NoError(t, err)
	expectationsWereMet(t, mock)
}

func TestSubmitPartBUnknownPhase(t *testing.T) {
	useMockDatabase(t)

	err := SubmitPartB(models.PartBSubmitRequest{ParticipantID: 42, Phase: "warmup", StoryID: 3})
	assert.Error(t, err)
}
