package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/models"
	"github.com/nickhuo/read-or-switch-sub000/pkg/datamodel"
)

func TestGetSentences(t *testing.T) {
	mock := useMockDatabase(t)

	mock.ExpectQuery(`FROM sentences WHERE phase = \? ORDER BY item_order ASC`).
		WithArgs("practice").
		WillReturnRows(sqlmock.NewRows([]string{"sentence_id", "item_order", "content"}).
			AddRow(1, 1, "The cat sat.").
			AddRow(2, 2, "The dog ran."))

	sentences, err := GetSentences(datamodel.PhasePractice)
	require.NoError(t, err)
	require.Len(t, sentences, 2)
	assert.Equal(t, "The cat sat.", sentences[0].Content)
	expectationsWereMet(t, mock)
}

// No rows is nothing to read, not an error
func TestGetSentencesEmpty(t *testing.T) {
	mock := useMockDatabase(t)

	mock.ExpectQuery(`FROM sentences`).
		WithArgs("formal").
		WillReturnRows(sqlmock.NewRows([]string{"sentence_id", "item_order", "content"}))

	sentences, err := GetSentences(datamodel.PhaseFormal)
	require.NoError(t, err)
	assert.Empty(t, sentences)
	expectationsWereMet(t, mock)
}

func TestLogPartAEvent(t *testing.T) {
	mock := useMockDatabase(t)

	mock.ExpectExec(`INSERT INTO part_a_log`).
		WithArgs(int64(42), 7, 3, "reveal", 412).
		WillReturnResult(sqlmock.NewResult(1, 1))

	reactionTime := 412
	err := LogPartAEvent(models.PartALogRequest{
		ParticipantID:  42,
		SentenceID:     7,
		WordIndex:      3,
		Action:         "reveal",
		ReactionTimeMs: &reactionTime,
	})
	assert.NoError(t, err)
	expectationsWereMet(t, mock)
}

// A question block lands in one transaction: every answer or none
func TestSubmitPartAQuestionsTransactional(t *testing.T) {
	mock := useMockDatabase(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO part_a_responses_practice`).
		WithArgs(int64(42), 1, "A", nil, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO part_a_responses_practice`).
		WithArgs(int64(42), 2, "C", nil, nil).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := SubmitPartAQuestions(models.SubmitQuestionsRequest{
		ParticipantID: 42,
		Phase:         "practice",
		Responses: []models.QuestionResponse{
			{QuestionID: 1, Response: "A"},
			{QuestionID: 2, Response: "C"},
		},
	})
	assert.NoError(t, err)
	expectationsWereMet(t, mock)
}

func TestSubmitPartAQuestionsRollsBackMidBatch(t *testing.T) {
	mock := useMockDatabase(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO part_a_responses_formal`).
		WithArgs(int64(42), 1, "A", nil, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO part_a_responses_formal`).
		WithArgs(int64(42), 2, "C", nil, nil).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	err := SubmitPartAQuestions(models.SubmitQuestionsRequest{
		ParticipantID: 42,
		Phase:         "formal",
		Responses: []models.QuestionResponse{
			{QuestionID: 1, Response: "A"},
			{QuestionID: 2, Response: "C"},
		},
	})
	assert.Error(t, err)
	expectationsWereMet(t, mock)
}

func TestSubmitPartAQuestionsUnknownPhase(t *testing.T) {
	useMockDatabase(t)

	err := SubmitPartAQuestions(models.SubmitQuestionsRequest{
		ParticipantID: 42,
		Phase:         "warmup",
	})
	assert.Error(t, err)
}
