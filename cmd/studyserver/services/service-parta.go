package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/database"
	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/models"
	"github.com/nickhuo/read-or-switch-sub000/pkg/datamodel"
)

// GetSentences returns the Part A reading items of a phase, in item order
func GetSentences(phase datamodel.Phase) (sentences []models.Sentence, err error) {
	sqlStatement := `
		SELECT sentence_id, item_order, content
		FROM sentences WHERE phase = ? ORDER BY item_order ASC`

	var rows *sql.Rows
	rows, err = database.Db.Query(sqlStatement, string(phase))
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return
	} else if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var sentence models.Sentence
		err = rows.Scan(&sentence.SentenceID, &sentence.ItemOrder, &sentence.Content)
		if err != nil {
			database.ErrorHandling(sqlStatement, err, false)
			return
		}
		sentences = append(sentences, sentence)
	}
	err = rows.Err()
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
	}
	return
}

// GetPartAQuestions returns the comprehension questions of a phase
func GetPartAQuestions(phase datamodel.Phase) ([]models.Question, error) {
	sqlStatement := `
		SELECT question_id, item_order, question, option_a, option_b, option_c, option_d, answer
		FROM part_a_questions WHERE phase = ? ORDER BY item_order ASC`
	return queryQuestions(sqlStatement, string(phase))
}

// queryQuestions scans any question-shaped result set
func queryQuestions(sqlStatement string, args ...any) (questions []models.Question, err error) {
	var rows *sql.Rows
	rows, err = database.Db.Query(sqlStatement, args...)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return
	} else if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var question models.Question
		var optionC, optionD sql.NullString
		err = rows.Scan(
			&question.QuestionID,
			&question.ItemOrder,
			&question.Question,
			&question.OptionA,
			&question.OptionB,
			&optionC,
			&optionD,
			&question.Answer)
		if err != nil {
			database.ErrorHandling(sqlStatement, err, false)
			return
		}
		question.OptionC = optionC.String
		question.OptionD = optionD.String
		questions = append(questions, question)
	}
	err = rows.Err()
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
	}
	return
}

const insertPartALogSQL = `
	INSERT INTO part_a_log (participant_id, sentence_id, word_index, action, reaction_time_ms)
	VALUES (?, ?, ?, ?, ?)`

// LogPartAEvent appends one self-paced reading event
func LogPartAEvent(request models.PartALogRequest) error {
	action, err := datamodel.ParseActionKind(request.Action)
	if err != nil {
		return err
	}

	_, err = database.Db.Exec(insertPartALogSQL,
		request.ParticipantID,
		request.SentenceID,
		request.WordIndex,
		string(action),
		request.ReactionTimeMs)
	if err != nil {
		database.ErrorHandling(insertPartALogSQL, err, false)
		return err
	}
	responsesRecorded.WithLabelValues("part-a-log").Inc()
	return nil
}

// SubmitPartAQuestions persists a full question block in one transaction.
// Either every answer of the block lands or none does.
func SubmitPartAQuestions(request models.SubmitQuestionsRequest) error {
	phase, err := datamodel.ParsePhase(request.Phase)
	if err != nil {
		return err
	}
	table, err := models.PartAResponseTable(phase)
	if err != nil {
		return err
	}

	// table names come from the typed phase lookup, never from the request
	sqlStatement := fmt.Sprintf(`
		INSERT INTO %s (participant_id, question_id, response, is_correct, reaction_time_ms)
		VALUES (?, ?, ?, ?, ?)`, table)

	err = database.Transaction(func(tx *sql.Tx) error {
		for _, response := range request.Responses {
			_, txErr := tx.Exec(sqlStatement,
				request.ParticipantID,
				response.QuestionID,
				response.Response,
				response.IsCorrect,
				response.ReactionTimeMs)
			if txErr != nil {
				database.ErrorHandling(sqlStatement, txErr, false)
				return txErr
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	responsesRecorded.WithLabelValues("part-a").Add(float64(len(request.Responses)))
	return nil
}
