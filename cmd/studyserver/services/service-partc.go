package services

import (
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/database"
	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/models"
	"github.com/nickhuo/read-or-switch-sub000/pkg/datamodel"
)

func part3ConditionFor(participantID *int64) *int {
	if participantID == nil {
		return nil
	}
	conditions, err := GetConditions(*participantID)
	if errors.Is(err, ErrNotFound) {
		zap.S().Debugf("Participant %d has no stored condition, serving unfiltered set", *participantID)
		return nil
	} else if err != nil {
		return nil
	}
	return &conditions.Part3Condition
}

// GetPassages returns the passages of a phase in pass order (numeric over
// the text column). The formal phase is narrowed to the participant's
// part3 condition when one is stored.
func GetPassages(phase datamodel.Phase, participantID *int64) (passages []models.Passage, err error) {
	sqlStatement := `
		SELECT passage_id, CAST(pass_order AS UNSIGNED), title, content
		FROM passages WHERE phase = ?
		ORDER BY CAST(pass_order AS UNSIGNED) ASC`
	args := []any{string(phase)}

	if phase == datamodel.PhaseFormal {
		if condition := part3ConditionFor(participantID); condition != nil {
			sqlStatement = `
				SELECT passage_id, CAST(pass_order AS UNSIGNED), title, content
				FROM passages WHERE phase = ? AND sp3_con_id = ?
				ORDER BY CAST(pass_order AS UNSIGNED) ASC`
			args = append(args, *condition)
		}
	}

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
		var passage models.Passage
		err = rows.Scan(&passage.PassageID, &passage.PassOrder, &passage.Title, &passage.Content)
		if err != nil {
			database.ErrorHandling(sqlStatement, err, false)
			return
		}
		passages = append(passages, passage)
	}
	err = rows.Err()
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
	}
	return
}

// GetPartCQuestions returns the comprehension questions of a phase. With a
// stored condition the set follows passage visibility; questions not bound
// to a passage are always included.
func GetPartCQuestions(phase datamodel.Phase, participantID *int64) ([]models.Question, error) {
	sqlStatement := `
		SELECT question_id, item_order, question, option_a, option_b, option_c, option_d, answer
		FROM part_c_questions WHERE phase = ? ORDER BY item_order ASC`
	args := []any{string(phase)}

	if phase == datamodel.PhaseFormal {
		if condition := part3ConditionFor(participantID); condition != nil {
			sqlStatement = `
				SELECT q.question_id, q.item_order, q.question, q.option_a, q.option_b, q.option_c, q.option_d, q.answer
				FROM part_c_questions q
				WHERE q.phase = ? AND (q.passage_id IS NULL OR q.passage_id IN (
					SELECT passage_id FROM passages WHERE phase = ? AND sp3_con_id = ?))
				ORDER BY q.item_order ASC`
			args = []any{string(phase), string(phase), *condition}
		}
	}

	return queryQuestions(sqlStatement, args...)
}

// SubmitPartC persists the comprehension answers for one passage. Like the
// Part B submission these statements auto-commit independently.
func SubmitPartC(request models.PartCSubmitRequest) error {
	phase, err := datamodel.ParsePhase(request.Phase)
	if err != nil {
		return err
	}
	table, err := models.PartCResponseTable(phase)
	if err != nil {
		return err
	}

	sqlStatement := fmt.Sprintf(`
		INSERT INTO %s (participant_id, passage_id, question_id, response, is_correct, reaction_time_ms)
		VALUES (?, ?, ?, ?, ?, ?)`, table)
	for _, response := range request.Responses {
		_, err = database.Db.Exec(sqlStatement,
			request.ParticipantID,
			request.PassageID,
			response.QuestionID,
			response.Response,
			response.IsCorrect,
			response.ReactionTimeMs)
		if err != nil {
			database.ErrorHandling(sqlStatement, err, false)
			return err
		}
	}

	responsesRecorded.WithLabelValues("part-c").Add(float64(len(request.Responses)))
	return nil
}
