package services

import (
	"database/sql"

	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/database"
	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/models"
)

// GetAssessmentQuestions returns the final comprehension assessment
func GetAssessmentQuestions() ([]models.Question, error) {
	sqlStatement := `
		SELECT question_id, item_order, question, option_a, option_b, option_c, option_d, answer
		FROM assessment_questions ORDER BY item_order ASC`
	return queryQuestions(sqlStatement)
}

const insertAssessmentResponseSQL = `
	INSERT INTO assessment_responses (participant_id, question_id, response, is_correct, reaction_time_ms)
	VALUES (?, ?, ?, ?, ?)`

// SubmitAssessment persists the final answer block in one transaction
func SubmitAssessment(request models.AssessmentSubmitRequest) error {
	err := database.Transaction(func(tx *sql.Tx) error {
		for _, response := range request.Responses {
			_, txErr := tx.Exec(insertAssessmentResponseSQL,
				request.ParticipantID,
				response.QuestionID,
				response.Response,
				response.IsCorrect,
				response.ReactionTimeMs)
			if txErr != nil {
				database.ErrorHandling(insertAssessmentResponseSQL, txErr, false)
				return txErr
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	responsesRecorded.WithLabelValues("assessment").Add(float64(len(request.Responses)))
	return nil
}
