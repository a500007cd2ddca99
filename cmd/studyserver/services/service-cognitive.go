package services

import (
	"database/sql"
	"errors"

	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/database"
	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/models"
)

// GetVocabularyItems returns the full vocabulary test, in item order
func GetVocabularyItems() (items []models.VocabularyItem, err error) {
	sqlStatement := `
		SELECT item_id, item_order, word, option_a, option_b, option_c, option_d, answer
		FROM vocabulary_items ORDER BY item_order ASC`

	var rows *sql.Rows
	rows, err = database.Db.Query(sqlStatement)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return
	} else if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var item models.VocabularyItem
		var optionC, optionD sql.NullString
		err = rows.Scan(&item.ItemID, &item.ItemOrder, &item.Word, &item.OptionA, &item.OptionB, &optionC, &optionD, &item.Answer)
		if err != nil {
			database.ErrorHandling(sqlStatement, err, false)
			return
		}
		item.OptionC = optionC.String
		item.OptionD = optionD.String
		items = append(items, item)
	}
	err = rows.Err()
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
	}
	return
}

const insertVocabularyResponseSQL = `
	INSERT INTO vocabulary_responses (participant_id, item_id, response, is_correct, reaction_time_ms)
	VALUES (?, ?, ?, ?, ?)`

// RecordVocabularyResponse appends one vocabulary answer
func RecordVocabularyResponse(request models.VocabularyResponseRequest) error {
	_, err := database.Db.Exec(insertVocabularyResponseSQL,
		request.ParticipantID,
		request.ItemID,
		request.Response,
		request.IsCorrect,
		request.ReactionTimeMs)
	if err != nil {
		database.ErrorHandling(insertVocabularyResponseSQL, err, false)
		return err
	}
	responsesRecorded.WithLabelValues("vocabulary").Inc()
	return nil
}

// GetLetterItems returns the string pairs of one letter-comparison round
func GetLetterItems(roundNumber int) (items []models.LetterItem, err error) {
	sqlStatement := `
		SELECT item_id, round_number, item_index, left_string, right_string, answer
		FROM letter_items WHERE round_number = ? ORDER BY item_index ASC`

	var rows *sql.Rows
	rows, err = database.Db.Query(sqlStatement, roundNumber)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return
	} else if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var item models.LetterItem
		err = rows.Scan(&item.ItemID, &item.RoundNumber, &item.ItemIndex, &item.LeftString, &item.RightString, &item.Answer)
		if err != nil {
			database.ErrorHandling(sqlStatement, err, false)
			return
		}
		items = append(items, item)
	}
	err = rows.Err()
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
	}
	return
}

// A participant may revise a letter-comparison answer before the final
// submission, so a duplicate of the (participant, sheet, round, item) key
// updates the stored judgment in place instead of appending a second row.
const upsertLetterResponseSQL = `
	INSERT INTO letter_responses (participant_id, sid, round_number, item_index, response, is_correct, reaction_time_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE
		response = VALUES(response),
		is_correct = VALUES(is_correct),
		reaction_time_ms = VALUES(reaction_time_ms)`

// RecordLetterComparison inserts or revises one letter-comparison judgment
func RecordLetterComparison(request models.LetterComparisonRequest) error {
	_, err := database.Db.Exec(upsertLetterResponseSQL,
		request.ParticipantID,
		request.SID,
		request.RoundNumber,
		request.ItemIndex,
		request.Response,
		request.IsCorrect,
		request.ReactionTimeMs)
	if err != nil {
		database.ErrorHandling(upsertLetterResponseSQL, err, false)
		return err
	}
	responsesRecorded.WithLabelValues("letter-comparison").Inc()
	return nil
}
