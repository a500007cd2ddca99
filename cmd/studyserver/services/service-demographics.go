package services

import (
	"database/sql"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/database"
	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/models"
	"github.com/nickhuo/read-or-switch-sub000/pkg/datamodel"
)

const deleteDemographicsSQL = `DELETE FROM demographics WHERE participant_id = ?`

const insertDemographicsSQL = `
	INSERT INTO demographics (
		participant_id, birth_date, gender, education, native_language,
		other_languages, english_acquisition_age, reading_proficiency,
		listening_proficiency, speaking_proficiency, writing_proficiency,
		ethnicity)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const insertKnowledgeRatingSQL = `
	INSERT INTO knowledge_ratings (participant_id, topic_ref, rating) VALUES (?, ?, ?)`

// SubmitDemographics runs the whole intake as one transaction: the
// idempotent condition assignment, a wholesale replace of the demographic
// row (delete then insert, never two rows), and one knowledge rating per
// submitted topic. Any failure rolls the whole submission back.
func SubmitDemographics(request models.DemographicsRequest) (conditions datamodel.Conditions, err error) {
	err = database.Transaction(func(tx *sql.Tx) error {
		var txErr error
		conditions, txErr = assignConditions(tx, request.ParticipantID)
		if txErr != nil {
			return txErr
		}

		_, txErr = tx.Exec(deleteDemographicsSQL, request.ParticipantID)
		if txErr != nil {
			database.ErrorHandling(deleteDemographicsSQL, txErr, false)
			return txErr
		}

		_, txErr = tx.Exec(insertDemographicsSQL,
			request.ParticipantID,
			request.BirthDate,
			request.Gender,
			request.Education,
			request.NativeLanguage,
			nullIfEmpty(request.OtherLanguages),
			nullIfEmpty(request.EnglishAcquisitionAge),
			nullIfZero(request.ReadingProficiency),
			nullIfZero(request.ListeningProficiency),
			nullIfZero(request.SpeakingProficiency),
			nullIfZero(request.WritingProficiency),
			nullIfEmpty(request.Ethnicity))
		if txErr != nil {
			database.ErrorHandling(insertDemographicsSQL, txErr, false)
			return txErr
		}

		// Stable insert order, so resubmissions produce identical row sets
		topicNames := make([]string, 0, len(request.Knowledge))
		for name := range request.Knowledge {
			topicNames = append(topicNames, name)
		}
		sort.Strings(topicNames)

		for _, name := range topicNames {
			topicRef := ResolveTopicRef(tx, name)
			_, txErr = tx.Exec(insertKnowledgeRatingSQL, request.ParticipantID, topicRef, request.Knowledge[name])
			if txErr != nil {
				database.ErrorHandling(insertKnowledgeRatingSQL, txErr, false)
				return txErr
			}
		}
		return nil
	})
	if err != nil {
		return datamodel.Conditions{}, err
	}

	cacheConditions(conditions)
	responsesRecorded.WithLabelValues("demographics").Inc()
	return conditions, nil
}

type rowQueryer interface {
	QueryRow(query string, args ...any) *sql.Row
}

const selectTopicIDSQL = `SELECT topic_id FROM topics WHERE LOWER(name) = ?`

// ResolveTopicRef resolves a submitted topic name against the topic catalog
// by soft matching: case and whitespace are normalized, and a trailing "s"
// is tried both stripped and appended. An unresolved name keeps the raw
// label as the join key rather than dropping the rating.
func ResolveTopicRef(q rowQueryer, name string) string {
	normalized := NormalizeTopicName(name)
	if normalized == "" {
		return name
	}

	candidates := []string{normalized}
	if strings.HasSuffix(normalized, "s") {
		candidates = append(candidates, strings.TrimSuffix(normalized, "s"))
	} else {
		candidates = append(candidates, normalized+"s")
	}

	for _, candidate := range candidates {
		var topicID int
		err := q.QueryRow(selectTopicIDSQL, candidate).Scan(&topicID)
		if err == nil {
			return strconv.Itoa(topicID)
		}
	}

	zap.S().Debugf("Topic %q not in catalog, keeping raw label", normalized)
	return strings.TrimSpace(name)
}

// NormalizeTopicName lowercases and collapses all interior whitespace
func NormalizeTopicName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullIfZero(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
