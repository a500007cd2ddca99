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

// part2ConditionFor resolves the stored part2 condition of a participant.
// A nil participant ID or an unassigned participant yields no filter: the
// catalog then serves the unfiltered (practice-equivalent) set instead of
// erroring.
func part2ConditionFor(participantID *int64) *int {
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
	return &conditions.Part2Condition
}

// GetStories returns the foraging stories of a phase. In the formal phase
// the set is narrowed to stories that have segments tagged with the
// participant's part2 condition.
func GetStories(phase datamodel.Phase, participantID *int64) (stories []models.Story, err error) {
	sqlStatement := `
		SELECT story_id, title, topic_id FROM stories
		WHERE phase = ? ORDER BY story_id ASC`
	args := []any{string(phase)}

	if phase == datamodel.PhaseFormal {
		if condition := part2ConditionFor(participantID); condition != nil {
			sqlStatement = `
				SELECT DISTINCT s.story_id, s.title, s.topic_id
				FROM stories s
				INNER JOIN story_segments seg ON seg.story_id = s.story_id
				WHERE s.phase = ? AND seg.sp2_con_id = ?
				ORDER BY s.story_id ASC`
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
		var story models.Story
		var topicID sql.NullInt64
		err = rows.Scan(&story.StoryID, &story.Title, &topicID)
		if err != nil {
			database.ErrorHandling(sqlStatement, err, false)
			return
		}
		if topicID.Valid {
			id := int(topicID.Int64)
			story.TopicID = &id
		}
		stories = append(stories, story)
	}
	err = rows.Err()
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
	}
	return
}

// GetSegments returns the ordered segment sequence of one story. The order
// column is stored as text, so it is cast to unsigned before sorting:
// "1","2","10", never the lexicographic "1","10","2".
func GetSegments(storyID int, participantID *int64) (segments []models.Segment, err error) {
	sqlStatement := `
		SELECT segment_id, story_id, CAST(segment_order AS UNSIGNED), content
		FROM story_segments WHERE story_id = ?
		ORDER BY CAST(segment_order AS UNSIGNED) ASC`
	args := []any{storyID}

	if condition := part2ConditionFor(participantID); condition != nil {
		sqlStatement = `
			SELECT segment_id, story_id, CAST(segment_order AS UNSIGNED), content
			FROM story_segments WHERE story_id = ? AND sp2_con_id = ?
			ORDER BY CAST(segment_order AS UNSIGNED) ASC`
		args = append(args, *condition)
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
		var segment models.Segment
		err = rows.Scan(&segment.SegmentID, &segment.StoryID, &segment.SegmentOrder, &segment.Content)
		if err != nil {
			database.ErrorHandling(sqlStatement, err, false)
			return
		}
		segments = append(segments, segment)
	}
	err = rows.Err()
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
	}
	return
}

// GetPartBQuestions returns the comprehension questions of a phase
func GetPartBQuestions(phase datamodel.Phase) ([]models.Question, error) {
	sqlStatement := `
		SELECT question_id, item_order, question, option_a, option_b, option_c, option_d, answer
		FROM part_b_questions WHERE phase = ? ORDER BY item_order ASC`
	return queryQuestions(sqlStatement, string(phase))
}

const insertPartBActionSQL = `
	INSERT INTO part_b_actions (participant_id, story_id, segment_id, action, reaction_time_ms)
	VALUES (?, ?, ?, ?, ?)`

// RecordPartBAction appends one continue/switch/select decision. Each call
// is one auto-committed statement; callers fire these per decision, so a
// failed call loses exactly that decision and nothing else.
func RecordPartBAction(request models.PartBActionRequest) error {
	action, err := datamodel.ParseActionKind(request.Action)
	if err != nil {
		return err
	}

	_, err = database.Db.Exec(insertPartBActionSQL,
		request.ParticipantID,
		request.StoryID,
		request.SegmentID,
		string(action),
		request.ReactionTimeMs)
	if err != nil {
		database.ErrorHandling(insertPartBActionSQL, err, false)
		return err
	}
	responsesRecorded.WithLabelValues("part-b-action").Inc()
	return nil
}

// SubmitPartB persists the summary and the comprehension answers for one
// story. The statements auto-commit independently: a failure mid-batch can
// leave a partial write, which the study design accepts for this path.
func SubmitPartB(request models.PartBSubmitRequest) error {
	phase, err := datamodel.ParsePhase(request.Phase)
	if err != nil {
		return err
	}
	table, err := models.PartBResponseTable(phase)
	if err != nil {
		return err
	}

	if request.Summary != "" {
		sqlStatement := fmt.Sprintf(`
			INSERT INTO %s (participant_id, story_id, summary) VALUES (?, ?, ?)`, table)
		_, err = database.Db.Exec(sqlStatement, request.ParticipantID, request.StoryID, request.Summary)
		if err != nil {
			database.ErrorHandling(sqlStatement, err, false)
			return err
		}
	}

	sqlStatement := fmt.Sprintf(`
		INSERT INTO %s (participant_id, story_id, question_id, response, is_correct, reaction_time_ms)
		VALUES (?, ?, ?, ?, ?, ?)`, table)
	for _, response := range request.Responses {
		_, err = database.Db.Exec(sqlStatement,
			request.ParticipantID,
			request.StoryID,
			response.QuestionID,
			response.Response,
			response.IsCorrect,
			response.ReactionTimeMs)
		if err != nil {
			database.ErrorHandling(sqlStatement, err, false)
			return err
		}
	}

	responsesRecorded.WithLabelValues("part-b").Add(float64(len(request.Responses)))
	return nil
}
