package services

import (
	"database/sql"
	"errors"
	"math/rand"

	"go.uber.org/zap"

	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/database"
	"github.com/nickhuo/read-or-switch-sub000/pkg/datamodel"
)

// The IFNULL guard makes the upsert idempotent: whatever a retry or a
// concurrent insert draws, an already-assigned condition is never
// overwritten.
const upsertParticipantSQL = `
	INSERT INTO participants (participant_id, part2_condition, part3_condition)
	VALUES (?, ?, ?)
	ON DUPLICATE KEY UPDATE
		part2_condition = IFNULL(part2_condition, VALUES(part2_condition)),
		part3_condition = IFNULL(part3_condition, VALUES(part3_condition))`

const selectConditionsSQL = `
	SELECT part2_condition, part3_condition FROM participants WHERE participant_id = ?`

// drawConditions draws a fresh candidate assignment, uniform over
// {0,1} x {1,2,3}. The draw only matters on the participant's first
// contact; later draws are discarded by the IFNULL upsert.
func drawConditions(participantID int64) datamodel.Conditions {
	return datamodel.Conditions{
		ParticipantID:  participantID,
		Part2Condition: datamodel.Part2ConditionMin + rand.Intn(datamodel.Part2ConditionMax-datamodel.Part2ConditionMin+1),
		Part3Condition: datamodel.Part3ConditionMin + rand.Intn(datamodel.Part3ConditionMax-datamodel.Part3ConditionMin+1),
	}
}

type execQueryer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// assignConditions runs the idempotent upsert on q (plain connection or
// transaction) and reads back whatever ended up stored.
func assignConditions(q execQueryer, participantID int64) (conditions datamodel.Conditions, err error) {
	draw := drawConditions(participantID)

	_, err = q.Exec(upsertParticipantSQL, draw.ParticipantID, draw.Part2Condition, draw.Part3Condition)
	if err != nil {
		database.ErrorHandling(upsertParticipantSQL, err, false)
		return
	}
	conditionsAssigned.Inc()

	var part2, part3 sql.NullInt64
	err = q.QueryRow(selectConditionsSQL, participantID).Scan(&part2, &part3)
	if err != nil {
		database.ErrorHandling(selectConditionsSQL, err, false)
		return
	}
	if !part2.Valid || !part3.Valid {
		// cannot happen after the upsert above, but do not cache garbage
		err = ErrNotFound
		return
	}

	conditions = datamodel.Conditions{
		ParticipantID:  participantID,
		Part2Condition: int(part2.Int64),
		Part3Condition: int(part3.Int64),
	}
	return
}

// AssignOrFetchConditions guarantees a participant row exists with exactly
// one stable condition pair and returns it. Safe to call any number of
// times; only the first call's draw is ever stored.
func AssignOrFetchConditions(participantID int64) (datamodel.Conditions, error) {
	if conditions, ok := cachedConditions(participantID); ok {
		return conditions, nil
	}

	key := conditionCacheKey(participantID)
	if conditionMutex.TryLock(key) {
		defer conditionMutex.Unlock(key)

		// a concurrent first contact may have finished while we waited
		if conditions, ok := cachedConditions(participantID); ok {
			return conditions, nil
		}
	} else {
		// the upsert is idempotent, so running it without the lock is
		// safe, it just costs a duplicate round trip
		zap.S().Warnf("Could not lock condition assignment for participant %d", participantID)
	}

	conditions, err := assignConditions(database.Db, participantID)
	if err != nil {
		return datamodel.Conditions{}, err
	}

	zap.S().Debugf("Conditions for participant %d: part2=%d part3=%d",
		participantID, conditions.Part2Condition, conditions.Part3Condition)
	cacheConditions(conditions)
	return conditions, nil
}

// GetConditions returns the stored condition pair without assigning one.
// ErrNotFound means the participant has not been through demographics yet.
func GetConditions(participantID int64) (datamodel.Conditions, error) {
	if conditions, ok := cachedConditions(participantID); ok {
		return conditions, nil
	}

	var part2, part3 sql.NullInt64
	err := database.Db.QueryRow(selectConditionsSQL, participantID).Scan(&part2, &part3)
	if errors.Is(err, sql.ErrNoRows) {
		return datamodel.Conditions{}, ErrNotFound
	} else if err != nil {
		database.ErrorHandling(selectConditionsSQL, err, false)
		return datamodel.Conditions{}, err
	}
	if !part2.Valid || !part3.Valid {
		return datamodel.Conditions{}, ErrNotFound
	}

	conditions := datamodel.Conditions{
		ParticipantID:  participantID,
		Part2Condition: int(part2.Int64),
		Part3Condition: int(part3.Int64),
	}
	cacheConditions(conditions)
	return conditions, nil
}
