package migrations

import "database/sql"

// V0x1x1 adds the revision key for letter-comparison responses. A second
// submission for the same (participant, sheet, round, item) must update the
// stored row in place instead of appending a duplicate, so the recorder's
// ON DUPLICATE KEY UPDATE needs this unique key to land on.
func V0x1x1(db *sql.DB) error {
	return execAll(db, []string{
		`ALTER TABLE letter_responses
			ADD UNIQUE KEY uq_letter_responses (participant_id, sid, round_number, item_index)`,
	})
}
