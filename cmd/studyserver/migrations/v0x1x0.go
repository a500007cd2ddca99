package migrations

import "database/sql"

// V0x1x0 creates the full study schema: the participant registry, the
// demographic survey tables, the static stimulus catalog and the
// per-part response tables.
//
// segment_order and pass_order are intentionally VARCHAR: the CSV sources
// carry them as text and the catalog casts them to unsigned on read.
func V0x1x0(db *sql.DB) error {
	return execAll(db, initialSchemaStatements)
}

var initialSchemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS participants (
			participant_id BIGINT NOT NULL PRIMARY KEY,
			part2_condition TINYINT NULL,
			part3_condition TINYINT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	`CREATE TABLE IF NOT EXISTS demographics (
			participant_id BIGINT NOT NULL PRIMARY KEY,
			birth_date VARCHAR(32) NOT NULL,
			gender VARCHAR(32) NOT NULL,
			education VARCHAR(64) NOT NULL,
			native_language VARCHAR(64) NOT NULL,
			other_languages TEXT NULL,
			english_acquisition_age VARCHAR(16) NULL,
			reading_proficiency TINYINT NULL,
			listening_proficiency TINYINT NULL,
			speaking_proficiency TINYINT NULL,
			writing_proficiency TINYINT NULL,
			ethnicity VARCHAR(64) NULL,
			submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	`CREATE TABLE IF NOT EXISTS topics (
			topic_id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(128) NOT NULL,
			UNIQUE KEY uq_topics_name (name)
		)`,
	`CREATE TABLE IF NOT EXISTS knowledge_ratings (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			participant_id BIGINT NOT NULL,
			topic_ref VARCHAR(128) NOT NULL,
			rating TINYINT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_kr_participant (participant_id)
		)`,
	`CREATE TABLE IF NOT EXISTS sentences (
			sentence_id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			phase VARCHAR(16) NOT NULL,
			item_order INT NOT NULL,
			content TEXT NOT NULL
		)`,
	`CREATE TABLE IF NOT EXISTS part_a_questions (
			question_id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			phase VARCHAR(16) NOT NULL,
			item_order INT NOT NULL,
			question TEXT NOT NULL,
			option_a VARCHAR(255) NOT NULL,
			option_b VARCHAR(255) NOT NULL,
			option_c VARCHAR(255) NULL,
			option_d VARCHAR(255) NULL,
			answer VARCHAR(8) NOT NULL
		)`,
	`CREATE TABLE IF NOT EXISTS part_a_log (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			participant_id BIGINT NOT NULL,
			sentence_id INT NOT NULL,
			word_index INT NOT NULL,
			action VARCHAR(16) NOT NULL,
			reaction_time_ms INT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_pal_participant (participant_id)
		)`,
	`CREATE TABLE IF NOT EXISTS part_a_responses_practice (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			participant_id BIGINT NOT NULL,
			question_id INT NOT NULL,
			response VARCHAR(255) NOT NULL,
			is_correct TINYINT(1) NULL,
			reaction_time_ms INT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_parp_participant (participant_id)
		)`,
	`CREATE TABLE IF NOT EXISTS part_a_responses_formal (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			participant_id BIGINT NOT NULL,
			question_id INT NOT NULL,
			response VARCHAR(255) NOT NULL,
			is_correct TINYINT(1) NULL,
			reaction_time_ms INT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_parf_participant (participant_id)
		)`,
	`CREATE TABLE IF NOT EXISTS stories (
			story_id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			phase VARCHAR(16) NOT NULL,
			title VARCHAR(255) NOT NULL,
			topic_id INT NULL
		)`,
	`CREATE TABLE IF NOT EXISTS story_segments (
			segment_id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			story_id INT NOT NULL,
			sp2_con_id TINYINT NOT NULL DEFAULT 0,
			segment_order VARCHAR(8) NOT NULL,
			content TEXT NOT NULL,
			KEY idx_seg_story (story_id)
		)`,
	`CREATE TABLE IF NOT EXISTS part_b_questions (
			question_id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			phase VARCHAR(16) NOT NULL,
			story_id INT NULL,
			item_order INT NOT NULL,
			question TEXT NOT NULL,
			option_a VARCHAR(255) NOT NULL,
			option_b VARCHAR(255) NOT NULL,
			option_c VARCHAR(255) NULL,
			option_d VARCHAR(255) NULL,
			answer VARCHAR(8) NOT NULL
		)`,
	`CREATE TABLE IF NOT EXISTS part_b_actions (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			participant_id BIGINT NOT NULL,
			story_id INT NOT NULL,
			segment_id INT NULL,
			action VARCHAR(16) NOT NULL,
			reaction_time_ms INT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_pba_participant (participant_id)
		)`,
	`CREATE TABLE IF NOT EXISTS part_b_responses_practice (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			participant_id BIGINT NOT NULL,
			story_id INT NOT NULL,
			question_id INT NULL,
			summary TEXT NULL,
			response VARCHAR(255) NULL,
			is_correct TINYINT(1) NULL,
			reaction_time_ms INT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_pbrp_participant (participant_id)
		)`,
	`CREATE TABLE IF NOT EXISTS part_b_responses_formal (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			participant_id BIGINT NOT NULL,
			story_id INT NOT NULL,
			question_id INT NULL,
			summary TEXT NULL,
			response VARCHAR(255) NULL,
			is_correct TINYINT(1) NULL,
			reaction_time_ms INT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_pbrf_participant (participant_id)
		)`,
	`CREATE TABLE IF NOT EXISTS passages (
			passage_id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			phase VARCHAR(16) NOT NULL,
			sp3_con_id TINYINT NOT NULL DEFAULT 1,
			pass_order VARCHAR(8) NOT NULL,
			title VARCHAR(255) NOT NULL,
			content TEXT NOT NULL
		)`,
	`CREATE TABLE IF NOT EXISTS part_c_questions (
			question_id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			phase VARCHAR(16) NOT NULL,
			passage_id INT NULL,
			item_order INT NOT NULL,
			question TEXT NOT NULL,
			option_a VARCHAR(255) NOT NULL,
			option_b VARCHAR(255) NOT NULL,
			option_c VARCHAR(255) NULL,
			option_d VARCHAR(255) NULL,
			answer VARCHAR(8) NOT NULL
		)`,
	`CREATE TABLE IF NOT EXISTS part_c_responses_practice (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			participant_id BIGINT NOT NULL,
			passage_id INT NOT NULL,
			question_id INT NULL,
			response VARCHAR(255) NULL,
			is_correct TINYINT(1) NULL,
			reaction_time_ms INT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_pcrp_participant (participant_id)
		)`,
	`CREATE TABLE IF NOT EXISTS part_c_responses_formal (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			participant_id BIGINT NOT NULL,
			passage_id INT NOT NULL,
			question_id INT NULL,
			response VARCHAR(255) NULL,
			is_correct TINYINT(1) NULL,
			reaction_time_ms INT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_pcrf_participant (participant_id)
		)`,
	`CREATE TABLE IF NOT EXISTS vocabulary_items (
			item_id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			item_order INT NOT NULL,
			word VARCHAR(64) NOT NULL,
			option_a VARCHAR(255) NOT NULL,
			option_b VARCHAR(255) NOT NULL,
			option_c VARCHAR(255) NULL,
			option_d VARCHAR(255) NULL,
			answer VARCHAR(8) NOT NULL
		)`,
	`CREATE TABLE IF NOT EXISTS vocabulary_responses (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			participant_id BIGINT NOT NULL,
			item_id INT NOT NULL,
			response VARCHAR(255) NOT NULL,
			is_correct TINYINT(1) NULL,
			reaction_time_ms INT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_vr_participant (participant_id)
		)`,
	`CREATE TABLE IF NOT EXISTS letter_items (
			item_id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			round_number INT NOT NULL,
			item_index INT NOT NULL,
			left_string VARCHAR(32) NOT NULL,
			right_string VARCHAR(32) NOT NULL,
			answer VARCHAR(8) NOT NULL,
			UNIQUE KEY uq_letter_items (round_number, item_index)
		)`,
	`CREATE TABLE IF NOT EXISTS letter_responses (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			participant_id BIGINT NOT NULL,
			sid INT NOT NULL,
			round_number INT NOT NULL,
			item_index INT NOT NULL,
			response VARCHAR(8) NOT NULL,
			is_correct TINYINT(1) NULL,
			reaction_time_ms INT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	`CREATE TABLE IF NOT EXISTS assessment_questions (
			question_id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			item_order INT NOT NULL,
			question TEXT NOT NULL,
			option_a VARCHAR(255) NOT NULL,
			option_b VARCHAR(255) NOT NULL,
			option_c VARCHAR(255) NULL,
			option_d VARCHAR(255) NULL,
			answer VARCHAR(8) NOT NULL
		)`,
	`CREATE TABLE IF NOT EXISTS assessment_responses (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			participant_id BIGINT NOT NULL,
			question_id INT NOT NULL,
			response VARCHAR(255) NOT NULL,
			is_correct TINYINT(1) NULL,
			reaction_time_ms INT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_ar_participant (participant_id)
		)`,
}
