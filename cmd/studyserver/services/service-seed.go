package services

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/database"
)

// Seeding wipes and repopulates static catalog tables from CSV files. It
// is destructive and strictly pre-study: the endpoints stay disabled
// unless SEED_ENABLED=true.

var seedEnabled bool
var seedDataDir string

// ConfigureSeeding is called once at startup with the env-derived settings
func ConfigureSeeding(enabled bool, dataDir string) {
	seedEnabled = enabled
	seedDataDir = dataDir
	if enabled {
		zap.S().Warnf("Seeding endpoints enabled, data dir: %s", dataDir)
	}
}

// SeedingEnabled reports whether the seed endpoints may run
func SeedingEnabled() bool {
	return seedEnabled
}

type seedDataset struct {
	table   string
	columns []string
}

// One CSV file per dataset, named <dataset>.csv, header row required,
// columns in the listed order. Empty fields become NULL.
var seedDatasets = map[string]seedDataset{
	"topics": {
		table:   "topics",
		columns: []string{"name"},
	},
	"sentences": {
		table:   "sentences",
		columns: []string{"phase", "item_order", "content"},
	},
	"part-a-questions": {
		table:   "part_a_questions",
		columns: []string{"phase", "item_order", "question", "option_a", "option_b", "option_c", "option_d", "answer"},
	},
	"stories": {
		table:   "stories",
		columns: []string{"story_id", "phase", "title", "topic_id"},
	},
	"segments": {
		table:   "story_segments",
		columns: []string{"story_id", "sp2_con_id", "segment_order", "content"},
	},
	"part-b-questions": {
		table:   "part_b_questions",
		columns: []string{"phase", "story_id", "item_order", "question", "option_a", "option_b", "option_c", "option_d", "answer"},
	},
	"passages": {
		table:   "passages",
		columns: []string{"phase", "sp3_con_id", "pass_order", "title", "content"},
	},
	"part-c-questions": {
		table:   "part_c_questions",
		columns: []string{"phase", "passage_id", "item_order", "question", "option_a", "option_b", "option_c", "option_d", "answer"},
	},
	"vocabulary": {
		table:   "vocabulary_items",
		columns: []string{"item_order", "word", "option_a", "option_b", "option_c", "option_d", "answer"},
	},
	"letter-items": {
		table:   "letter_items",
		columns: []string{"round_number", "item_index", "left_string", "right_string", "answer"},
	},
	"assessment": {
		table:   "assessment_questions",
		columns: []string{"item_order", "question", "option_a", "option_b", "option_c", "option_d", "answer"},
	},
}

// SeedDatasetNames lists the datasets the seed endpoint accepts
func SeedDatasetNames() []string {
	names := make([]string, 0, len(seedDatasets))
	for name := range seedDatasets {
		names = append(names, name)
	}
	return names
}

// Seed replaces the content of one catalog table with the rows of its CSV
// file, inside a single transaction. Returns the number of rows loaded.
func Seed(dataset string) (int, error) {
	spec, ok := seedDatasets[dataset]
	if !ok {
		return 0, ErrNotFound
	}

	records, err := readSeedFile(filepath.Join(seedDataDir, dataset+".csv"), len(spec.columns))
	if err != nil {
		return 0, err
	}

	insertStatement := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		spec.table,
		strings.Join(spec.columns, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(spec.columns)), ", "))
	// DELETE instead of TRUNCATE: TRUNCATE would implicitly commit and
	// break the all-or-nothing reload.
	deleteStatement := fmt.Sprintf("DELETE FROM %s", spec.table)

	err = database.Transaction(func(tx *sql.Tx) error {
		_, txErr := tx.Exec(deleteStatement)
		if txErr != nil {
			database.ErrorHandling(deleteStatement, txErr, false)
			return txErr
		}
		for _, record := range records {
			values := make([]any, len(record))
			for i, field := range record {
				if field == "" {
					values[i] = nil
				} else {
					values[i] = field
				}
			}
			_, txErr = tx.Exec(insertStatement, values...)
			if txErr != nil {
				database.ErrorHandling(insertStatement, txErr, false)
				return txErr
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	zap.S().Infof("Seeded %d rows into %s", len(records), spec.table)
	return len(records), nil
}

func readSeedFile(path string, wantFields int) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = wantFields
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty, expected a header row", path)
	}
	return records[1:], nil
}
