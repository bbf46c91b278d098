package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrDumpMissing is returned when an import directory lacks the submissions
// table dump.
var ErrDumpMissing = errors.New("submission_submission.jsonl not found")

// jsonlTableMapping maps table dumps to their columns. Referenced tables load
// before the tables that reference them.
var jsonlTableMapping = []struct {
	table   string
	columns []string
}{
	{"submission_submissiontype", []string{"id", "name"}},
	{"submission_submission", []string{"id", "code", "title", "state", "submission_type_id", "main_author_id", "paper_id"}},
	{"submission_answeroption", []string{"id", "question_id", "answer"}},
	{"submission_answer", []string{"id", "submission_id", "question_id", "answer"}},
	{"submission_answer_options", []string{"id", "answer_id", "answeroption_id"}},
}

// TableCount is the number of rows imported into one table.
type TableCount struct {
	Table string
	Rows  int
}

// ImportJSONL loads <table>.jsonl dumps of the conference database from dir
// into the snapshot, one JSON object per line. Fields not in the snapshot
// schema are ignored and rows with an existing primary key are replaced.
// Dumps other than submission_submission.jsonl are optional. The import is
// one transaction: on any error the snapshot is left unchanged.
func (s *Snapshot) ImportJSONL(ctx context.Context, dir string) ([]TableCount, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(filepath.Join(dir, "submission_submission.jsonl")); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w in %s", ErrDumpMissing, dir)
		}
		return nil, fmt.Errorf("stat dump: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback()

	var counts []TableCount
	for _, mapping := range jsonlTableMapping {
		path := filepath.Join(dir, mapping.table+".jsonl")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		records, err := readJSONL(path)
		if err != nil {
			return nil, err
		}
		if err := insertRecords(ctx, tx, mapping.table, mapping.columns, records); err != nil {
			return nil, fmt.Errorf("loading %s: %w", filepath.Base(path), err)
		}
		counts = append(counts, TableCount{Table: mapping.table, Rows: len(records)})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import transaction: %w", err)
	}
	return counts, nil
}

// insertRecords writes records into table. Only the listed columns are read
// from each record; a missing field is stored as NULL.
func insertRecords(ctx context.Context, tx *sql.Tx, table string, columns []string, records []map[string]any) error {
	insertSQL := fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		placeholders(len(columns)),
	)

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	for i, obj := range records {
		args := make([]any, len(columns))
		for j, col := range columns {
			val, ok := obj[col]
			if !ok {
				continue
			}
			if args[j], err = columnValue(val); err != nil {
				return fmt.Errorf("record %d column %s: %w", i+1, col, err)
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return nil
}
