package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/themes/pkg/types"
)

const themeRowsSelect = `SELECT
    submission_submission.id,
    submission_submission.title,
    submission_submission.submission_type_id,
    submission_answer_options.answeroption_id
FROM
    submission_submission
    JOIN submission_answer ON submission_answer.submission_id = submission_submission.id
    JOIN submission_answer_options ON submission_answer_options.answer_id = submission_answer.id
WHERE
    submission_answer.question_id = ?`

const themeRowsOrder = `
ORDER BY
    submission_submission.id,
    submission_answer_options.answeroption_id`

// themeRowsQuery builds the theme query and its arguments for q.
func themeRowsQuery(q types.QueryConfig) (string, []any) {
	var b strings.Builder
	b.WriteString(themeRowsSelect)
	args := []any{q.ThemeQuestionID}

	if len(q.ExcludeStates) > 0 {
		b.WriteString("\n    AND submission_submission.state NOT IN (" + placeholders(len(q.ExcludeStates)) + ")")
		for _, st := range q.ExcludeStates {
			args = append(args, st)
		}
	}
	if len(q.ExcludeTypes) > 0 {
		b.WriteString("\n    AND submission_submission.submission_type_id NOT IN (" + placeholders(len(q.ExcludeTypes)) + ")")
		for _, id := range q.ExcludeTypes {
			args = append(args, id)
		}
	}
	b.WriteString(themeRowsOrder)
	return b.String(), args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// ThemeRows returns one row per (submission, theme answer) pair selected by
// q, ordered by submission ID and then theme ID.
func (s *Snapshot) ThemeRows(ctx context.Context, q types.QueryConfig) ([]types.Row, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	query, args := themeRowsQuery(q)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query theme rows: %w", err)
	}
	defer rows.Close()

	var out []types.Row
	for rows.Next() {
		var r types.Row
		if err := rows.Scan(&r.AbstractID, &r.Title, &r.TypeID, &r.ThemeID); err != nil {
			return nil, fmt.Errorf("scan theme row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate theme rows: %w", err)
	}
	return out, nil
}

// AssignPaperIDs stores every PID on its submission in a single
// transaction. A PID for a submission missing from the snapshot, or issued
// for a different title, rolls back the whole batch with a
// *types.DataConsistencyError. It returns the number of submissions updated.
func (s *Snapshot) AssignPaperIDs(ctx context.Context, pids []types.PaperID) (int, error) {
	db, err := s.handle()
	if err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range pids {
		var title string
		err := tx.QueryRowContext(ctx,
			"SELECT title FROM submission_submission WHERE id = ?", p.AbstractID,
		).Scan(&title)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, &types.DataConsistencyError{AbstractID: p.AbstractID, Reason: "no such submission in the snapshot"}
		}
		if err != nil {
			return 0, fmt.Errorf("read submission %d: %w", p.AbstractID, err)
		}
		if p.Title != "" && p.Title != title {
			return 0, &types.DataConsistencyError{
				AbstractID: p.AbstractID,
				Reason:     fmt.Sprintf("report title %q does not match snapshot title %q", p.Title, title),
			}
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE submission_submission SET paper_id = ? WHERE id = ?", p.PID, p.AbstractID,
		); err != nil {
			return 0, fmt.Errorf("update submission %d: %w", p.AbstractID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return len(pids), nil
}

// PaperIDs returns the stored PID of every submission that has one, keyed by
// submission ID. It reads back what AssignPaperIDs wrote, for verification
// in tests.
func (s *Snapshot) PaperIDs(ctx context.Context) (map[int]string, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT id, paper_id FROM submission_submission WHERE paper_id IS NOT NULL AND paper_id != '' ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("query paper ids: %w", err)
	}
	defer rows.Close()

	out := make(map[int]string)
	for rows.Next() {
		var id int
		var pid string
		if err := rows.Scan(&id, &pid); err != nil {
			return nil, fmt.Errorf("scan paper id: %w", err)
		}
		out[id] = pid
	}
	return out, rows.Err()
}
