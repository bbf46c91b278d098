package sqlite

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/themes/pkg/types"
)

// SeedCatalog records the catalog's submission types and themes in the
// snapshot, the themes as answer options of questionID. Existing rows are
// left untouched, so seeding is idempotent.
func (s *Snapshot) SeedCatalog(ctx context.Context, c types.Catalog, questionID int) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, st := range c.Types {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO submission_submissiontype (id, name) VALUES (?, ?)",
			st.ID, st.Name,
		); err != nil {
			return fmt.Errorf("seeding submission type %d: %w", st.ID, err)
		}
	}
	for _, th := range c.Themes {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO submission_answeroption (id, question_id, answer) VALUES (?, ?, ?)",
			th.ID, questionID, th.Label,
		); err != nil {
			return fmt.Errorf("seeding theme %d: %w", th.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}

// Submission is a submission together with its theme answer, used to build
// fixture snapshots by hand.
type Submission struct {
	ID         int
	Title      string
	State      string
	TypeID     int
	QuestionID int
	Themes     []int
}

// AddSubmission inserts a submission and, when it has themes, one answer to
// QuestionID selecting each of them. It builds fixture snapshots for tests;
// real snapshots are filled by ImportJSONL.
func (s *Snapshot) AddSubmission(ctx context.Context, sub Submission) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO submission_submission (id, title, state, submission_type_id) VALUES (?, ?, ?, ?)",
		sub.ID, sub.Title, sub.State, sub.TypeID,
	); err != nil {
		return fmt.Errorf("insert submission %d: %w", sub.ID, err)
	}

	if len(sub.Themes) > 0 {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO submission_answer (submission_id, question_id) VALUES (?, ?)",
			sub.ID, sub.QuestionID,
		)
		if err != nil {
			return fmt.Errorf("insert answer for %d: %w", sub.ID, err)
		}
		answerID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("answer id for %d: %w", sub.ID, err)
		}
		for _, th := range sub.Themes {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO submission_answer_options (answer_id, answeroption_id) VALUES (?, ?)",
				answerID, th,
			); err != nil {
				return fmt.Errorf("insert theme %d for %d: %w", th, sub.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
