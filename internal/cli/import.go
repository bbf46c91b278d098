package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/themes/internal/sqlite"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Load JSONL table dumps of the conference database into the snapshot",
		Long: `Read <table>.jsonl files from dir, one JSON object per line, and load
them into the snapshot, creating it if needed. submission_submission.jsonl is
required; the submission type, answer option, answer and answer option link
dumps are optional. Rows with an existing ID are replaced.

Example:
  themes import ./dump
  themes allocate`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runImport(cmd, args[0])
		},
	}
}

func (a *app) runImport(cmd *cobra.Command, dir string) error {
	ctx := cmd.Context()
	snap := sqlite.NewSnapshot()
	if err := snap.Create(ctx, a.config); err != nil {
		return fmt.Errorf("initialize snapshot: %w", err)
	}
	defer a.detach(snap)

	counts, err := snap.ImportJSONL(ctx, dir)
	if err != nil {
		return fmt.Errorf("import %s: %w", dir, err)
	}

	total := 0
	for _, c := range counts {
		a.logger.Info("imported table", zap.String("table", c.Table), zap.Int("rows", c.Rows))
		total += c.Rows
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d rows into %s\n", total, snap.Path())
	return nil
}
