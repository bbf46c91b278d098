package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/themes/internal/report"
)

func newAssignPIDsCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "assign-pids <report>",
		Short: "Store the paper IDs of an allocation report in the snapshot",
		Long: `Read a report produced by allocate and store each paper ID on its
submission. Every PID must end in its abstract ID and every abstract must
exist in the snapshot with the same title; otherwise nothing is written.

Example:
  themes allocate -o papers.tab
  themes assign-pids papers.tab`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAssignPIDs(cmd, args[0], dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the report without writing")
	return cmd
}

func (a *app) runAssignPIDs(cmd *cobra.Command, path string, dryRun bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	defer file.Close()

	pids, err := report.Parse(file)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	a.logger.Info("parsed report", zap.String("path", path), zap.Int("paper_ids", len(pids)))

	if dryRun {
		return a.writeAssignResult(cmd, len(pids), true)
	}

	ctx := cmd.Context()
	snap, err := a.attachSnapshot(ctx)
	if err != nil {
		return err
	}
	defer a.detach(snap)

	n, err := snap.AssignPaperIDs(ctx, pids)
	if err != nil {
		return err
	}
	return a.writeAssignResult(cmd, n, false)
}

// assignResult is the --json output of assign-pids.
type assignResult struct {
	PaperIDs int  `json:"paper_ids"`
	DryRun   bool `json:"dry_run"`
}

func (a *app) writeAssignResult(cmd *cobra.Command, n int, dryRun bool) error {
	out := cmd.OutOrStdout()
	if a.flags.jsonMode {
		return json.NewEncoder(out).Encode(assignResult{PaperIDs: n, DryRun: dryRun})
	}
	if dryRun {
		fmt.Fprintf(out, "%d paper IDs valid (dry run)\n", n)
		return nil
	}
	fmt.Fprintf(out, "assigned %d paper IDs\n", n)
	return nil
}
