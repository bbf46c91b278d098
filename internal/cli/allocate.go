package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/themes/internal/allocator"
	"github.com/mesh-intelligence/themes/internal/report"
)

type allocateFlags struct {
	order  string
	output string
}

func newAllocateCmd(a *app) *cobra.Command {
	var f allocateFlags
	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Assign every abstract to one theme and print paper IDs",
		Long: `Read the theme answers from the snapshot, assign abstracts with a single
theme directly, then place abstracts with several themes in whichever of
them is smallest. Prints one section per theme with a paper ID per abstract.

Example:
  themes allocate --db pretalx.db
  themes allocate --order input -o papers.tab`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runAllocate(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.order, "order", "", "processing order for multi-theme abstracts: reverse or input (default from config)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the report to this file instead of stdout")
	return cmd
}

func (a *app) runAllocate(cmd *cobra.Command, f allocateFlags) error {
	ctx := cmd.Context()
	cfg := a.config

	snap, err := a.attachSnapshot(ctx)
	if err != nil {
		return err
	}
	defer a.detach(snap)

	rows, err := snap.ThemeRows(ctx, cfg.Query)
	if err != nil {
		return err
	}
	abstracts, err := allocator.Group(rows)
	if err != nil {
		return err
	}
	a.logger.Info("loaded abstracts",
		zap.Int("rows", len(rows)),
		zap.Int("abstracts", len(abstracts)))

	alloc := allocator.New(
		allocator.WithOrder(cfg.Allocation.Order),
		allocator.WithDecisionHook(func(d allocator.Decision) {
			a.logger.Debug("placed abstract",
				zap.Int("abstract", d.AbstractID),
				zap.Int("theme", d.ThemeID),
				zap.Any("counts", d.Counts))
		}),
	)
	assignment, err := alloc.Allocate(abstracts, cfg.Catalog.Themes)
	if err != nil {
		return err
	}
	for _, t := range assignment.Themes {
		a.logger.Debug("theme size", zap.Int("theme", t.ID), zap.Int("members", len(t.Members)))
	}

	rep, err := report.Build(assignment, abstracts, cfg.Catalog)
	if err != nil {
		return err
	}
	rep.RunID = a.runID

	if f.output == "" {
		return a.writeReport(cmd.OutOrStdout(), rep)
	}

	file, err := os.Create(f.output)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := a.writeReport(file, rep); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close report file: %w", err)
	}
	a.logger.Info("wrote report", zap.String("path", f.output), zap.Int("entries", rep.Len()))
	return nil
}

func (a *app) writeReport(w io.Writer, rep report.Report) error {
	var err error
	if a.flags.jsonMode {
		err = rep.WriteJSON(w)
	} else {
		err = rep.WriteText(w)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
