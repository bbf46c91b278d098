package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/themes/internal/sqlite"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config and prepare the snapshot",
		Long: `Create the configuration directory and a default config.yaml if missing,
then create any missing snapshot tables and record the catalog's themes and
submission types in the snapshot. Existing data is left untouched.`,
		Args: exactArgs(0),
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, _ []string) error {
	written, err := writeConfigIfMissing(a.configDir, a.config)
	if err != nil {
		return err
	}
	if written {
		a.logger.Info("wrote default config", zap.String("path", filepath.Join(a.configDir, configFileExt)))
	}

	ctx := cmd.Context()
	snap := sqlite.NewSnapshot()
	if err := snap.Create(ctx, a.config); err != nil {
		return fmt.Errorf("initialize snapshot: %w", err)
	}
	defer a.detach(snap)

	if err := snap.SeedCatalog(ctx, a.config.Catalog, a.config.Query.ThemeQuestionID); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "config: %s\nsnapshot: %s\n",
		filepath.Join(a.configDir, configFileExt), snap.Path())
	return nil
}
