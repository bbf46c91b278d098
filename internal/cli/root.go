// Package cli implements the themes command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/themes/internal/logging"
	"github.com/mesh-intelligence/themes/internal/paths"
	"github.com/mesh-intelligence/themes/internal/sqlite"
	"github.com/mesh-intelligence/themes/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// errUsage marks command-line mistakes so they map to exitUserError.
var errUsage = errors.New("usage")

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	database  string
	jsonMode  bool
	verbose   bool
}

// app is the state shared by the subcommands of one root command.
type app struct {
	flags     rootFlags
	newLogger func(verbose bool) (*zap.Logger, error)

	logger    *zap.Logger
	runID     string
	configDir string
	config    types.Config
}

// NewRootCmd creates the top-level "themes" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(logging.New)
}

func newRootCmd(newLogger func(bool) (*zap.Logger, error)) *cobra.Command {
	a := &app{newLogger: newLogger}

	root := &cobra.Command{
		Use:   "themes",
		Short: "Balance conference abstracts across themes and issue paper IDs",
		Long: `themes reads submissions and their theme answers from a snapshot of the
conference database, assigns every abstract to exactly one theme while keeping
themes balanced, and prints the paper ID listing. The listing can be loaded
back into the snapshot with assign-pids.

A snapshot is prepared with init, then filled from JSONL table dumps with
import.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/themes)")
	root.PersistentFlags().StringVar(&a.flags.database, "db", "", "snapshot database (default: $(CWD)/pretalx.db)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "log at debug level")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newImportCmd(a))
	root.AddCommand(newAllocateCmd(a))
	root.AddCommand(newAssignPIDsCmd(a))
	root.AddCommand(newCatalogCmd(a))

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx := context.Background()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		return exitCode(err)
	}
	return exitSuccess
}

// skipSetup names the commands that need neither a logger nor a config.
var skipSetup = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
}

// setup builds the logger and loads the configuration before any
// subcommand outside skipSetup runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if skipSetup[cmd.Name()] {
		return nil
	}

	logger, err := a.newLogger(a.flags.verbose)
	if err != nil {
		return err
	}
	a.logger, a.runID = logging.WithRun(logger)

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	a.configDir = configDir

	cfg, err := loadConfig(configDir, a.flags.database, cmd.Flags())
	if err != nil {
		return err
	}
	a.config = cfg

	a.logger.Debug("configuration loaded",
		zap.String("config_dir", configDir),
		zap.String("database", cfg.Database),
		zap.String("order", cfg.Allocation.Order),
		zap.Int("themes", len(cfg.Catalog.Themes)))
	return nil
}

func (a *app) teardown(_ *cobra.Command, _ []string) error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return nil
}

// attachSnapshot opens the configured snapshot. The caller must Detach it.
func (a *app) attachSnapshot(ctx context.Context) (*sqlite.Snapshot, error) {
	snap := sqlite.NewSnapshot()
	if err := snap.Attach(ctx, a.config); err != nil {
		return nil, fmt.Errorf("attach snapshot: %w", err)
	}
	return snap, nil
}

// detach closes snap, logging instead of failing the command on error.
func (a *app) detach(snap *sqlite.Snapshot) {
	if err := snap.Detach(); err != nil {
		a.logger.Warn("detach snapshot", zap.Error(err))
	}
}

// userErrors are failures the operator fixes by changing input, flags or
// configuration.
var userErrors = []error{
	errUsage,
	types.ErrInvalidInput,
	types.ErrDataConsistency,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
	types.ErrDatabaseEmpty,
	types.ErrOrderUnknown,
	types.ErrCatalogEmpty,
	types.ErrDuplicateTheme,
	types.ErrDuplicateType,
	types.ErrPrefixInvalid,
	sqlite.ErrSnapshotMissing,
	sqlite.ErrDumpMissing,
	os.ErrNotExist,
}

// exitCode maps an error to exitUserError or exitSysError.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}

// exactArgs wraps cobra.ExactArgs so argument mistakes count as usage errors.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
		return nil
	}
}
