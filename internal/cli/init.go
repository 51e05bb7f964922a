package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	var tables int

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create and seed the state store",
		Long: `Create the SQLite state store and seed it with the default menu,
dining tables, and staff roster. Collections that already exist are
left untouched, so init is safe to re-run.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(rootOpts, tables, cmd)
		},
	}

	cmd.Flags().IntVar(&tables, "tables", 0, "number of dining tables (defaults to config)")
	return cmd
}

func runInit(opts *RootOptions, tables int, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	c, cfg, cleanup, err := openCore(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	if tables <= 0 {
		tables = cfg.SeedTables
	}
	formatter.VerboseLog("Seeding store with %d tables", tables)

	if err := c.Seed(cmd.Context(), tables); err != nil {
		_ = formatter.Error("E_SEED", err.Error())
		return WrapExitError(ExitCommandError, "seed store", err)
	}

	return formatter.Success(fmt.Sprintf("Store ready (%d tables)", tables))
}
