// Package cli implements the addispos command line: store
// initialization, floor status, queue control, snapshot export/import,
// and the audit trail, all over the same core engine the terminals
// embed.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/addisware/addispos/internal/bus"
	"github.com/addisware/addispos/internal/config"
	"github.com/addisware/addispos/internal/core"
	"github.com/addisware/addispos/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // config file path
	DBPath  string // overrides the config's db_path when set
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the addispos CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "addispos",
		Short: "AddisPOS - restaurant order and table synchronization engine",
		Long:  "Operator tooling for the AddisPOS state engine: seed a store, inspect the floor, drive the walk-in queue, and move snapshots between terminals.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "addispos.yaml", "config file path")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "database path (overrides config)")

	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewQueueCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewAuditCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// openCore loads the config and opens the engine over its store. The
// returned cleanup closes the store.
func openCore(opts *RootOptions) (*core.Core, config.Config, func(), error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, config.Config{}, nil, WrapExitError(ExitCommandError, "load config", err)
	}
	path := cfg.DBPath
	if opts.DBPath != "" {
		path = opts.DBPath
	}

	s, err := store.Open(path)
	if err != nil {
		return nil, config.Config{}, nil, WrapExitError(ExitCommandError, "open database", err)
	}

	c := core.New(s, bus.New(),
		core.WithBranches(cfg.Branches),
		core.WithAuditCap(cfg.AuditCap),
	)
	return c, cfg, func() { s.Close() }, nil
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
