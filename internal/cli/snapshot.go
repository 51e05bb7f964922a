package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/addisware/addispos/internal/core"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full state as a snapshot",
		Long: `Export every collection as one consistent JSON snapshot. The same
state always exports the same bytes, so snapshots diff cleanly.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, out, cmd)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write snapshot to file (default stdout)")
	return cmd
}

func runExport(opts *RootOptions, out string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	c, _, cleanup, err := openCore(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	data, err := c.ExportJSON(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "export state", err)
	}

	if out == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return WrapExitError(ExitCommandError, "write snapshot", err)
	}
	formatter.VerboseLog("Wrote %d bytes to %s", len(data), out)
	return formatter.Success(fmt.Sprintf("Snapshot written to %s", out))
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <snapshot.json>",
		Short: "Replace the full state from a snapshot",
		Long: `Validate a snapshot file and atomically replace every collection with
its content. An incompatible snapshot is rejected before any write.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runImport(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "read snapshot", err)
	}

	c, _, cleanup, err := openCore(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := c.ImportState(cmd.Context(), data); err != nil {
		if core.IsInvalid(err) {
			_ = formatter.Error("E_SNAPSHOT", err.Error())
			return WrapExitError(ExitFailure, "snapshot rejected", err)
		}
		return WrapExitError(ExitCommandError, "import state", err)
	}
	return formatter.Success(fmt.Sprintf("State imported from %s", path))
}
