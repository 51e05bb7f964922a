package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAuditCommand creates the audit command.
func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:           "audit",
		Short:         "Show the action trail, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(rootOpts, limit, cmd)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}

func runAudit(opts *RootOptions, limit int, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	c, _, cleanup, err := openCore(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	logs, err := c.AuditLog(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "read audit log", err)
	}
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}

	if formatter.Format == "json" {
		return formatter.Success(logs)
	}
	if len(logs) == 0 {
		return formatter.Success("Audit trail is empty")
	}
	for _, e := range logs {
		fmt.Fprintf(formatter.Writer, "%s  %-18s %-14s %s\n",
			e.At.Format("2006-01-02 15:04:05"), e.Action, e.Actor, e.Detail)
	}
	return nil
}
