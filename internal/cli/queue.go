package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/addisware/addispos/internal/core"
)

// NewQueueCommand creates the queue command group.
func NewQueueCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Drive the walk-in ticket queue",
	}
	cmd.AddCommand(newQueueIssueCommand(rootOpts))
	cmd.AddCommand(newQueueCallCommand(rootOpts))
	cmd.AddCommand(newQueueShowCommand(rootOpts))
	return cmd
}

func newQueueIssueCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "issue",
		Short:         "Issue the next walk-in ticket",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			c, _, cleanup, err := openCore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := c.IssueTicket(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "issue ticket", err)
			}
			if formatter.Format == "json" {
				return formatter.Success(map[string]int{"ticket": n})
			}
			return formatter.Success(fmt.Sprintf("Ticket #%d", n))
		},
	}
}

func newQueueCallCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "call",
		Short:         "Call the next ticket to the counter",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			c, _, cleanup, err := openCore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			q, err := c.CallNextTicket(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "call next ticket", err)
			}
			if formatter.Format == "json" {
				return formatter.Success(q)
			}
			if q.CurrentServing == 0 {
				return formatter.Success("Queue is empty")
			}
			return formatter.Success(fmt.Sprintf("Now serving #%d (%d waiting)", q.CurrentServing, q.Waiting()))
		},
	}
}

func newQueueShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Show the queue counters",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			c, cfg, cleanup, err := openCore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			q, err := c.Queue(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "read queue", err)
			}
			if formatter.Format == "json" {
				return formatter.Success(q)
			}
			from, to := core.NowPreparing(q)
			if from == 0 {
				return formatter.Success(fmt.Sprintf("Serving #%d, nothing waiting", q.CurrentServing))
			}
			wait := core.EstimatedWait(q, cfg.TicketWait())
			return formatter.Success(fmt.Sprintf("Serving #%d, preparing #%d-#%d, ~%s wait for a new ticket",
				q.CurrentServing, from, to, wait))
		},
	}
}
