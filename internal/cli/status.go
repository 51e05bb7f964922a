package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/addisware/addispos/internal/core"
	"github.com/addisware/addispos/internal/model"
)

// FloorStatus is the status command's payload.
type FloorStatus struct {
	Orders      OrderCounts      `json:"orders"`
	Tables      TableCounts      `json:"tables"`
	Queue       model.QueueState `json:"queue"`
	LowStock    []StockLine      `json:"lowStock,omitempty"`
	PendingSync int              `json:"pendingSync"`
	OpenRevenue model.Cents      `json:"openRevenue"`
	EstWaitMins int              `json:"estimatedWaitMinutes"`
}

// OrderCounts breaks the order list down by lifecycle state.
type OrderCounts struct {
	Pending int `json:"pending"`
	Cooking int `json:"cooking"`
	Ready   int `json:"ready"`
	Served  int `json:"served"`
	Held    int `json:"held"`
}

// TableCounts breaks the floor down by occupancy state.
type TableCounts struct {
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
	Reserved  int `json:"reserved"`
	Cleaning  int `json:"cleaning"`
}

// StockLine is one low-stock warning row.
type StockLine struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// lowStockThreshold marks items worth restocking on the status board.
const lowStockThreshold = 5

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "status",
		Short:         "Show the floor at a glance",
		Long:          "Summarize open orders, table occupancy, the walk-in queue, low stock, and pending offline mutations.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(rootOpts, cmd)
		},
	}
	return cmd
}

func runStatus(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	c, cfg, cleanup, err := openCore(opts)
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := cmd.Context()

	status := FloorStatus{}

	orders, err := c.Orders(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "read orders", err)
	}
	for _, o := range orders {
		switch o.Status {
		case model.OrderPending:
			status.Orders.Pending++
		case model.OrderCooking:
			status.Orders.Cooking++
		case model.OrderReady:
			status.Orders.Ready++
		case model.OrderServed:
			status.Orders.Served++
		case model.OrderHeld:
			status.Orders.Held++
		}
		if o.Status != model.OrderServed {
			status.OpenRevenue += o.Total
		}
	}

	tables, err := c.Tables(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "read tables", err)
	}
	for _, tb := range tables {
		switch tb.Status {
		case model.TableAvailable:
			status.Tables.Available++
		case model.TableOccupied:
			status.Tables.Occupied++
		case model.TableReserved:
			status.Tables.Reserved++
		case model.TableCleaning:
			status.Tables.Cleaning++
		}
	}

	if status.Queue, err = c.Queue(ctx); err != nil {
		return WrapExitError(ExitCommandError, "read queue", err)
	}
	status.EstWaitMins = int(core.EstimatedWait(status.Queue, cfg.TicketWait()).Minutes())

	menu, err := c.Menu(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "read menu", err)
	}
	for _, item := range menu {
		if !item.Archived && item.Stock < lowStockThreshold {
			status.LowStock = append(status.LowStock, StockLine{Name: item.Name, Stock: item.Stock})
		}
	}

	pending, err := c.PendingSync(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "read sync queue", err)
	}
	status.PendingSync = len(pending)

	if formatter.Format == "json" {
		return formatter.Success(status)
	}
	printStatus(formatter, status)
	return nil
}

func printStatus(f *OutputFormatter, s FloorStatus) {
	w := f.Writer
	fmt.Fprintf(w, "Orders   pending %d  cooking %d  ready %d  served %d  held %d\n",
		s.Orders.Pending, s.Orders.Cooking, s.Orders.Ready, s.Orders.Served, s.Orders.Held)
	fmt.Fprintf(w, "Tables   available %d  occupied %d  reserved %d  cleaning %d\n",
		s.Tables.Available, s.Tables.Occupied, s.Tables.Reserved, s.Tables.Cleaning)
	fmt.Fprintf(w, "Queue    serving #%d of #%d (%d waiting, ~%d min)\n",
		s.Queue.CurrentServing, s.Queue.LastIssued, s.Queue.Waiting(), s.EstWaitMins)
	fmt.Fprintf(w, "Open revenue: %s\n", FormatBirr(s.OpenRevenue))
	if len(s.LowStock) > 0 {
		fmt.Fprintln(w, "Low stock:")
		for _, line := range s.LowStock {
			fmt.Fprintf(w, "  %-24s %d left\n", line.Name, line.Stock)
		}
	}
	if s.PendingSync > 0 {
		fmt.Fprintf(w, "Pending offline mutations: %d\n", s.PendingSync)
	}
}
