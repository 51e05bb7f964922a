package core

import (
	"context"
	"fmt"

	"github.com/addisware/addispos/internal/bus"
	"github.com/addisware/addispos/internal/model"
)

// UpdateTableStatus moves a table through the occupancy state machine.
//
// Occupying requires the id of the order taking the table; the
// occupancy timestamp is recorded alongside it. Clearing to Available
// always clears both together. CreateOrder occupies tables itself;
// this operation serves reservation, cleaning, and force-clear flows.
func (c *Core) UpdateTableStatus(ctx context.Context, tableID string, status model.TableStatus, orderID, actor string) (model.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !model.ValidTableStatus(status) {
		return model.Table{}, invalid("table", "unknown status %q", status)
	}

	tables, err := readList[model.Table](ctx, c, colTables)
	if err != nil {
		return model.Table{}, err
	}
	i := tableIndex(tables, tableID)
	if i < 0 {
		return model.Table{}, notFound("table", tableID)
	}

	from := tables[i].Status
	if !model.CanOccupyTransition(from, status) {
		return model.Table{}, invalid("table", "cannot move table %s from %s to %s", tableID, from, status)
	}

	switch status {
	case model.TableOccupied:
		if orderID == "" {
			return model.Table{}, invalid("table", "occupying table %s requires an order id", tableID)
		}
		now := c.now()
		tables[i].CurrentOrderID = orderID
		tables[i].OccupiedSince = &now
	case model.TableAvailable:
		tables[i].CurrentOrderID = ""
		tables[i].OccupiedSince = nil
	}
	tables[i].Status = status
	table := tables[i]

	blobs := make(map[string][]byte)
	if blobs[colTables], err = encode(colTables, tables); err != nil {
		return model.Table{}, err
	}
	if blobs[colLogs], err = c.appendAudit(ctx, actor, "Table Status",
		fmt.Sprintf("Table %s %s -> %s", table.Name, from, status)); err != nil {
		return model.Table{}, err
	}
	if sq, err := c.syncBlob(ctx, ActionUpdateTable, table); err != nil {
		return model.Table{}, err
	} else if sq != nil {
		blobs[colSyncQueue] = sq
	}

	if err := c.store.WriteMany(ctx, blobs); err != nil {
		return model.Table{}, err
	}

	c.bus.Publish(bus.TableStateChanged{Tables: tables})
	return table, nil
}

// AssignTable sets or clears a table's assigned staff member. The
// assignment is orthogonal to occupancy status and may change at any
// time; an empty staffID clears it.
func (c *Core) AssignTable(ctx context.Context, tableID, staffID string) (model.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tables, err := readList[model.Table](ctx, c, colTables)
	if err != nil {
		return model.Table{}, err
	}
	i := tableIndex(tables, tableID)
	if i < 0 {
		return model.Table{}, notFound("table", tableID)
	}

	tables[i].AssignedStaffID = staffID
	table := tables[i]

	blobs := make(map[string][]byte)
	if blobs[colTables], err = encode(colTables, tables); err != nil {
		return model.Table{}, err
	}
	if sq, err := c.syncBlob(ctx, ActionUpdateTable, table); err != nil {
		return model.Table{}, err
	} else if sq != nil {
		blobs[colSyncQueue] = sq
	}

	if err := c.store.WriteMany(ctx, blobs); err != nil {
		return model.Table{}, err
	}

	c.bus.Publish(bus.TableStateChanged{Tables: tables})
	return table, nil
}

// Tables returns every table in seeded order.
func (c *Core) Tables(ctx context.Context) ([]model.Table, error) {
	return readList[model.Table](ctx, c, colTables)
}
