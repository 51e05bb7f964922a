package core

import (
	"context"
	"fmt"

	"github.com/addisware/addispos/internal/bus"
	"github.com/addisware/addispos/internal/model"
)

// AdjustStock applies a delta to an item's stock, floored at zero:
// negative at order creation, positive at manual restock. The full
// updated menu collection rides on the stock-changed event so views
// refresh in one hop.
func (c *Core) AdjustStock(ctx context.Context, itemID string, delta int, actor string) (model.MenuItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	menu, err := readList[model.MenuItem](ctx, c, colMenu)
	if err != nil {
		return model.MenuItem{}, err
	}
	i := itemIndex(menu, itemID)
	if i < 0 {
		return model.MenuItem{}, notFound("item", itemID)
	}

	before := menu[i].Stock
	menu[i].Stock = max(0, menu[i].Stock+delta)
	item := menu[i]

	blobs := make(map[string][]byte)
	if blobs[colMenu], err = encode(colMenu, menu); err != nil {
		return model.MenuItem{}, err
	}
	if blobs[colLogs], err = c.appendAudit(ctx, actor, "Stock Adjust",
		fmt.Sprintf("%s: %d -> %d", item.Name, before, item.Stock)); err != nil {
		return model.MenuItem{}, err
	}
	if sq, err := c.syncBlob(ctx, ActionUpdateMenu, item); err != nil {
		return model.MenuItem{}, err
	} else if sq != nil {
		blobs[colSyncQueue] = sq
	}

	if err := c.store.WriteMany(ctx, blobs); err != nil {
		return model.MenuItem{}, err
	}

	c.bus.Publish(bus.StockChanged{Menu: menu})
	return item, nil
}
