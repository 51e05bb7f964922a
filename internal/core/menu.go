package core

import (
	"context"
	"fmt"

	"github.com/addisware/addispos/internal/bus"
	"github.com/addisware/addispos/internal/model"
)

// Menu returns every menu item, archived ones included; filtering is
// a view concern.
func (c *Core) Menu(ctx context.Context) ([]model.MenuItem, error) {
	return readList[model.MenuItem](ctx, c, colMenu)
}

// AddMenuItem adds a new item to the menu. An empty id is filled in.
func (c *Core) AddMenuItem(ctx context.Context, item model.MenuItem, actor string) (model.MenuItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item.Name == "" {
		return model.MenuItem{}, invalid("item", "name is required")
	}
	if item.Price < 0 {
		return model.MenuItem{}, invalid("item", "price must not be negative")
	}
	if item.Stock < 0 {
		return model.MenuItem{}, invalid("item", "stock must not be negative")
	}

	menu, err := readList[model.MenuItem](ctx, c, colMenu)
	if err != nil {
		return model.MenuItem{}, err
	}
	if item.ID == "" {
		item.ID = c.ids.NewID()
	} else if itemIndex(menu, item.ID) >= 0 {
		return model.MenuItem{}, invalid("item", "id %s already exists", item.ID)
	}
	menu = append(menu, item)

	if err := c.saveMenu(ctx, menu, actor, "Menu Add", fmt.Sprintf("Added item: %s", item.Name)); err != nil {
		return model.MenuItem{}, err
	}
	return item, nil
}

// UpdateMenuItem replaces an existing item wholesale. Stock passes
// through unchanged only if the caller preserved it; quantity changes
// belong to AdjustStock.
func (c *Core) UpdateMenuItem(ctx context.Context, item model.MenuItem, actor string) (model.MenuItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	menu, err := readList[model.MenuItem](ctx, c, colMenu)
	if err != nil {
		return model.MenuItem{}, err
	}
	i := itemIndex(menu, item.ID)
	if i < 0 {
		return model.MenuItem{}, notFound("item", item.ID)
	}
	menu[i] = item

	if err := c.saveMenu(ctx, menu, actor, "Menu Edit", fmt.Sprintf("Updated item: %s", item.Name)); err != nil {
		return model.MenuItem{}, err
	}
	return item, nil
}

// ArchiveMenuItem toggles the archived flag. Items are never deleted;
// an archived item keeps its history and can be restored the same way.
func (c *Core) ArchiveMenuItem(ctx context.Context, itemID, actor string) (model.MenuItem, error) {
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
	menu[i].Archived = !menu[i].Archived
	item := menu[i]

	verb := "Archived"
	if !item.Archived {
		verb = "Restored"
	}
	if err := c.saveMenu(ctx, menu, actor, "Menu Archive", fmt.Sprintf("%s item: %s", verb, item.Name)); err != nil {
		return model.MenuItem{}, err
	}
	return item, nil
}

// saveMenu persists the menu with its audit entry and offline sync
// record, then fans the new collection out. Must be called with c.mu
// held.
func (c *Core) saveMenu(ctx context.Context, menu []model.MenuItem, actor, action, detail string) error {
	blobs := make(map[string][]byte)
	var err error
	if blobs[colMenu], err = encode(colMenu, menu); err != nil {
		return err
	}
	if blobs[colLogs], err = c.appendAudit(ctx, actor, action, detail); err != nil {
		return err
	}
	if sq, err := c.syncBlob(ctx, ActionUpdateMenu, menu); err != nil {
		return err
	} else if sq != nil {
		blobs[colSyncQueue] = sq
	}

	if err := c.store.WriteMany(ctx, blobs); err != nil {
		return err
	}
	c.bus.Publish(bus.StockChanged{Menu: menu})
	return nil
}
