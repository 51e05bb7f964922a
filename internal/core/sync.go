package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/addisware/addispos/internal/bus"
	"github.com/addisware/addispos/internal/model"
)

// Sync queue action tags.
const (
	ActionCreateOrder       = "CREATE_ORDER"
	ActionUpdateOrderStatus = "UPDATE_ORDER_STATUS"
	ActionUpdateMenu        = "UPDATE_MENU"
	ActionUpdateTable       = "UPDATE_TABLE"
	ActionUpdateStaff       = "UPDATE_STAFF"
	ActionUpdateCustomer    = "UPDATE_CUSTOMER"
	ActionAddReview         = "ADD_REVIEW"
	ActionUpdateQueue       = "UPDATE_QUEUE"
)

// SyncTarget receives the buffered offline mutations when connectivity
// returns. Push must treat the batch as all-or-nothing: on error the
// queue is retained untouched and the next reconnection retries the
// whole batch.
type SyncTarget interface {
	Push(ctx context.Context, entries []model.SyncEntry) error
}

// LogTarget is the default SyncTarget: it only logs the drained batch.
// The local store is the source of truth during disconnection, so
// replay needs no conflict resolution.
type LogTarget struct{}

// Push implements SyncTarget.
func (LogTarget) Push(_ context.Context, entries []model.SyncEntry) error {
	slog.Info("sync replay", "entries", len(entries))
	return nil
}

// syncBlob returns the encoded sync queue with a new entry appended,
// or (nil, nil) while connected - callers merge a nil blob into their
// WriteMany as "no sync write". Must be called with c.mu held.
func (c *Core) syncBlob(ctx context.Context, action string, payload any) ([]byte, error) {
	if c.online {
		return nil, nil
	}

	entries, err := readList[model.SyncEntry](ctx, c, colSyncQueue)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode sync payload for %s: %w", action, err)
	}

	entries = append(entries, model.SyncEntry{
		ID:         c.ids.NewID(),
		Seq:        c.clock.Next(),
		Action:     action,
		Payload:    raw,
		EnqueuedAt: c.now(),
	})
	return encode(colSyncQueue, entries)
}

// PendingSync returns the buffered offline mutations in enqueue order.
func (c *Core) PendingSync(ctx context.Context) ([]model.SyncEntry, error) {
	return readList[model.SyncEntry](ctx, c, colSyncQueue)
}

// SetConnectivity flips the connectivity flag. On the offline→online
// edge the sync queue is drained once: entries are pushed to the
// SyncTarget in enqueue order and cleared on success. On push failure
// the queue is retained untouched for the next transition.
//
// A connectivity-changed event is published on every flip.
func (c *Core) SetConnectivity(ctx context.Context, online bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	wasOnline := c.online
	c.online = online
	c.bus.Publish(bus.ConnectivityChanged{Online: online})

	if wasOnline || !online {
		return nil
	}

	// Offline → online edge: drain once.
	entries, err := readList[model.SyncEntry](ctx, c, colSyncQueue)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	if err := c.target.Push(ctx, entries); err != nil {
		slog.Error("sync replay failed, queue retained",
			"entries", len(entries),
			"error", err,
		)
		return fmt.Errorf("sync replay: %w", err)
	}

	empty, err := encode(colSyncQueue, []model.SyncEntry{})
	if err != nil {
		return err
	}
	if err := c.store.Write(ctx, colSyncQueue, empty); err != nil {
		return err
	}

	slog.Info("sync replay complete", "entries", len(entries))
	return nil
}
