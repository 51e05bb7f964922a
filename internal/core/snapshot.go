package core

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"

	"github.com/addisware/addispos/internal/bus"
	"github.com/addisware/addispos/internal/model"
)

//go:embed snapshot.cue
var snapshotSchema string

// Snapshot is the entire persisted-state file format: every collection
// keyed by name, plus the export timestamp. There is no schema version
// field; structural compatibility is checked on import instead.
type Snapshot struct {
	Menu      []model.MenuItem   `json:"menu"`
	Orders    []model.Order      `json:"orders"`
	Tables    []model.Table      `json:"tables"`
	Staff     []model.Staff      `json:"staff"`
	Customers []model.Customer   `json:"customers"`
	Reviews   []model.Review     `json:"reviews"`
	Logs      []model.AuditEntry `json:"logs"`
	Queue     model.QueueState   `json:"queue"`
	Timestamp time.Time          `json:"timestamp"`
}

// ExportState captures all collections in one consistent snapshot.
func (c *Core) ExportState(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{Timestamp: c.now()}
	var err error
	if snap.Menu, err = readList[model.MenuItem](ctx, c, colMenu); err != nil {
		return Snapshot{}, err
	}
	if snap.Orders, err = readList[model.Order](ctx, c, colOrders); err != nil {
		return Snapshot{}, err
	}
	if snap.Tables, err = readList[model.Table](ctx, c, colTables); err != nil {
		return Snapshot{}, err
	}
	if snap.Staff, err = readList[model.Staff](ctx, c, colStaff); err != nil {
		return Snapshot{}, err
	}
	if snap.Customers, err = readList[model.Customer](ctx, c, colCustomers); err != nil {
		return Snapshot{}, err
	}
	if snap.Reviews, err = readList[model.Review](ctx, c, colReviews); err != nil {
		return Snapshot{}, err
	}
	if snap.Logs, err = readList[model.AuditEntry](ctx, c, colLogs); err != nil {
		return Snapshot{}, err
	}
	if snap.Queue, err = c.readQueue(ctx); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// ExportJSON renders a snapshot in the canonical on-disk form:
// indented JSON with struct-ordered keys. Exporting the same state
// twice yields identical bytes.
func (c *Core) ExportJSON(ctx context.Context) ([]byte, error) {
	snap, err := c.ExportState(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// ImportState validates a snapshot and atomically overwrites every
// collection with its content. A structurally incompatible snapshot is
// rejected before any write; unknown extra fields are ignored. The
// offline sync queue is reset - imported state is by definition the
// new source of truth.
func (c *Core) ImportState(ctx context.Context, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := validateSnapshot(data); err != nil {
		return err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return invalid("snapshot", "malformed JSON: %v", err)
	}

	collections := map[string]any{
		colMenu:      orEmpty(snap.Menu),
		colOrders:    orEmpty(snap.Orders),
		colTables:    orEmpty(snap.Tables),
		colStaff:     orEmpty(snap.Staff),
		colCustomers: orEmpty(snap.Customers),
		colReviews:   orEmpty(snap.Reviews),
		colLogs:      orEmpty(snap.Logs),
		colQueue:     snap.Queue,
		colSyncQueue: []model.SyncEntry{},
	}

	blobs := make(map[string][]byte, len(collections))
	for name, v := range collections {
		blob, err := encode(name, v)
		if err != nil {
			return err
		}
		blobs[name] = blob
	}

	if err := c.store.Replace(ctx, blobs); err != nil {
		return err
	}

	slog.Info("state imported",
		"orders", len(snap.Orders),
		"menu", len(snap.Menu),
		"exported_at", snap.Timestamp,
	)

	// Fan the imported state out so every view refreshes.
	c.bus.Publish(bus.StockChanged{Menu: snap.Menu})
	c.bus.Publish(bus.TableStateChanged{Tables: snap.Tables})
	c.bus.Publish(bus.StaffChanged{Staff: snap.Staff})
	c.bus.Publish(bus.QueueChanged{Queue: snap.Queue})
	return nil
}

// validateSnapshot checks the structural shape of a snapshot against
// the embedded CUE schema.
func validateSnapshot(data []byte) error {
	cctx := cuecontext.New()
	schema := cctx.CompileString(snapshotSchema, cue.Filename("snapshot.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile snapshot schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Snapshot"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("lookup snapshot schema: %w", err)
	}
	if err := cuejson.Validate(data, def); err != nil {
		return invalid("snapshot", "incompatible snapshot: %v", err)
	}
	return nil
}

// orEmpty keeps absent collections encoding as [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
