package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/addisware/addispos/internal/bus"
	"github.com/addisware/addispos/internal/model"
	"github.com/addisware/addispos/internal/store"
)

// Collection names in the state store.
const (
	colMenu      = "menu"
	colOrders    = "orders"
	colTables    = "tables"
	colQueue     = "queue"
	colStaff     = "staff"
	colCustomers = "customers"
	colReviews   = "reviews"
	colLogs      = "logs"
	colSyncQueue = "sync_queue"
)

// DefaultAuditCap bounds the audit trail; the oldest entries are
// evicted once the log grows past it.
const DefaultAuditCap = 1000

// Core owns the state store, the event bus, and all sub-components of
// the synchronization engine. Construct one per process with New and
// inject it into every call site; there is no package-level state.
//
// All mutating operations are serialized by a single coarse lock, so
// each operation is atomic with respect to the store and events are
// published in mutation order.
type Core struct {
	store    *store.Store
	bus      *bus.Bus
	clock    *Clock
	ids      IDGenerator
	now      func() time.Time
	branches []model.Branch
	auditCap int
	target   SyncTarget

	mu     sync.Mutex
	online bool
}

// Option configures a Core.
type Option func(*Core)

// WithNow sets the wall-clock source. Tests use a fixed clock for
// deterministic timestamps.
func WithNow(now func() time.Time) Option {
	return func(c *Core) { c.now = now }
}

// WithIDGenerator sets the id generator. Tests use SequenceGenerator.
func WithIDGenerator(g IDGenerator) Option {
	return func(c *Core) { c.ids = g }
}

// WithAuditCap overrides the audit trail size bound.
func WithAuditCap(n int) Option {
	return func(c *Core) { c.auditCap = n }
}

// WithSyncTarget sets the destination offline mutations are replayed
// to on reconnection. The default target only logs.
func WithSyncTarget(t SyncTarget) Option {
	return func(c *Core) { c.target = t }
}

// WithBranches sets the branch table used for service charge lookup.
func WithBranches(branches []model.Branch) Option {
	return func(c *Core) { c.branches = branches }
}

// New creates a Core over the given store and bus. The process starts
// connected; SetConnectivity drives the offline sync queue.
func New(s *store.Store, b *bus.Bus, opts ...Option) *Core {
	c := &Core{
		store:    s,
		bus:      b,
		clock:    NewClock(),
		ids:      UUIDv7Generator{},
		now:      time.Now,
		branches: model.SeedBranches(),
		auditCap: DefaultAuditCap,
		target:   LogTarget{},
		online:   true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bus returns the event bus views subscribe on.
func (c *Core) Bus() *bus.Bus { return c.bus }

// Online reports the current connectivity flag.
func (c *Core) Online() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.online
}

// Seed populates an empty store with the initial menu, tables, staff
// roster, and a zeroed queue. Collections that already exist are left
// untouched, so calling Seed on a live store is safe.
func (c *Core) Seed(ctx context.Context, tables int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	staff, err := model.SeedStaff()
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	seeds := map[string]any{
		colMenu:      model.SeedMenu(),
		colTables:    model.SeedTables(tables),
		colStaff:     staff,
		colQueue:     model.QueueState{},
		colOrders:    []model.Order{},
		colCustomers: []model.Customer{},
		colReviews:   []model.Review{},
		colLogs:      []model.AuditEntry{},
		colSyncQueue: []model.SyncEntry{},
	}

	blobs := make(map[string][]byte, len(seeds))
	for name, v := range seeds {
		existing, err := c.store.Read(ctx, name)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		if existing != nil {
			continue
		}
		blob, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("seed: encode %s: %w", name, err)
		}
		blobs[name] = blob
	}

	if err := c.store.WriteMany(ctx, blobs); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	slog.Info("store seeded", "collections", len(blobs))
	return nil
}

// readList loads a list collection, degrading a malformed blob to an
// empty collection (corrupted persisted state must not take the whole
// process down).
func readList[T any](ctx context.Context, c *Core, collection string) ([]T, error) {
	blob, err := c.store.Read(ctx, collection)
	if err != nil {
		return nil, err
	}
	if blob == nil {
		return []T{}, nil
	}
	var records []T
	if err := json.Unmarshal(blob, &records); err != nil {
		slog.Warn("malformed collection blob, treating as empty",
			"collection", collection,
			"error", err,
		)
		return []T{}, nil
	}
	return records, nil
}

// readQueue loads the queue singleton, degrading malformed state to
// zeroed counters.
func (c *Core) readQueue(ctx context.Context) (model.QueueState, error) {
	blob, err := c.store.Read(ctx, colQueue)
	if err != nil {
		return model.QueueState{}, err
	}
	if blob == nil {
		return model.QueueState{}, nil
	}
	var q model.QueueState
	if err := json.Unmarshal(blob, &q); err != nil {
		slog.Warn("malformed queue blob, resetting counters", "error", err)
		return model.QueueState{}, nil
	}
	return q, nil
}

// encode marshals a collection for storage.
func encode(collection string, v any) ([]byte, error) {
	blob, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", collection, err)
	}
	return blob, nil
}
