package core

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/addisware/addispos/internal/bus"
	"github.com/addisware/addispos/internal/model"
	"github.com/addisware/addispos/internal/store"
)

// fixedNow keeps every timestamp in tests deterministic.
var fixedNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

var testBranches = []model.Branch{
	{ID: "b1", Name: "Main Branch (Bole)", Location: "Bole", ServiceChargeRate: 0.10},
	{ID: "b2", Name: "Piassa Branch", Location: "Piassa", ServiceChargeRate: 0.05},
}

// newTestCore builds a Core over an in-memory store with deterministic
// ids and clock, seeded with a small fixture set.
func newTestCore(t *testing.T, opts ...Option) *Core {
	t.Helper()

	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	base := []Option{
		WithNow(func() time.Time { return fixedNow }),
		WithIDGenerator(NewSequenceGenerator("id")),
		WithBranches(testBranches),
	}
	c := New(s, bus.New(), append(base, opts...)...)

	seedFixtures(t, c)
	return c
}

func seedFixtures(t *testing.T, c *Core) {
	t.Helper()

	menu := []model.MenuItem{
		{ID: "m1", Name: "Doro Wat", Price: 20000, Category: "Main", Stock: 10},
		{ID: "m2", Name: "Shiro Tegamino", Price: 5000, Category: "Vegan", Stock: 5},
		{ID: "m3", Name: "Coffee", Price: 3000, Category: "Drink", Stock: 100,
			Available: model.Hours{Start: 6, End: 18}},
	}
	tables := []model.Table{
		{ID: "t1", Name: "T1", Status: model.TableAvailable},
		{ID: "t2", Name: "T2", Status: model.TableAvailable},
	}
	staff := []model.Staff{
		{ID: "s1", Name: "Dawit Haile", Role: model.RoleWaiter, Active: true,
			Attendance: []model.AttendanceRecord{}, Reviews: []model.ManagerReview{}},
		{ID: "s2", Name: "Tigist Alemu", Role: model.RoleManager, Active: true,
			Attendance: []model.AttendanceRecord{}, Reviews: []model.ManagerReview{}},
	}
	customers := []model.Customer{
		{ID: "c1", Name: "Meles Worku", Phone: "+251911234567"},
	}

	writeFixture(t, c, colMenu, menu)
	writeFixture(t, c, colTables, tables)
	writeFixture(t, c, colStaff, staff)
	writeFixture(t, c, colCustomers, customers)
	writeFixture(t, c, colReviews, []model.Review{})
	writeFixture(t, c, colQueue, model.QueueState{})
	writeFixture(t, c, colOrders, []model.Order{})
	writeFixture(t, c, colLogs, []model.AuditEntry{})
	writeFixture(t, c, colSyncQueue, []model.SyncEntry{})
}

func writeFixture(t *testing.T, c *Core, collection string, v any) {
	t.Helper()
	blob, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, c.store.Write(context.Background(), collection, blob))
}

// dineInDraft is the §8 reference order: two line items totaling
// 500 birr on table t1 at the 10% service charge branch.
func dineInDraft() OrderDraft {
	return OrderDraft{
		BranchID: "b1",
		TableID:  "t1",
		StaffID:  "s1",
		Payment:  model.PayCash,
		Lines: []model.Line{
			{ItemID: "m1", Name: "Doro Wat", UnitPrice: 20000, Quantity: 2},
			{ItemID: "m2", Name: "Shiro Tegamino", UnitPrice: 5000, Quantity: 2},
		},
	}
}

func takeawayDraft() OrderDraft {
	d := dineInDraft()
	d.TableID = model.Takeaway
	return d
}

// countEvents subscribes a counter to a topic.
func countEvents(c *Core, topic bus.Topic) *int {
	n := new(int)
	c.Bus().Subscribe(topic, func(bus.Event) { *n++ })
	return n
}
