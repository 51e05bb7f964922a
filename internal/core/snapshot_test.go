package core

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addisware/addispos/internal/model"
)

func TestExportJSONGolden(t *testing.T) {
	c := newTestCore(t)

	data, err := c.ExportJSON(context.Background())
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "snapshot", data)
}

func TestExportJSONDeterministic(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	_, err := c.CreateOrder(ctx, takeawayDraft())
	require.NoError(t, err)

	a, err := c.ExportJSON(ctx)
	require.NoError(t, err)
	b, err := c.ExportJSON(ctx)
	require.NoError(t, err)
	assert.Equal(t, a, b, "same state exports identical bytes")
}

func TestExportImportRoundTrip(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	order, err := c.CreateOrder(ctx, dineInDraft())
	require.NoError(t, err)
	_, err = c.IssueTicket(ctx)
	require.NoError(t, err)

	snapshot, err := c.ExportJSON(ctx)
	require.NoError(t, err)

	// Diverge, then restore.
	_, err = c.AdjustStock(ctx, "m1", 100, "s2")
	require.NoError(t, err)
	_, err = c.UpdateTableStatus(ctx, "t2", model.TableReserved, "", "s2")
	require.NoError(t, err)

	require.NoError(t, c.ImportState(ctx, snapshot))

	menu, err := c.Menu(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, menu[0].Stock)

	tables, err := c.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.TableOccupied, tables[0].Status)
	assert.Equal(t, order.ID, tables[0].CurrentOrderID)
	assert.Equal(t, model.TableAvailable, tables[1].Status)

	q, err := c.Queue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, q.LastIssued)
}

func TestImportRejectsIncompatibleSnapshot(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	cases := map[string]string{
		"not an object":      `[]`,
		"malformed json":     `{"menu": [`,
		"menu not a list":    `{"menu": {}, "orders": [], "tables": [], "staff": [], "customers": [], "reviews": [], "logs": [], "queue": {"currentServing": 0, "lastIssued": 0}, "timestamp": "2025-01-01T00:00:00Z"}`,
		"entry missing id":   `{"menu": [{"name": "x"}], "orders": [], "tables": [], "staff": [], "customers": [], "reviews": [], "logs": [], "queue": {"currentServing": 0, "lastIssued": 0}, "timestamp": "2025-01-01T00:00:00Z"}`,
		"serving > issued":   `{"menu": [], "orders": [], "tables": [], "staff": [], "customers": [], "reviews": [], "logs": [], "queue": {"currentServing": 3, "lastIssued": 1}, "timestamp": "2025-01-01T00:00:00Z"}`,
		"negative counters":  `{"menu": [], "orders": [], "tables": [], "staff": [], "customers": [], "reviews": [], "logs": [], "queue": {"currentServing": -1, "lastIssued": 0}, "timestamp": "2025-01-01T00:00:00Z"}`,
		"missing collection": `{"menu": [], "timestamp": "2025-01-01T00:00:00Z"}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			err := c.ImportState(ctx, []byte(payload))
			require.Error(t, err)
			assert.True(t, IsInvalid(err), "want invalid, got %v", err)
		})
	}

	// Every rejection happened before any write.
	menu, err := c.Menu(ctx)
	require.NoError(t, err)
	assert.Len(t, menu, 3)
}

func TestImportIgnoresUnknownFields(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	snapshot, err := c.ExportJSON(ctx)
	require.NoError(t, err)

	// A snapshot from a newer build may carry extra fields.
	extended := append([]byte(`{"futureField": {"x": 1},`), snapshot[1:]...)
	require.NoError(t, c.ImportState(ctx, extended))
}

func TestImportResetsSyncQueue(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	snapshot, err := c.ExportJSON(ctx)
	require.NoError(t, err)

	require.NoError(t, c.SetConnectivity(ctx, false))
	_, err = c.CreateOrder(ctx, takeawayDraft())
	require.NoError(t, err)
	pending, err := c.PendingSync(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, pending)

	require.NoError(t, c.ImportState(ctx, snapshot))

	pending, err = c.PendingSync(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending, "imported state is the new source of truth")
}
