package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addisware/addispos/internal/bus"
	"github.com/addisware/addispos/internal/model"
)

// recordingTarget captures pushed batches; fail makes Push error.
type recordingTarget struct {
	batches [][]model.SyncEntry
	fail    bool
}

func (r *recordingTarget) Push(_ context.Context, entries []model.SyncEntry) error {
	if r.fail {
		return errors.New("upstream unreachable")
	}
	r.batches = append(r.batches, entries)
	return nil
}

func TestOfflineMutationsAreBuffered(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	require.NoError(t, c.SetConnectivity(ctx, false))

	_, err := c.CreateOrder(ctx, takeawayDraft())
	require.NoError(t, err)
	_, err = c.AdjustStock(ctx, "m1", 5, "s2")
	require.NoError(t, err)

	pending, err := c.PendingSync(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, ActionCreateOrder, pending[0].Action)
	assert.Equal(t, ActionUpdateMenu, pending[1].Action)
	assert.Less(t, pending[0].Seq, pending[1].Seq)
}

func TestOnlineMutationsAreNotBuffered(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	_, err := c.CreateOrder(ctx, takeawayDraft())
	require.NoError(t, err)

	pending, err := c.PendingSync(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestReconnectDrainsQueueInOrder(t *testing.T) {
	target := &recordingTarget{}
	c := newTestCore(t, WithSyncTarget(target))
	ctx := context.Background()

	require.NoError(t, c.SetConnectivity(ctx, false))
	_, err := c.CreateOrder(ctx, takeawayDraft())
	require.NoError(t, err)
	_, err = c.IssueTicket(ctx)
	require.NoError(t, err)

	require.NoError(t, c.SetConnectivity(ctx, true))

	require.Len(t, target.batches, 1)
	batch := target.batches[0]
	require.Len(t, batch, 2)
	assert.Equal(t, ActionCreateOrder, batch[0].Action)
	assert.Equal(t, ActionUpdateQueue, batch[1].Action)

	pending, err := c.PendingSync(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending, "drained queue is cleared")
}

func TestReconnectPushFailureRetainsQueue(t *testing.T) {
	target := &recordingTarget{fail: true}
	c := newTestCore(t, WithSyncTarget(target))
	ctx := context.Background()

	require.NoError(t, c.SetConnectivity(ctx, false))
	_, err := c.CreateOrder(ctx, takeawayDraft())
	require.NoError(t, err)

	err = c.SetConnectivity(ctx, true)
	require.Error(t, err)

	pending, err := c.PendingSync(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1, "failed replay keeps the whole batch")

	// The next offline→online edge retries everything.
	target.fail = false
	require.NoError(t, c.SetConnectivity(ctx, false))
	require.NoError(t, c.SetConnectivity(ctx, true))
	require.Len(t, target.batches, 1)
	assert.Len(t, target.batches[0], 1)
}

func TestSetConnectivityPublishesEveryFlip(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	var flips []bool
	c.Bus().Subscribe(bus.TopicConnectivityChanged, func(e bus.Event) {
		flips = append(flips, e.(bus.ConnectivityChanged).Online)
	})

	require.NoError(t, c.SetConnectivity(ctx, false))
	require.NoError(t, c.SetConnectivity(ctx, false))
	require.NoError(t, c.SetConnectivity(ctx, true))

	assert.Equal(t, []bool{false, false, true}, flips)
	assert.True(t, c.Online())
}

func TestOnlineToOnlineDoesNotDrain(t *testing.T) {
	target := &recordingTarget{}
	c := newTestCore(t, WithSyncTarget(target))
	ctx := context.Background()

	// Seed a stale entry directly, as if left over from a crash.
	writeFixture(t, c, colSyncQueue, []model.SyncEntry{{ID: "stale", Seq: 1, Action: ActionUpdateQueue}})

	require.NoError(t, c.SetConnectivity(ctx, true))
	assert.Empty(t, target.batches, "no offline→online edge, no drain")
}
