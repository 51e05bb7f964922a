package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addisware/addispos/internal/bus"
)

func TestAdjustStock(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()
	events := countEvents(c, bus.TopicStockChanged)

	item, err := c.AdjustStock(ctx, "m1", -3, "s2")
	require.NoError(t, err)
	assert.Equal(t, 7, item.Stock)

	item, err = c.AdjustStock(ctx, "m1", 10, "s2")
	require.NoError(t, err)
	assert.Equal(t, 17, item.Stock)
	assert.Equal(t, 2, *events)
}

func TestAdjustStockFloorsAtZero(t *testing.T) {
	c := newTestCore(t)
	item, err := c.AdjustStock(context.Background(), "m2", -100, "s2")
	require.NoError(t, err)
	assert.Zero(t, item.Stock)
}

func TestAdjustStockUnknownItem(t *testing.T) {
	c := newTestCore(t)
	_, err := c.AdjustStock(context.Background(), "m99", 1, "s2")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestAdjustStockAudited(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	_, err := c.AdjustStock(ctx, "m1", 5, "s2")
	require.NoError(t, err)

	logs, err := c.AuditLog(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, logs)
	assert.Equal(t, "Stock Adjust", logs[0].Action)
	assert.Contains(t, logs[0].Detail, "10 -> 15")
}
