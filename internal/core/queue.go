package core

import (
	"context"
	"time"

	"github.com/addisware/addispos/internal/bus"
	"github.com/addisware/addispos/internal/model"
)

// IssueTicket hands the next walk-in ticket number out and returns it.
func (c *Core) IssueTicket(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	queue, err := c.readQueue(ctx)
	if err != nil {
		return 0, err
	}
	queue.LastIssued++

	if err := c.writeQueue(ctx, queue); err != nil {
		return 0, err
	}
	c.bus.Publish(bus.QueueChanged{Queue: queue})
	return queue.LastIssued, nil
}

// CallNextTicket advances the serving pointer. Calling next on an
// empty queue is silently ignored: the counters are left unchanged and
// no event fires. The invariant currentServing ≤ lastIssued can never
// break here.
func (c *Core) CallNextTicket(ctx context.Context) (model.QueueState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	queue, err := c.readQueue(ctx)
	if err != nil {
		return model.QueueState{}, err
	}
	if queue.CurrentServing >= queue.LastIssued {
		return queue, nil
	}
	queue.CurrentServing++

	if err := c.writeQueue(ctx, queue); err != nil {
		return model.QueueState{}, err
	}
	c.bus.Publish(bus.QueueChanged{Queue: queue})
	return queue, nil
}

// Queue returns the current counters.
func (c *Core) Queue(ctx context.Context) (model.QueueState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readQueue(ctx)
}

func (c *Core) writeQueue(ctx context.Context, queue model.QueueState) error {
	blobs := make(map[string][]byte)
	var err error
	if blobs[colQueue], err = encode(colQueue, queue); err != nil {
		return err
	}
	if sq, err := c.syncBlob(ctx, ActionUpdateQueue, queue); err != nil {
		return err
	} else if sq != nil {
		blobs[colSyncQueue] = sq
	}
	return c.store.WriteMany(ctx, blobs)
}

// EstimatedWait derives the wait a newly issued ticket faces. Purely a
// function of the counters; never persisted.
func EstimatedWait(q model.QueueState, perTicket time.Duration) time.Duration {
	return time.Duration(q.Waiting()) * perTicket
}

// NowPreparing derives the inclusive ticket range still waiting behind
// the serving pointer. Purely a function of the counters; returns
// (0, 0) when nothing is waiting.
func NowPreparing(q model.QueueState) (from, to int) {
	if q.CurrentServing >= q.LastIssued {
		return 0, 0
	}
	return q.CurrentServing + 1, q.LastIssued
}
