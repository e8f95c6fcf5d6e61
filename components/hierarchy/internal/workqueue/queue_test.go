package workqueue

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T) *Queue {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, "hierarchy_cleanup")
}

func TestAddThenLeaseThenComplete(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Add(ctx, Item{ID: "task-1", Data: []byte(`{"kind":"Customers"}`)}))

	n, err := q.QueueLen(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	item, ok, err := q.Lease(ctx, 0, 30*time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "task-1", item.ID)
	assert.Equal(t, []byte(`{"kind":"Customers"}`), item.Data)

	processing, err := q.ProcessingLen(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), processing)

	completed, err := q.Complete(ctx, item)
	require.NoError(t, err)
	assert.True(t, completed)

	processing, err = q.ProcessingLen(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), processing)
}

func TestLeaseOnEmptyQueueReturnsFalse(t *testing.T) {
	q := newTestQueue(t)

	_, ok, err := q.Lease(context.Background(), 0, 30*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompleteUnknownItemReturnsFalse(t *testing.T) {
	q := newTestQueue(t)

	ok, err := q.Complete(context.Background(), Item{ID: "never-leased"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecoverRequeuesUnleaseItemsWithSurvivingData(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Add(ctx, Item{ID: "task-1", Data: []byte("payload")}))

	item, ok, err := q.Lease(ctx, 0, 30*time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	// simulate a crash after the lease expired (or was never durably set)
	// but before Complete ran: drop the lease key, keep the item data.
	require.NoError(t, q.client.Del(ctx, q.leaseKey.of(item.ID)).Err())

	require.NoError(t, q.Recover(ctx))

	n, err := q.QueueLen(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRecoverSkipsStillLeasedItems(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Add(ctx, Item{ID: "task-1", Data: []byte("payload")}))

	_, ok, err := q.Lease(ctx, 0, 30*time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, q.Recover(ctx))

	n, err := q.QueueLen(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
