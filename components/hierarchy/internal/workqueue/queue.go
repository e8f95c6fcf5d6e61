// Package workqueue implements the Cleanup Workqueue (C9): a Redis-list-
// backed FIFO with a processing lane, per-item leases, and a recovery sweep,
// grounded on original_source/crates/redis/src/work_queue.rs's WorkQueue
// (pending/processing lists, LMOVE-based lease, lease-key TTL, LRANGE +
// pipelined EXISTS recovery), re-expressed over redis/go-redis/v9 the way
// common/mredis wires a client into an adapter constructor.
package workqueue

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// keyPrefix builds the keys of one namespaced family (lease keys, item-data
// keys) by appending a name to its base string, mirroring work_queue.rs's
// KeyPrefix::of/and.
type keyPrefix struct {
	prefix string
}

func (k keyPrefix) of(name string) string { return k.prefix + name }

// Item is a single opaque payload carried through the queue.
type Item struct {
	ID   string
	Data []byte
}

// Queue is a named FIFO over a shared Redis client.
type Queue struct {
	client        *redis.Client
	session       string
	mainQueueKey  string
	processingKey string
	leaseKey      keyPrefix
	itemDataKey   keyPrefix
}

// New builds a Queue namespaced under prefix (spec.md's cleanup_task_prefix
// config option), identifying this process instance with a fresh session id
// so leases can be attributed and recovered across restarts.
func New(client *redis.Client, prefix string) *Queue {
	return &Queue{
		client:        client,
		session:       uuid.NewString(),
		mainQueueKey:  prefix + ":queue",
		processingKey: prefix + ":processing",
		leaseKey:      keyPrefix{prefix: prefix + ":leased_by_session:"},
		itemDataKey:   keyPrefix{prefix: prefix + ":item:"},
	}
}

// Add pushes a new item onto the pending queue, storing its payload
// alongside it in a single pipeline.
func (q *Queue) Add(ctx context.Context, item Item) error {
	_, err := q.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, q.itemDataKey.of(item.ID), item.Data, 0)
		pipe.LPush(ctx, q.mainQueueKey, item.ID)
		return nil
	})

	return err
}

// QueueLen reports the number of pending (not yet leased) items.
func (q *Queue) QueueLen(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.mainQueueKey).Result()
}

// ProcessingLen reports the number of items currently leased out.
func (q *Queue) ProcessingLen(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.processingKey).Result()
}

// Lease atomically moves one item from pending to processing and sets a
// session-scoped lease key with the given TTL. timeout of zero polls once
// and returns (Item{}, false, nil) when nothing is pending; a positive
// timeout blocks up to that long for an item to arrive.
func (q *Queue) Lease(ctx context.Context, timeout, leaseDuration time.Duration) (Item, bool, error) {
	var (
		itemID string
		err    error
	)

	if timeout <= 0 {
		itemID, err = q.client.LMove(ctx, q.mainQueueKey, q.processingKey, "right", "left").Result()
	} else {
		itemID, err = q.client.BLMove(ctx, q.mainQueueKey, q.processingKey, "right", "left", timeout).Result()
	}

	if err == redis.Nil {
		return Item{}, false, nil
	}

	if err != nil {
		return Item{}, false, err
	}

	data, err := q.client.Get(ctx, q.itemDataKey.of(itemID)).Bytes()
	if err != nil && err != redis.Nil {
		return Item{}, false, err
	}

	if err := q.client.Set(ctx, q.leaseKey.of(itemID), q.session, leaseDuration).Err(); err != nil {
		return Item{}, false, err
	}

	return Item{ID: itemID, Data: data}, true, nil
}

// Complete removes item from the processing list along with its data and
// lease keys. It reports false if the item was not found in the processing
// list (already completed or recovered away by another worker).
func (q *Queue) Complete(ctx context.Context, item Item) (bool, error) {
	removed, err := q.client.LRem(ctx, q.processingKey, 0, item.ID).Result()
	if err != nil {
		return false, err
	}

	if removed == 0 {
		return false, nil
	}

	_, err = q.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, q.itemDataKey.of(item.ID))
		pipe.Del(ctx, q.leaseKey.of(item.ID))
		return nil
	})

	return true, err
}

// Recover scans the processing list for items whose lease has expired (or
// was never set, e.g. after a crash between LMOVE and SET) but whose data
// still exists, and re-enqueues them onto the pending list. Callers should
// hold a global recovery lock (internal/adapters/lock) while calling this,
// since concurrent recovery sweeps would double-enqueue the same item.
func (q *Queue) Recover(ctx context.Context) error {
	ids, err := q.client.LRange(ctx, q.processingKey, 0, -1).Result()
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		return nil
	}

	leaseChecks := make([]*redis.IntCmd, len(ids))
	dataChecks := make([]*redis.IntCmd, len(ids))

	_, err = q.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			leaseChecks[i] = pipe.Exists(ctx, q.leaseKey.of(id))
			dataChecks[i] = pipe.Exists(ctx, q.itemDataKey.of(id))
		}

		return nil
	})
	if err != nil {
		return err
	}

	_, err = q.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			if leaseChecks[i].Val() == 0 && dataChecks[i].Val() > 0 {
				pipe.LPush(ctx, q.mainQueueKey, id)
			}
		}

		return nil
	})

	return err
}
