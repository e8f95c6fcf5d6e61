package cleanup

import (
	"context"

	"github.com/lattice-sh/control-plane/components/hierarchy/internal/services/command"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/workqueue"
)

// QueueEnqueuer adapts workqueue.Queue to command.Enqueuer, so the mutation
// pipeline's delete paths can enqueue a cascade without depending on the
// Processor that drains it.
type QueueEnqueuer struct {
	Queue *workqueue.Queue
}

// Enqueue encodes task as a workqueue item and pushes it onto the pending
// list.
func (e QueueEnqueuer) Enqueue(ctx context.Context, task command.CleanupTask) error {
	item, err := EncodeTask(task)
	if err != nil {
		return err
	}

	return e.Queue.Add(ctx, item)
}
