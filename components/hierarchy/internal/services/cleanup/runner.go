package cleanup

import (
	"context"
	"sync"
	"time"

	"github.com/lattice-sh/control-plane/common"
	"github.com/lattice-sh/control-plane/common/mlog"
)

// leaseTimeout bounds how long a single Lease blocks for the next pending
// item before checking ctx for cancellation again.
const leaseTimeout = 5 * time.Second

// RecoveryLocker guards the startup recovery sweep so only one process at a
// time re-enqueues abandoned items (spec.md §4.9's "global recovery lock").
type RecoveryLocker interface {
	WithRecoveryLock(ctx context.Context, fn func() error) error
}

// Run starts numWorkers goroutines draining the workqueue, after a single
// recovery sweep guarded by recoveryLock. It blocks until ctx is canceled,
// then waits for in-flight items to finish (spec.md §5's drain-on-
// cancellation discipline for worker tasks).
func Run(ctx context.Context, p *Processor, numWorkers int, leaseDuration time.Duration, recoveryLock RecoveryLocker) error {
	logger := common.NewLoggerFromContext(ctx)

	sweep := func() error { return p.Queue.Recover(ctx) }

	if recoveryLock != nil {
		if err := recoveryLock.WithRecoveryLock(ctx, sweep); err != nil {
			return err
		}
	} else if err := sweep(); err != nil {
		return err
	}

	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			worker(ctx, p, leaseDuration, logger)
		}()
	}

	wg.Wait()

	return nil
}

func worker(ctx context.Context, p *Processor, leaseDuration time.Duration, logger mlog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		item, ok, err := p.Queue.Lease(ctx, leaseTimeout, leaseDuration)
		if err != nil {
			logger.Errorf("workqueue lease failed: %v", err)
			continue
		}

		if !ok {
			continue
		}

		task, err := DecodeTask(item)
		if err != nil {
			logger.Errorf("workqueue item %s had an undecodable payload: %v", item.ID, err)
			continue
		}

		if err := p.Process(ctx, task); err != nil {
			logger.Errorf("cleanup cascade failed for task %s (%s): %v", task.UUID, task.Kind, err)
			continue
		}

		completed, err := p.Queue.Complete(ctx, item)
		if err != nil {
			logger.Errorf("failed to complete workqueue item %s: %v", item.ID, err)
			continue
		}

		if !completed {
			logger.Errorf("workqueue item %s was already completed by another worker", item.ID)
		}
	}
}
