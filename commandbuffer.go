package ecs

import (
	"context"
	"sync"
	"unsafe"

	"golang.org/x/sync/semaphore"
)

type cmdKind int

const (
	cmdSpawn cmdKind = iota
	cmdSpawnWith
	cmdDestroy
	cmdSet
	cmdUnset
)

type command struct {
	kind  cmdKind
	id    EntityId
	comp  ComponentInfo
	value unsafe.Pointer
}

// commandBuffer queues structural mutations issued while the world is in
// deferred mode (§4.8). The semaphore bounds how many producer goroutines may
// be recording commands at once, per WorldConfig.MaxDeferredProducers — it's
// backpressure, not a lock. The mutex is what actually serializes the shared
// queue slice; append order under it is submission order.
type commandBuffer struct {
	sem   *semaphore.Weighted
	mu    sync.Mutex
	queue []command
}

func newCommandBuffer(maxProducers int) *commandBuffer {
	if maxProducers <= 0 {
		maxProducers = 1
	}
	return &commandBuffer{sem: semaphore.NewWeighted(int64(maxProducers))}
}

func (cb *commandBuffer) append(cmd command) {
	ctx := context.Background()
	_ = cb.sem.Acquire(ctx, 1)
	defer cb.sem.Release(1)
	cb.mu.Lock()
	cb.queue = append(cb.queue, cmd)
	cb.mu.Unlock()
}

// drain returns the queued commands in submission order and clears the queue.
func (cb *commandBuffer) drain() []command {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cmds := cb.queue
	cb.queue = nil
	return cmds
}

// merge replays cmds against w using the direct (non-deferred) mutator path,
// in submission order. A command that can no longer apply (e.g. its target was
// destroyed earlier in the same batch) is reported to the diagnostic sink and
// skipped; the merge as a whole always completes (§7's skip-and-continue
// policy). A deferred Spawn's id was minted up front (World.Spawn already
// called entityIndex.allocate before queuing); merge only needs to place it
// into the root archetype, so the caller's handle never needs remapping.
func (w *World) merge(cmds []command) {
	for _, cmd := range cmds {
		switch cmd.kind {
		case cmdSpawn:
			w.placeInRoot(cmd.id)
		case cmdSpawnWith:
			target := cmd.id
			if w.entities.isAlive(target) {
				w.reportMergeFailure("spawn_with", ErrDeadEntity)
				continue
			}
			w.spawnWith(target)
		case cmdDestroy:
			target := cmd.id
			if !w.entities.isAlive(target) {
				w.reportMergeFailure("destroy", ErrDeadEntity)
				continue
			}
			w.destroy(target)
		case cmdSet:
			target := cmd.id
			if !w.entities.isAlive(target) {
				w.reportMergeFailure("set", ErrDeadEntity)
				continue
			}
			w.setComponent(target, cmd.comp, cmd.value)
		case cmdUnset:
			target := cmd.id
			if !w.entities.isAlive(target) {
				w.reportMergeFailure("unset", ErrDeadEntity)
				continue
			}
			w.unsetComponent(target, cmd.comp.ID)
		}
	}
}

// reportMergeFailure delivers a failed deferred op two ways: the single
// mergeSink callback if one is registered (falling back to a log line), and
// always a Publish on the world's EventBus — the sink is for a host's one
// designated handler, the bus is for any number of independent subscribers
// that want to observe merge failures without taking over the sink slot.
func (w *World) reportMergeFailure(op string, err error) {
	failure := DeferredMergeFailure{Op: op, Err: err}
	if w.mergeSink != nil {
		w.mergeSink(failure)
	} else if w.logger != nil {
		w.logger.Warn(failure.Error())
	}
	Publish(w.events, failure)
}
