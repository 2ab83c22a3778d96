package dispatch

import (
	"context"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Sizing fixes the worker count and the capacity of each worker's channel.
type Sizing struct {
	Workers int
	Buffer  int
}

// Normalize raises non-positive fields to one.
func (s Sizing) Normalize() Sizing {
	return Sizing{Workers: max(s.Workers, 1), Buffer: max(s.Buffer, 1)}
}

// Keyed messages with equal keys always land on the same worker.
type Keyed interface {
	PartitionKey() string
}

// Dispatcher fans messages out to a fixed set of workers, one channel each.
// Messages sharing a partition key are handled by one goroutine in send order.
//
// Dispatch must not be called after Close.
type Dispatcher[T Keyed] struct {
	effectChs []chan T
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewPartitioned starts sizing.Workers workers running handleFn.
// Workers keep running until Close, even when ctx ends; handleFn is expected
// to check ctx itself so buffered messages still drain.
func NewPartitioned[T Keyed](
	ctx context.Context,
	sizing Sizing,
	handleFn func(context.Context, T),
) *Dispatcher[T] {
	sizing = sizing.Normalize()
	d := &Dispatcher[T]{effectChs: make([]chan T, sizing.Workers)}
	ready := sync.WaitGroup{}
	for i := 0; i < sizing.Workers; i++ {
		ready.Add(1)
		d.wg.Add(1)
		ch := make(chan T, sizing.Buffer)
		go func(ch chan T) {
			defer d.wg.Done()
			ready.Done()
			for msg := range ch {
				handleFn(ctx, msg)
			}
		}(ch)
		d.effectChs[i] = ch
	}
	ready.Wait()
	return d
}

// Dispatch queues msg on its partition's worker, blocking while that
// worker's buffer is full. It gives up with ctx.Err() when ctx ends first.
func (d *Dispatcher[T]) Dispatch(ctx context.Context, msg T) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case d.channelOf(msg) <- msg:
		return nil
	}
}

// Close stops accepting messages and waits until every queued one is handled.
func (d *Dispatcher[T]) Close() {
	d.closeOnce.Do(func() {
		for _, ch := range d.effectChs {
			close(ch)
		}
	})
	d.wg.Wait()
}

func (d *Dispatcher[T]) NumWorkers() int {
	return len(d.effectChs)
}

func (d *Dispatcher[T]) channelOf(msg T) chan T {
	return d.effectChs[IndexOf(msg.PartitionKey(), len(d.effectChs))]
}

// IndexOf maps key onto [0, numChs).
func IndexOf(key string, numChs int) int {
	switch numChs {
	case 0:
		panic("number of channels cannot be 0")
	case 1:
		return 0
	default:
		return int(xxhash.Sum64String(key) % uint64(numChs))
	}
}
