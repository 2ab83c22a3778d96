package processor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/on-the-ground/effectpipe/effects"
	"github.com/on-the-ground/effectpipe/internal/dispatch"
	"github.com/on-the-ground/effectpipe/item"
	"github.com/on-the-ground/effectpipe/report"
	"go.uber.org/zap"
)

// ErrItemNotTracked is returned by QueueEffect for items never added, and for nil.
var ErrItemNotTracked = errors.New("item not tracked")

// ErrEffectPanicked wraps a panic recovered from an effect's Apply.
// The item is not rolled back: anything Apply appended before panicking
// stays in its history.
var ErrEffectPanicked = errors.New("effect panicked")

type entry struct {
	seq      uint64
	item     *item.Item
	requests []Request
}

// Processor tracks items, their pending requests, and runs them in batches.
// All methods are safe for concurrent use.
type Processor struct {
	registry *effects.Registry
	reporter report.Reporter
	logger   *zap.Logger
	scope    dispatch.Sizing
	stable   bool

	mu      sync.Mutex
	nextSeq uint64
	entries map[uuid.UUID]*entry
}

// New returns a processor with the built-in effects registered, one worker,
// and failures dropped unless a reporter is given.
func New(opts ...Option) *Processor {
	p := &Processor{
		registry: effects.NewRegistry(),
		reporter: report.Nop,
		logger:   zap.NewNop(),
		scope:    dispatch.Sizing{}.Normalize(),
		entries:  make(map[uuid.UUID]*entry),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Registry exposes the owned registry so callers can add effects.
func (p *Processor) Registry() *effects.Registry {
	return p.registry
}

// AddItem starts tracking it with an empty queue. It reports false if it was
// already tracked or is nil.
func (p *Processor) AddItem(it *item.Item) bool {
	if it == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.entries[it.ID()]; ok {
		return false
	}
	p.nextSeq++
	p.entries[it.ID()] = &entry{seq: p.nextSeq, item: it}
	return true
}

// RemoveItem stops tracking it and drops its queue.
func (p *Processor) RemoveItem(it *item.Item) bool {
	if it == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.entries[it.ID()]; !ok {
		return false
	}
	delete(p.entries, it.ID())
	return true
}

// QueueEffect appends req to the queue of it.
func (p *Processor) QueueEffect(it *item.Item, req Request) error {
	if it == nil {
		return fmt.Errorf("%w: nil item", ErrItemNotTracked)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[it.ID()]
	if !ok {
		return fmt.Errorf("%w: %q (%s)", ErrItemNotTracked, it.Name(), it.ID())
	}
	e.requests = append(e.requests, req)
	return nil
}

// DequeueEffect removes every queued request for it named effectName and
// returns how many were removed.
func (p *Processor) DequeueEffect(it *item.Item, effectName string) int {
	if it == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[it.ID()]
	if !ok {
		return 0
	}
	kept := e.requests[:0]
	for _, req := range e.requests {
		if req.EffectName != effectName {
			kept = append(kept, req)
		}
	}
	removed := len(e.requests) - len(kept)
	clear(e.requests[len(kept):])
	e.requests = kept
	return removed
}

// Pending returns a copy of the queue of it, or nil when it is not tracked.
func (p *Processor) Pending(it *item.Item) []Request {
	if it == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[it.ID()]
	if !ok {
		return nil
	}
	out := make([]Request, len(e.requests))
	copy(out, e.requests)
	return out
}

// Items returns tracked items in the order they were added.
func (p *Processor) Items() []*item.Item {
	batch := p.snapshot()
	items := make([]*item.Item, len(batch))
	for i, j := range batch {
		items[i] = j.item
	}
	return items
}

func (p *Processor) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// job is one item's whole queue; it is never split across workers.
type job struct {
	index    int
	item     *item.Item
	requests []Request
}

func (j job) PartitionKey() string {
	return j.item.ID().String()
}

type outcome struct {
	applied  int
	skipped  int
	failures []report.Failure
}

// snapshot copies the queues in item insertion order.
func (p *Processor) snapshot() []job {
	p.mu.Lock()
	entries := make([]*entry, 0, len(p.entries))
	for _, e := range p.entries {
		entries = append(entries, e)
	}
	batch := make([]job, len(entries))
	sort.Slice(entries, func(a, b int) bool { return entries[a].seq < entries[b].seq })
	for i, e := range entries {
		reqs := make([]Request, len(e.requests))
		copy(reqs, e.requests)
		batch[i] = job{index: i, item: e.item, requests: reqs}
	}
	p.mu.Unlock()
	return batch
}

// ProcessAll applies every queued request of every tracked item.
//
// Requests of one item run in queue order; a failing request is reported
// and the next one runs anyway. Queues are left in place, so calling
// ProcessAll again applies them again. Changes made to queues while a batch
// runs take effect in the next batch.
//
// The returned error is ctx.Err() when ctx ended before the batch finished;
// requests not reached are counted as skipped and not reported.
func (p *Processor) ProcessAll(ctx context.Context) (Summary, error) {
	start := time.Now()
	batch := p.snapshot()
	outcomes := make([]outcome, len(batch))

	p.logger.Sugar().Debugf("starting batch: items: %d, workers: %d, stable: %v",
		len(batch), p.scope.Workers, p.stable)

	run := func(ctx context.Context, j job) {
		outcomes[j.index] = p.processItem(ctx, j)
	}

	if p.scope.Workers <= 1 {
		for _, j := range batch {
			run(ctx, j)
		}
	} else {
		d := dispatch.NewPartitioned(ctx, p.scope, run)
		for i, j := range batch {
			if err := d.Dispatch(ctx, j); err != nil {
				for _, rest := range batch[i:] {
					outcomes[rest.index] = outcome{skipped: len(rest.requests)}
				}
				break
			}
		}
		d.Close()
	}

	summary := Summary{Items: len(batch)}
	for _, o := range outcomes {
		summary.Applied += o.applied
		summary.Failed += len(o.failures)
		summary.Skipped += o.skipped
		if p.stable {
			for _, f := range o.failures {
				p.reporter.Report(ctx, f)
			}
		}
	}
	summary.Span = spanSince(start)

	p.logger.Sugar().Debugf("finished batch: %s", summary)
	return summary, ctx.Err()
}

func (p *Processor) processItem(ctx context.Context, j job) outcome {
	var o outcome
	for i, req := range j.requests {
		if ctx.Err() != nil {
			o.skipped = len(j.requests) - i
			break
		}
		if err := p.apply(j.item, req); err != nil {
			f := report.Failure{
				ItemID:     j.item.ID(),
				ItemName:   j.item.Name(),
				EffectName: req.EffectName,
				Err:        err,
				At:         time.Now(),
			}
			p.logger.Debug("effect failed",
				zap.String("item_name", f.ItemName),
				zap.String("effect_name", f.EffectName),
				zap.Error(err),
			)
			o.failures = append(o.failures, f)
			if !p.stable {
				p.reporter.Report(ctx, f)
			}
			continue
		}
		o.applied++
	}
	return o
}

// apply resolves and runs one request, turning a panic into an error.
func (p *Processor) apply(it *item.Item, req Request) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrEffectPanicked, req.EffectName, r)
		}
	}()
	eff, err := p.registry.Create(req.EffectName)
	if err != nil {
		return err
	}
	if eff == nil {
		return fmt.Errorf("%w: %q constructor returned nil", effects.ErrUnknownEffect, req.EffectName)
	}
	return eff.Apply(it, req.Param)
}
