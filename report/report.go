package report

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Failure describes one request that could not be applied during a batch.
type Failure struct {
	ItemID     uuid.UUID
	ItemName   string
	EffectName string
	Err        error
	At         time.Time
}

// Message returns the error text, or "" when Err is nil.
func (f Failure) Message() string {
	if f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

// Reporter receives failures. Implementations may be called from several
// goroutines when a batch runs on more than one worker.
type Reporter interface {
	Report(ctx context.Context, f Failure)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(context.Context, Failure)

func (fn ReporterFunc) Report(ctx context.Context, f Failure) { fn(ctx, f) }

// Nop drops every failure.
var Nop Reporter = ReporterFunc(func(context.Context, Failure) {})

// Multi fans a failure out to every reporter in order.
func Multi(reporters ...Reporter) Reporter {
	return ReporterFunc(func(ctx context.Context, f Failure) {
		for _, r := range reporters {
			r.Report(ctx, f)
		}
	})
}

// Collector keeps failures in memory in arrival order.
type Collector struct {
	mu       sync.Mutex
	failures []Failure
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Report(_ context.Context, f Failure) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = append(c.failures, f)
}

// Failures returns a copy of everything collected so far.
func (c *Collector) Failures() []Failure {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Failure, len(c.failures))
	copy(out, c.failures)
	return out
}

func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.failures)
}

func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = nil
}
