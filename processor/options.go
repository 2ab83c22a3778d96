package processor

import (
	"github.com/on-the-ground/effectpipe/config"
	"github.com/on-the-ground/effectpipe/effects"
	"github.com/on-the-ground/effectpipe/internal/dispatch"
	"github.com/on-the-ground/effectpipe/report"
	"go.uber.org/zap"
)

// Option configures a Processor.
type Option func(*Processor)

// WithRegistry replaces the default registry.
func WithRegistry(reg *effects.Registry) Option {
	return func(p *Processor) {
		if reg != nil {
			p.registry = reg
		}
	}
}

// WithReporter sets where batch failures go.
func WithReporter(r report.Reporter) Option {
	return func(p *Processor) {
		if r != nil {
			p.reporter = r
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithWorkers runs batches on n workers; items are spread across them.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		p.scope = dispatch.Sizing{Workers: n, Buffer: p.scope.Buffer}.Normalize()
	}
}

func WithBufferSize(n int) Option {
	return func(p *Processor) {
		p.scope = dispatch.Sizing{Workers: p.scope.Workers, Buffer: n}.Normalize()
	}
}

// WithStableOrder reports failures after the batch, in item insertion order.
func WithStableOrder(stable bool) Option {
	return func(p *Processor) {
		p.stable = stable
	}
}

// WithConfig applies the processor section of a loaded config.
func WithConfig(cfg config.Processor) Option {
	return func(p *Processor) {
		p.scope = dispatch.Sizing{Workers: cfg.Workers, Buffer: cfg.BufferSize}.Normalize()
		p.stable = cfg.StableOrder
	}
}
