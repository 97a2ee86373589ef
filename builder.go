package elog

import (
	"runtime"
	"time"
)

// Config for constructing a Pipeline (Factory data structure).
type Config struct {
	Sink         Sink
	Chain        *Chain        // optional; a fresh empty chain when nil
	ShowProgress bool          // emit analytics and gate-state lines
	Workers      int           // dispatch goroutines; 0 dispatches on the caller's goroutine
	QueueSize    int           // pending dispatches; defaults to Workers
	Timeout      time.Duration // per-emit deadline when the caller's context has none; 0 disables
	DefaultTag   string        // fallback when no tag can be inferred; defaults to DefaultTag
}

// Builder separates construction from representation (Builder pattern).
type Builder struct {
	cfg Config
}

func NewBuilder() *Builder {
	return &Builder{cfg: Config{Workers: runtime.GOMAXPROCS(0), DefaultTag: DefaultTag}}
}

func (b *Builder) WithSink(s Sink) *Builder {
	b.cfg.Sink = s
	return b
}

// WithChain injects an existing chain, e.g. one shared with another pipeline.
func (b *Builder) WithChain(c *Chain) *Builder {
	b.cfg.Chain = c
	return b
}

// AddInterception appends to the builder's chain, creating it if needed.
func (b *Builder) AddInterception(is ...Interception) *Builder {
	if b.cfg.Chain == nil {
		b.cfg.Chain = NewChain()
	}
	b.cfg.Chain.Setup(is...)
	return b
}

func (b *Builder) WithShowProgress(on bool) *Builder {
	b.cfg.ShowProgress = on
	return b
}

func (b *Builder) WithWorkers(n int) *Builder {
	b.cfg.Workers = n
	return b
}

func (b *Builder) WithQueueSize(n int) *Builder {
	b.cfg.QueueSize = n
	return b
}

func (b *Builder) WithTimeout(d time.Duration) *Builder {
	b.cfg.Timeout = d
	return b
}

func (b *Builder) WithDefaultTag(tag string) *Builder {
	b.cfg.DefaultTag = tag
	return b
}

// Build constructs the Pipeline (Factory + Builder) and starts its workers.
func (b *Builder) Build() (*Pipeline, error) {
	if b.cfg.Sink == nil {
		return nil, ErrNoSink
	}
	return newPipeline(b.cfg), nil
}
