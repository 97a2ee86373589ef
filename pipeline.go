package elog

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// workerFunc is the runtime name of the worker loop; onWorker looks for it.
var workerFunc = pkgPrefix + "(*Pipeline).worker"

// Pipeline resolves a tag for each event, runs the interceptor chain and
// prints through two gates. Emit blocks until the event's output, including
// its completion marker, has been written. Failures never reach the caller;
// they are converted into log lines.
//
// An Emit made from inside a worker, for example by an interceptor that logs,
// is dispatched on that worker's goroutine. A sink that panics outside a gate
// is counted as a print failure and the completion marker is written once
// more; if that write panics too the event ends without a marker.
type Pipeline struct {
	sink       Sink
	chain      *Chain
	timeout    time.Duration
	defaultTag string

	show atomic.Bool
	st   stats
	d    *dispatcher

	// worker pool; jobs is nil when dispatching inline
	jobs    chan job
	wg      sync.WaitGroup
	closeMu sync.RWMutex
	closed  bool
}

type job struct {
	ctx   context.Context
	ev    Event
	tag   string
	chain []Interception
	done  chan struct{}

	// claimed is set by whichever of the worker and the waiting caller
	// takes the job first; the other side leaves it alone.
	claimed *atomic.Bool
}

// Factory: internal constructor.
func newPipeline(cfg Config) *Pipeline {
	p := &Pipeline{
		sink:       cfg.Sink,
		chain:      cfg.Chain,
		timeout:    cfg.Timeout,
		defaultTag: cfg.DefaultTag,
	}
	if p.chain == nil {
		p.chain = NewChain()
	}
	if p.defaultTag == "" {
		p.defaultTag = DefaultTag
	}
	p.show.Store(cfg.ShowProgress)
	p.d = newDispatcher(p.sink, &p.show, &p.st)

	if cfg.Workers > 0 {
		q := cfg.QueueSize
		if q <= 0 {
			q = cfg.Workers
		}
		p.jobs = make(chan job, q)
		p.wg.Add(cfg.Workers)
		for i := 0; i < cfg.Workers; i++ {
			go p.worker()
		}
	}
	return p
}

// Setup appends interceptions to the pipeline's chain. It is expected once at
// start-up but is safe to call concurrently with Emit.
func (p *Pipeline) Setup(is ...Interception) { p.chain.Setup(is...) }

// Chain returns the chain the pipeline dispatches through.
func (p *Pipeline) Chain() *Chain { return p.chain }

// Emit dispatches ev with the pipeline's default deadline.
func (p *Pipeline) Emit(ev Event) { p.EmitContext(context.Background(), ev) }

// EmitContext dispatches ev and waits for it to finish. The context bounds
// waiting at suspension points (before each interceptor and before each
// gate); when it ends, the event is aborted and reported at ERROR level.
func (p *Pipeline) EmitContext(ctx context.Context, ev Event) {
	if ctx == nil {
		ctx = context.Background()
	}
	if p.timeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, p.timeout)
			defer cancel()
		}
	}

	// Resolve on the caller's goroutine: call-site capture needs its stack.
	tag := resolveTag(ev.Tag, ev.Err, p.defaultTag)
	j := job{ctx: ctx, ev: ev, tag: tag, chain: p.chain.Snapshot()}

	if !p.submit(j) {
		p.run(j)
	}
}

// submit hands j to the worker pool and waits for it. It reports false when
// the caller should dispatch inline. Both waits honour j.ctx; an event that
// no worker has started by then is aborted on the caller's goroutine.
func (p *Pipeline) submit(j job) bool {
	if p.jobs == nil || onWorker() {
		return false
	}
	p.closeMu.RLock()
	if p.closed {
		p.closeMu.RUnlock()
		return false
	}
	j.done = make(chan struct{})
	j.claimed = new(atomic.Bool)
	select {
	case p.jobs <- j:
		p.closeMu.RUnlock()
	case <-j.ctx.Done():
		p.closeMu.RUnlock()
		p.abort(j)
		return true
	}

	select {
	case <-j.done:
	case <-j.ctx.Done():
		if j.claimed.CompareAndSwap(false, true) {
			p.abort(j)
			return true
		}
		// Already running; the dispatch sees the same context at its next
		// suspension point.
		<-j.done
	}
	return true
}

func (p *Pipeline) worker() {
	defer p.wg.Done()
	for j := range p.jobs {
		if j.claimed.CompareAndSwap(false, true) {
			p.run(j)
		}
		close(j.done)
	}
}

// run dispatches one job. A panicking sink cannot report itself, so it is
// counted and the marker is retried.
func (p *Pipeline) run(j job) {
	defer func() {
		if r := recover(); r != nil {
			p.st.printFailures.Add(1)
			p.d.completeQuietly(j.ev, j.tag)
		}
	}()
	p.d.dispatch(j.ctx, j.ev, j.tag, j.chain)
}

// abort reports a job that timed out before a worker started it.
func (p *Pipeline) abort(j job) {
	defer func() {
		if r := recover(); r != nil {
			p.st.printFailures.Add(1)
			p.d.completeQuietly(j.ev, j.tag)
		}
	}()
	p.d.abort(j.ev, j.tag, j.ctx.Err())
}

// onWorker reports whether the calling goroutine is a pipeline worker. The
// worker loop is the outermost frame of its goroutine, so the whole stack is
// walked.
func onWorker() bool {
	var pcs [64]uintptr
	for skip := 2; ; skip += len(pcs) {
		n := runtime.Callers(skip, pcs[:])
		frames := runtime.CallersFrames(pcs[:n])
		for {
			frame, more := frames.Next()
			if frame.Function == workerFunc {
				return true
			}
			if !more {
				break
			}
		}
		if n < len(pcs) {
			return false
		}
	}
}

// Close stops the workers after pending dispatches finish. Emits after Close
// run on the caller's goroutine.
func (p *Pipeline) Close() error {
	p.closeMu.Lock()
	if p.closed || p.jobs == nil {
		p.closed = true
		p.closeMu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobs)
	p.closeMu.Unlock()

	p.wg.Wait()
	return nil
}

// SetShowProgress toggles analytics and gate-state lines. It takes effect for
// lines printed after the call, including those of in-flight events.
func (p *Pipeline) SetShowProgress(on bool) { p.show.Store(on) }

// ShowProgress reports whether analytics and gate-state lines are printed.
func (p *Pipeline) ShowProgress() bool { return p.show.Load() }

// Tag is reserved for scoped tag isolation, which is not supported. It always
// returns the receiver and ErrTagIsolation.
func (p *Pipeline) Tag(string) (*Pipeline, error) { return p, ErrTagIsolation }

// Stats returns a snapshot of dispatch counters.
func (p *Pipeline) Stats() Stats { return p.st.snapshot() }

// ResetStats zeroes the dispatch counters.
func (p *Pipeline) ResetStats() { p.st.reset() }
