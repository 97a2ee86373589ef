package elog

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// pipelineTag tags failures that belong to the pipeline rather than to an
	// interceptor, such as an expired emit deadline.
	pipelineTag = "Pipeline"

	// completionMarker is the payload that closes one event's output.
	completionMarker = ""

	analyticsGateName = "analytics"
	messageGateName   = "message"
)

// dispatcher runs one event through a chain snapshot. Interceptors run in
// order on the calling goroutine; each turn finishes its gated prints before
// the next interceptor starts.
type dispatcher struct {
	sink      Sink
	analytics *Gate
	message   *Gate
	show      *atomic.Bool
	st        *stats
}

func newDispatcher(sink Sink, show *atomic.Bool, st *stats) *dispatcher {
	return &dispatcher{
		sink:      sink,
		analytics: NewGate(analyticsGateName),
		message:   NewGate(messageGateName),
		show:      show,
		st:        st,
	}
}

func (d *dispatcher) dispatch(ctx context.Context, ev Event, tag string, chain []Interception) {
	d.st.events.Add(1)
	text := ev.Text()

	var id string
	if d.show.Load() {
		id = dispatchID()
	}

	if len(chain) == 0 {
		if err := d.guard(ctx, d.message, ev, tag, d.printMessage(ev, tag, text)); err != nil {
			d.abort(ev, tag, err)
			return
		}
		d.complete(ev, tag)
		return
	}

	for _, ic := range chain {
		if err := ctx.Err(); err != nil {
			d.abort(ev, tag, err)
			return
		}

		name := interceptionName(ic)
		progress, err := invoke(ic, ev, text)
		if err != nil {
			d.fail(ev, tag, &InterceptorFailure{Interceptor: name, Err: err})
			return
		}

		if progress == ProgressContinue {
			d.st.continued.Add(1)
		} else {
			progress = ProgressStop
			d.st.stopped.Add(1)
		}

		if err := d.guard(ctx, d.analytics, ev, tag, d.printAnalytics(ev, tag, id, name, progress)); err != nil {
			d.abort(ev, tag, err)
			return
		}
		if progress != ProgressContinue {
			continue
		}
		if err := d.guard(ctx, d.message, ev, tag, d.printMessage(ev, tag, text)); err != nil {
			d.abort(ev, tag, err)
			return
		}
	}
	d.complete(ev, tag)
}

func invoke(ic Interception, ev Event, text string) (p Progress, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(ErrInterceptorPanic, r)
		}
	}()
	p, err = ic.OnInterception(ev.Level, text, ev.Err)
	if err != nil {
		var st stackTracer
		if !errors.As(err, &st) {
			err = errors.WithStack(err)
		}
	}
	return p, err
}

// guard runs action under g. PrintFailures are reported at the event's level
// and swallowed; anything else (a context error while waiting) is returned.
func (d *dispatcher) guard(ctx context.Context, g *Gate, ev Event, tag string, action func() error) error {
	d.traceGate(g, ev, tag)
	err := g.WithExclusiveAccess(ctx, action)
	d.traceGate(g, ev, tag)

	var pf *PrintFailure
	if errors.As(err, &pf) {
		d.st.printFailures.Add(1)
		d.sink.Write(ev.Level.Priority(), tag, fmt.Sprintf("%+v", pf))
		return nil
	}
	return err
}

func (d *dispatcher) traceGate(g *Gate, ev Event, tag string) {
	if !d.show.Load() {
		return
	}
	d.sink.Write(ev.Level.Priority(), tag, "state "+g.Name()+" locked is "+strconv.FormatBool(g.Held()))
}

func (d *dispatcher) printAnalytics(ev Event, tag, id, name string, p Progress) func() error {
	return func() error {
		if !d.show.Load() {
			return nil
		}
		d.sink.Write(ev.Level.Priority(), tag, analyticsLine(id, name, p))
		return nil
	}
}

func (d *dispatcher) printMessage(ev Event, tag, text string) func() error {
	return func() error {
		d.sink.Write(ev.Level.Priority(), tag, text)
		return nil
	}
}

func (d *dispatcher) complete(ev Event, tag string) {
	d.sink.Write(ev.Level.Priority(), tag, completionMarker)
}

// completeQuietly retries the completion marker after a sink panic. A second
// panic is dropped.
func (d *dispatcher) completeQuietly(ev Event, tag string) {
	defer func() { _ = recover() }()
	d.complete(ev, tag)
}

// fail reports an interceptor failure under the interceptor's name and closes
// the event.
func (d *dispatcher) fail(ev Event, tag string, f *InterceptorFailure) {
	d.st.interceptorFailures.Add(1)
	d.sink.Write(LevelError.Priority(), f.Interceptor, fmt.Sprintf("%+v", f))
	d.complete(ev, tag)
}

// abort reports a dispatch cut short by its context and closes the event.
func (d *dispatcher) abort(ev Event, tag string, cause error) {
	d.st.aborted.Add(1)
	d.sink.Write(LevelError.Priority(), pipelineTag, fmt.Sprintf("%+v", errors.Wrap(cause, "dispatch aborted")))
	d.complete(ev, tag)
}

func analyticsLine(id, name string, p Progress) string {
	if id == "" {
		id = "-"
	}
	return "[" + id + "] interception " + name + " -> " + p.String()
}

// dispatchID is a short correlation ID so analytics lines of concurrent events
// can be told apart.
func dispatchID() string {
	return uuid.NewString()[:8]
}
