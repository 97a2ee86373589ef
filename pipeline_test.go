package elog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trickstertwo/elog/adapter/memory"
)

func TestBuilder_RequiresSink(t *testing.T) {
	_, err := NewBuilder().Build()
	require.ErrorIs(t, err, ErrNoSink)
}

func TestBuilder_Defaults(t *testing.T) {
	b := NewBuilder()
	assert.Positive(t, b.cfg.Workers)
	assert.Equal(t, DefaultTag, b.cfg.DefaultTag)
	assert.Nil(t, b.cfg.Chain)

	b.AddInterception()
	assert.NotNil(t, b.cfg.Chain, "AddInterception creates the chain")
}

func TestPipeline_SharedChain(t *testing.T) {
	shared := NewChain(continueWith("A"))
	p1, rec1 := newRecordingPipeline(t, NewBuilder().WithWorkers(0).WithChain(shared))
	p2, rec2 := newRecordingPipeline(t, NewBuilder().WithWorkers(0).WithChain(shared))

	p1.Setup(continueWith("B"))
	assert.Same(t, p1.Chain(), p2.Chain())

	p2.Emit(hello())
	assert.Equal(t, []string{"hello", "hello", ""}, rec2.Texts())
	assert.Zero(t, rec1.Len())
}

func TestPipeline_SetupIsObservedBySubsequentEmits(t *testing.T) {
	p, rec := newRecordingPipeline(t, NewBuilder().WithWorkers(2))

	p.Emit(hello())
	p.Setup(stopWith("Mute"))
	p.Emit(hello())

	assert.Equal(t, []string{"hello", "", ""}, rec.Texts())
}

func TestPipeline_EmitWaitsForCompletion(t *testing.T) {
	slow := Intercept("Slow", func(Level, string, error) (Progress, error) {
		time.Sleep(5 * time.Millisecond)
		return ProgressContinue, nil
	})
	p, rec := newRecordingPipeline(t, NewBuilder().WithWorkers(1).AddInterception(slow))

	for i := 0; i < 3; i++ {
		p.Emit(Event{Level: LevelInfo, Tag: "T", Message: fmt.Sprint(i)})
		// The completion marker is already written when Emit returns.
		assert.Equal(t, 2*(i+1), rec.Len())
	}
	assert.Equal(t, []string{"0", "", "1", "", "2", ""}, rec.Texts())
}

func TestPipeline_CloseFallsBackToInline(t *testing.T) {
	rec := &memory.Recorder{}
	p, err := NewBuilder().WithSink(rec).WithWorkers(3).Build()
	require.NoError(t, err)

	p.Emit(hello())
	require.NoError(t, p.Close())
	require.NoError(t, p.Close(), "Close is idempotent")
	p.Emit(hello())

	assert.Equal(t, []string{"hello", "", "hello", ""}, rec.Texts())
}

func TestPipeline_TagIsReserved(t *testing.T) {
	p, _ := newRecordingPipeline(t, NewBuilder().WithWorkers(0))

	same, err := p.Tag("Checkout")
	require.ErrorIs(t, err, ErrTagIsolation)
	assert.Same(t, p, same)
}

func TestPipeline_ShowProgressToggle(t *testing.T) {
	p, rec := newRecordingPipeline(t, NewBuilder().WithWorkers(0).AddInterception(continueWith("A")))

	assert.False(t, p.ShowProgress())
	p.Emit(hello())
	p.SetShowProgress(true)
	assert.True(t, p.ShowProgress())
	p.Emit(hello())

	assert.Len(t, rec.Containing("interception A -> CONTINUE"), 1)
}

// emptyTrace carries a stack trace with no frames, so no tag can be inferred.
type emptyTrace struct{}

func (emptyTrace) Error() string                 { return "no frames" }
func (emptyTrace) StackTrace() errors.StackTrace { return nil }

func TestPipeline_DefaultTagFallback(t *testing.T) {
	assert.Equal(t, "Fallback", resolveTag("", emptyTrace{}, "Fallback"))
	assert.Equal(t, "Given", resolveTag("Given", emptyTrace{}, "Fallback"))

	p, rec := newRecordingPipeline(t, NewBuilder().WithWorkers(0).WithDefaultTag("Custom"))
	p.Emit(Event{Level: LevelError, Err: emptyTrace{}})
	assert.Equal(t, "Custom", rec.Lines()[0].Tag)
	assert.Equal(t, "no frames", rec.Lines()[0].Text)
}

func TestPipeline_StatsReset(t *testing.T) {
	p, _ := newRecordingPipeline(t, NewBuilder().WithWorkers(0).AddInterception(stopWith("S")))
	p.Emit(hello())
	assert.EqualValues(t, 1, p.Stats().Stopped)

	p.ResetStats()
	assert.Equal(t, Stats{}, p.Stats())
}

func TestPipeline_SinkPanicOutsideGateIsCounted(t *testing.T) {
	sink := SinkFunc(func(_ int, _ string, text string) {
		if text == "" {
			panic("marker write failed")
		}
	})
	p, err := NewBuilder().WithSink(sink).WithWorkers(1).Build()
	require.NoError(t, err)
	defer p.Close()

	assert.NotPanics(t, func() { p.Emit(hello()) })
	assert.EqualValues(t, 1, p.Stats().PrintFailures)
}

func TestPipeline_MarkerRetriedAfterSinkPanic(t *testing.T) {
	rec := &memory.Recorder{}
	var panicked atomic.Bool
	sink := SinkFunc(func(prio int, tag, text string) {
		if strings.HasPrefix(text, "state ") && panicked.CompareAndSwap(false, true) {
			panic("trace write failed")
		}
		rec.Write(prio, tag, text)
	})
	p, err := NewBuilder().WithSink(sink).WithWorkers(1).WithShowProgress(true).Build()
	require.NoError(t, err)
	defer p.Close()

	p.Emit(hello())
	p.SetShowProgress(false)
	p.Emit(hello())

	assert.EqualValues(t, 1, p.Stats().PrintFailures)
	assert.Equal(t, []string{"", "hello", ""}, rec.Texts(), "the first event still ends with its marker")
}

func TestPipeline_EmitFromInterceptorOnWorker(t *testing.T) {
	var p *Pipeline
	echo := Intercept("Echo", func(_ Level, msg string, _ error) (Progress, error) {
		if msg == "outer" {
			p.Emit(Event{Level: LevelInfo, Tag: "T", Message: "inner"})
		}
		return ProgressContinue, nil
	})
	p, rec := newRecordingPipeline(t, NewBuilder().
		WithWorkers(1).
		WithTimeout(200*time.Millisecond).
		AddInterception(echo))

	done := make(chan struct{})
	go func() {
		p.Emit(Event{Level: LevelInfo, Tag: "T", Message: "outer"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("emit from an interceptor did not return")
	}

	assert.Equal(t, []string{"inner", "", "outer", ""}, rec.Texts())
	assert.Zero(t, p.Stats().Aborted)
}

func TestOnWorker(t *testing.T) {
	assert.False(t, onWorker())
}

func TestPipeline_FullQueueHonoursDeadline(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	block := Intercept("Block", func(_ Level, msg string, _ error) (Progress, error) {
		if msg == "first" {
			close(entered)
			<-release
		}
		return ProgressContinue, nil
	})
	p, rec := newRecordingPipeline(t, NewBuilder().
		WithWorkers(1).
		WithQueueSize(1).
		WithTimeout(50*time.Millisecond).
		AddInterception(block))

	long, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		p.EmitContext(long, Event{Level: LevelInfo, Tag: "T", Message: "first"})
	}()
	<-entered

	// Queued behind the blocked job; times out before a worker takes it.
	go func() {
		defer wg.Done()
		p.Emit(Event{Level: LevelInfo, Tag: "T", Message: "second"})
	}()
	require.Eventually(t, func() bool { return len(p.jobs) == 1 }, time.Second, time.Millisecond)

	// The queue is full, so this one cannot even be handed over.
	start := time.Now()
	p.Emit(Event{Level: LevelInfo, Tag: "T", Message: "third"})
	assert.Less(t, time.Since(start), time.Second)

	close(release)
	wg.Wait()

	assert.EqualValues(t, 2, p.Stats().Aborted)
	aborts := rec.Containing("dispatch aborted")
	require.Len(t, aborts, 2)
	for _, l := range aborts {
		assert.Equal(t, "Pipeline", l.Tag)
		assert.Contains(t, l.Text, "deadline exceeded")
	}
	assert.Len(t, rec.Containing("first"), 1)
	assert.Empty(t, rec.Filter(func(l memory.Line) bool { return l.Text == "second" || l.Text == "third" }))
}

func TestMultiSink(t *testing.T) {
	var a, b memory.Recorder
	s := NewMultiSink(&a, nil, &b)
	s.Write(LevelInfo.Priority(), "T", "x")

	assert.Equal(t, []string{"x"}, a.Texts())
	assert.Equal(t, []string{"x"}, b.Texts())
	assert.IsType(t, NopSink{}, NewMultiSink(nil))
	assert.Same(t, &a, NewMultiSink(&a))
}

func TestDefaultUsesRegisteredFactory(t *testing.T) {
	old := defaultSinkFactory
	t.Cleanup(func() { defaultSinkFactory = old })

	defaultSinkFactory = nil
	assert.Panics(t, func() { Default() })

	var buf bytes.Buffer
	var gotWriter io.Writer
	RegisterDefaultSinkFactory(func(w io.Writer) Sink {
		gotWriter = w
		return SinkFunc(func(_ int, tag, text string) { fmt.Fprintf(&buf, "%s:%s\n", tag, text) })
	})

	p := New()
	t.Cleanup(func() { _ = p.Close() })
	assert.NotNil(t, gotWriter)
	assert.Same(t, p, L())

	p.Emit(Event{Level: LevelInfo, Tag: "Boot", Message: "up"})
	assert.Equal(t, "Boot:up\nBoot:\n", buf.String())
}

func TestUseSinkSetsGlobal(t *testing.T) {
	rec := &memory.Recorder{}
	p := UseSink(rec, stopWith("S"))
	t.Cleanup(func() { _ = p.Close() })

	assert.Same(t, p, L())
	assert.Equal(t, 1, p.Chain().Len())
}
