package elog

import (
	"io"
	"os"
)

// defaultSinkFactory is set by a sink package (e.g., adapter/zerolog) in its
// init() to avoid import cycles. Default() uses this to build a pipeline.
var defaultSinkFactory func(w io.Writer) Sink

// RegisterDefaultSinkFactory registers the constructor used by elog.Default().
// Sink packages should call this from init() to avoid import cycles.
// Example (in adapter/zerolog):
//
//	func init() {
//	  elog.RegisterDefaultSinkFactory(func(w io.Writer) elog.Sink {
//	    return zerologsink.New(zerolog.New(w))
//	  })
//	}
func RegisterDefaultSinkFactory(f func(io.Writer) Sink) {
	defaultSinkFactory = f
}

// Default creates a pipeline using the registered sink factory, writing to
// os.Stdout with an empty chain. Panics if no factory is registered.
func Default() *Pipeline {
	if defaultSinkFactory == nil {
		panic("elog: no default sink registered. Import adapter/zerolog or call elog.RegisterDefaultSinkFactory")
	}
	p, _ := NewBuilder().WithSink(defaultSinkFactory(os.Stdout)).Build()
	return p
}

// New creates a default pipeline (via Default()) and sets it as global.
// It returns the global pipeline for convenience.
func New() *Pipeline {
	p := Default()
	SetGlobal(p)
	return p
}

// UseSink builds a pipeline over s with the given interceptions, sets it as
// global and returns it.
func UseSink(s Sink, is ...Interception) *Pipeline {
	if s == nil {
		s = NopSink{}
	}
	p, _ := NewBuilder().
		WithSink(s).
		AddInterception(is...).
		Build()
	SetGlobal(p)
	return p
}
