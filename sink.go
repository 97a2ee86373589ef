package elog

// Sink is the output Strategy: the platform print call the pipeline emits
// through. Implementations must be safe for concurrent use and should return
// quickly; the pipeline's gates do not cover the sink for unrelated writes.
type Sink interface {
	Write(priority int, tag, text string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(priority int, tag, text string)

func (f SinkFunc) Write(priority int, tag, text string) { f(priority, tag, text) }

// NopSink discards everything. It is usable as a zero value.
type NopSink struct{}

func (NopSink) Write(int, string, string) {}

// MultiSink writes every line to each sink in order.
type MultiSink []Sink

func (m MultiSink) Write(priority int, tag, text string) {
	for _, s := range m {
		s.Write(priority, tag, text)
	}
}

// NewMultiSink drops nil sinks and returns a single sink unwrapped.
func NewMultiSink(sinks ...Sink) Sink {
	filtered := make(MultiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			filtered = append(filtered, s)
		}
	}
	switch len(filtered) {
	case 0:
		return NopSink{}
	case 1:
		return filtered[0]
	default:
		return filtered
	}
}

var (
	_ Sink = NopSink{}
	_ Sink = MultiSink(nil)
	_ Sink = SinkFunc(nil)
)
