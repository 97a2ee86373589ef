package zerolog

import (
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/elog"
)

func BenchmarkZerologSink_Write(b *testing.B) {
	var s elog.Sink = New(zerolog.New(io.Discard).Level(zerolog.InfoLevel))
	prio := elog.LevelInfo.Priority()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Write(prio, "Bench", "bench")
	}
}

func BenchmarkZerologSink_Filtered(b *testing.B) {
	var s elog.Sink = New(zerolog.New(io.Discard).Level(zerolog.InfoLevel))
	prio := elog.LevelDebug.Priority()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Write(prio, "Bench", "not-logged")
	}
}
