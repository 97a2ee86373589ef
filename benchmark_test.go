package elog

import (
	"testing"
)

func newBenchPipeline(workers int, is ...Interception) *Pipeline {
	p, err := NewBuilder().
		WithSink(NopSink{}).
		WithWorkers(workers).
		AddInterception(is...).
		Build()
	if err != nil {
		panic(err)
	}
	return p
}

func benchEvent() Event { return Event{Level: LevelInfo, Tag: "Bench", Message: "hello"} }

func BenchmarkEmit_EmptyChain_Inline(b *testing.B) {
	p := newBenchPipeline(0)
	ev := benchEvent()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Emit(ev)
	}
}

func BenchmarkEmit_3Interceptors_Inline(b *testing.B) {
	p := newBenchPipeline(0, continueWith("A"), stopWith("B"), continueWith("C"))
	ev := benchEvent()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Emit(ev)
	}
}

func BenchmarkEmit_3Interceptors_Progress(b *testing.B) {
	p := newBenchPipeline(0, continueWith("A"), stopWith("B"), continueWith("C"))
	p.SetShowProgress(true)
	ev := benchEvent()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Emit(ev)
	}
}

// Tag inference walks the stack on every call.
func BenchmarkEmit_InferredTag(b *testing.B) {
	p := newBenchPipeline(0)
	ev := Event{Level: LevelInfo, Message: "hello"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Emit(ev)
	}
}

func BenchmarkEmit_Parallel_Workers(b *testing.B) {
	p := newBenchPipeline(4, continueWith("A"), continueWith("B"))
	defer p.Close()
	ev := benchEvent()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			p.Emit(ev)
		}
	})
}
