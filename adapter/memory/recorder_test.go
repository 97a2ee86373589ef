package memory

import (
	"sync"
	"testing"
)

func TestRecorder_KeepsOrderAndFilters(t *testing.T) {
	var r Recorder
	r.Write(4, "A", "first")
	r.Write(6, "B", "second item")
	r.Write(4, "A", "")

	if got := r.Len(); got != 3 {
		t.Fatalf("len = %d, want 3", got)
	}
	if got := r.Texts(); got[0] != "first" || got[1] != "second item" || got[2] != "" {
		t.Fatalf("unexpected texts: %q", got)
	}
	if got := r.Containing("item"); len(got) != 1 || got[0].Tag != "B" || got[0].Priority != 6 {
		t.Fatalf("unexpected Containing result: %+v", got)
	}
	if got := r.Filter(func(l Line) bool { return l.Tag == "A" }); len(got) != 2 {
		t.Fatalf("expected 2 lines tagged A, got %d", len(got))
	}

	r.Reset()
	if r.Len() != 0 {
		t.Fatalf("expected empty recorder after Reset")
	}
}

func TestRecorder_OnWriteAndConcurrency(t *testing.T) {
	var seen int
	r := &Recorder{OnWrite: func(Line) { seen++ }}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Write(4, "T", "x")
		}()
	}
	wg.Wait()

	if r.Len() != 50 || seen != 50 {
		t.Fatalf("len=%d seen=%d, want 50/50", r.Len(), seen)
	}
}
