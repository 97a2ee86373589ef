// Package memory provides a Sink that records every line it receives. It is
// meant for tests and for inspecting what a pipeline would print.
package memory

import (
	"strings"
	"sync"
)

// Line is one recorded sink write.
type Line struct {
	Priority int
	Tag      string
	Text     string
}

// Recorder is a concurrency-safe Sink that keeps lines in arrival order.
// The zero value is ready to use.
type Recorder struct {
	mu    sync.Mutex
	lines []Line

	// OnWrite, when set, is called with each line while the recorder's lock is
	// held. Tests use it to observe overlapping writes.
	OnWrite func(Line)
}

func (r *Recorder) Write(priority int, tag, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l := Line{Priority: priority, Tag: tag, Text: text}
	r.lines = append(r.lines, l)
	if r.OnWrite != nil {
		r.OnWrite(l)
	}
}

// Lines returns a copy of all recorded lines.
func (r *Recorder) Lines() []Line {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Line, len(r.lines))
	copy(out, r.lines)
	return out
}

// Texts returns the text of every recorded line.
func (r *Recorder) Texts() []string {
	lines := r.Lines()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

// Filter returns the lines for which keep reports true.
func (r *Recorder) Filter(keep func(Line) bool) []Line {
	var out []Line
	for _, l := range r.Lines() {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

// Containing returns the lines whose text contains substr.
func (r *Recorder) Containing(substr string) []Line {
	return r.Filter(func(l Line) bool { return strings.Contains(l.Text, substr) })
}

// Len reports the number of recorded lines.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lines)
}

// Reset discards all recorded lines.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = nil
}
