package elog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trickstertwo/elog/adapter/memory"
)

// mockInterception is a scripted interception.
type mockInterception struct {
	mock.Mock
	name string
}

func newMockInterception(name string) *mockInterception { return &mockInterception{name: name} }

func (m *mockInterception) Name() string { return m.name }

func (m *mockInterception) OnInterception(level Level, message string, err error) (Progress, error) {
	args := m.Called(level, message, err)
	return args.Get(0).(Progress), args.Error(1)
}

func (m *mockInterception) returns(p Progress, err error) *mockInterception {
	m.On("OnInterception", mock.Anything, mock.Anything, mock.Anything).Return(p, err)
	return m
}

func continueWith(name string) Interception {
	return Intercept(name, func(Level, string, error) (Progress, error) { return ProgressContinue, nil })
}

func stopWith(name string) Interception {
	return Intercept(name, func(Level, string, error) (Progress, error) { return ProgressStop, nil })
}

func newRecordingPipeline(t *testing.T, b *Builder) (*Pipeline, *memory.Recorder) {
	t.Helper()
	rec := &memory.Recorder{}
	p, err := b.WithSink(rec).Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p, rec
}

// withoutTrace drops gate-state lines.
func withoutTrace(lines []memory.Line) []memory.Line {
	out := lines[:0:0]
	for _, l := range lines {
		if !strings.HasPrefix(l.Text, "state ") {
			out = append(out, l)
		}
	}
	return out
}

func texts(lines []memory.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

// stripIDs replaces the per-event ID in analytics lines with "*".
func stripIDs(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		if strings.HasPrefix(s, "[") {
			if end := strings.IndexByte(s, ']'); end > 0 {
				s = "[*" + s[end:]
			}
		}
		out[i] = s
	}
	return out
}
