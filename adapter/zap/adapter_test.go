package zap

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/elog"
)

func newTestZap(buf *bytes.Buffer, lvl zapcore.LevelEnabler) *zap.Logger {
	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "", // keep output deterministic
		LevelKey:       "level",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})
	core := zapcore.NewCore(enc, zapcore.AddSync(buf), lvl)
	return zap.New(core)
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("json unmarshal: %v; line=%s", err, line)
		}
		out = append(out, m)
	}
	return out
}

func TestZapSink_WritesTagAndLevel(t *testing.T) {
	var buf bytes.Buffer
	s := New(newTestZap(&buf, zapcore.DebugLevel))

	s.Write(elog.LevelWarn.Priority(), "Checkout", "card declined")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	m := lines[0]
	if m["level"] != "warn" {
		t.Fatalf("level mismatch: %v", m["level"])
	}
	if m["message"] != "card declined" {
		t.Fatalf("message mismatch: %v", m["message"])
	}
	if m["tag"] != "Checkout" {
		t.Fatalf("tag mismatch: %v", m["tag"])
	}
}

func TestZapSink_AssertMapsToError(t *testing.T) {
	var buf bytes.Buffer
	s := New(newTestZap(&buf, zapcore.DebugLevel))

	s.Write(elog.LevelAssert.Priority(), "T", "boom")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0]["level"] != "error" {
		t.Fatalf("expected one error line, got %v", lines)
	}
}

func TestZapSink_SetMinLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	al := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	s := NewWithTagKey(newTestZap(&buf, al), &al, "component")

	s.SetMinLevel(elog.LevelWarn)
	s.Write(elog.LevelInfo.Priority(), "T", "dropped")
	s.Write(elog.LevelError.Priority(), "T", "kept")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line after filter, got %d", len(lines))
	}
	if lines[0]["message"] != "kept" || lines[0]["component"] != "T" {
		t.Fatalf("unexpected line: %v", lines[0])
	}
}

func TestZapSink_PipelineEndToEnd(t *testing.T) {
	var buf bytes.Buffer
	p, err := elog.NewBuilder().
		WithSink(New(newTestZap(&buf, zapcore.DebugLevel))).
		WithWorkers(0).
		Build()
	if err != nil {
		t.Fatalf("build pipeline: %v", err)
	}

	p.Emit(elog.Event{Level: elog.LevelInfo, Tag: "Boot", Message: "listening"})

	lines := decodeLines(t, &buf)
	// message + completion marker
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %s", len(lines), buf.String())
	}
	if lines[0]["message"] != "listening" || lines[0]["tag"] != "Boot" {
		t.Fatalf("message line mismatch: %v", lines[0])
	}
	if lines[1]["message"] != "" {
		t.Fatalf("expected empty completion marker, got %v", lines[1]["message"])
	}
}
