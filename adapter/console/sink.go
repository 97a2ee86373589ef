// Package console is a logcat-style text sink:
//
//	01-02 15:04:05.000 I/Checkout: order placed
//
// Lines are formatted into pooled buffers and written under a mutex, so a
// single Sink may be shared by many pipelines.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/trickstertwo/xclock"

	"github.com/trickstertwo/elog"
)

// Sink writes one text line per call.
type Sink struct {
	w    io.Writer
	opts Options

	mu       sync.Mutex
	colorize bool
	palette  [elog.LevelAssert + 1]*color.Color

	st stats
}

// New creates a sink writing to w (os.Stdout when nil).
func New(w io.Writer, opts Options) *Sink {
	if w == nil {
		w = os.Stdout
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = DefaultTimeFormat
	}
	if opts.ErrorHandler == nil {
		opts.ErrorHandler = defaultErrorHandler
	}
	s := &Sink{w: w, opts: opts, colorize: shouldColorize(opts.Color, w)}
	s.palette = [...]*color.Color{
		elog.LevelVerbose: color.New(color.FgHiBlack),
		elog.LevelDebug:   color.New(color.FgCyan),
		elog.LevelInfo:    color.New(color.FgGreen),
		elog.LevelWarn:    color.New(color.FgYellow),
		elog.LevelError:   color.New(color.FgRed),
		elog.LevelAssert:  color.New(color.FgHiRed, color.Bold),
	}
	// color decides on its own from os.Stdout; our decision is per writer.
	for _, c := range s.palette {
		if s.colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func (s *Sink) Write(priority int, tag, text string) {
	level := elog.LevelFromPriority(priority)
	if level < s.opts.MinLevel {
		s.st.filtered.Add(1)
		return
	}

	buf := getBufWithCap(s.opts.BufferSize)
	defer putBuf(buf)

	defer func() {
		if r := recover(); r != nil {
			s.st.errors.Add(1)
			s.opts.ErrorHandler(fmt.Errorf("panic during console write: %v", r))
		}
	}()

	s.format(buf, level, tag, text)

	s.mu.Lock()
	_, err := s.w.Write(buf.b)
	s.mu.Unlock()

	if err != nil {
		s.st.errors.Add(1)
		s.opts.ErrorHandler(err)
		return
	}
	s.st.written.Add(1)
}

func (s *Sink) format(buf *buffer, level elog.Level, tag, text string) {
	if s.opts.TimeFormat != "-" {
		buf.b = xclock.Now().AppendFormat(buf.b, s.opts.TimeFormat)
		buf.writeByte(' ')
	}

	if s.colorize {
		buf.writeString(s.palette[level].Sprint(string(level.Letter()) + "/" + tag))
	} else {
		buf.writeByte(level.Letter())
		buf.writeByte('/')
		buf.writeString(tag)
	}
	buf.writeString(": ")
	buf.writeString(text)
	buf.writeByte('\n')
}

// SetMinLevel changes the filter. Call it before the sink is shared.
func (s *Sink) SetMinLevel(l elog.Level) { s.opts.MinLevel = l }

// Colorized reports whether lines carry ANSI colour codes.
func (s *Sink) Colorized() bool { return s.colorize }

// Stats returns a snapshot of internal counters.
func (s *Sink) Stats() StatsSnapshot { return s.st.snapshot() }

// ResetStats resets internal counters.
func (s *Sink) ResetStats() { s.st.reset() }

var _ elog.Sink = (*Sink)(nil)
