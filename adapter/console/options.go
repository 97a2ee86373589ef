package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/trickstertwo/elog"
)

// ColorMode controls ANSI colouring of the level/tag column.
type ColorMode uint8

const (
	ColorAuto   ColorMode = iota // colour only when writing to a terminal
	ColorAlways                  // force colour
	ColorNever                   // plain text
)

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseColorMode accepts auto, always and never (case-insensitive). The empty
// string is auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always", "on", "true":
		return ColorAlways, nil
	case "never", "off", "false":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode %q", s)
	}
}

// DefaultTimeFormat mirrors logcat's threadtime column.
const DefaultTimeFormat = "01-02 15:04:05.000"

// ErrorHandler receives write failures.
type ErrorHandler func(error)

// Options configures the sink behavior.
type Options struct {
	MinLevel     elog.Level
	Color        ColorMode
	TimeFormat   string // default DefaultTimeFormat; "-" omits the timestamp
	ErrorHandler ErrorHandler

	// Buffer tuning: initial capacity of the format buffer.
	// Defaults to 512 when <= 0.
	BufferSize int
}

func defaultErrorHandler(err error) { fmt.Fprintf(os.Stderr, "elog console error: %v\n", err) }

func shouldColorize(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
