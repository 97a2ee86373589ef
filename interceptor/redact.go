package interceptor

import (
	"regexp"

	"github.com/pkg/errors"

	"github.com/trickstertwo/elog"
)

// Redactor stops messages matching any of its patterns. Placed alone in a
// chain it keeps matching messages away from the sink.
type Redactor struct {
	patterns []*regexp.Regexp
}

// Redact compiles patterns. An invalid pattern is reported with its index.
func Redact(patterns ...string) (*Redactor, error) {
	r := &Redactor{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "redact pattern %d", i)
		}
		r.patterns = append(r.patterns, re)
	}
	return r, nil
}

// MustRedact is like Redact but panics on an invalid pattern.
func MustRedact(patterns ...string) *Redactor {
	r, err := Redact(patterns...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Redactor) Name() string { return "Redact" }

func (r *Redactor) OnInterception(_ elog.Level, message string, _ error) (elog.Progress, error) {
	for _, re := range r.patterns {
		if re.MatchString(message) {
			return elog.ProgressStop, nil
		}
	}
	return elog.ProgressContinue, nil
}
