package interceptor

import "github.com/trickstertwo/elog"

// Report is what a crash reporter receives.
type Report struct {
	Level   elog.Level
	Message string
	Err     error
}

type reporter struct {
	fn func(Report) error
}

// Reporter forwards ERROR and ASSERT events that carry an error to fn. It
// never vetoes; an error from fn becomes an interceptor failure.
func Reporter(fn func(Report) error) elog.Interception { return reporter{fn: fn} }

func (r reporter) Name() string { return "Reporter" }

func (r reporter) OnInterception(level elog.Level, message string, err error) (elog.Progress, error) {
	if r.fn == nil || err == nil || level < elog.LevelError {
		return elog.ProgressContinue, nil
	}
	if ferr := r.fn(Report{Level: level, Message: message, Err: err}); ferr != nil {
		return elog.ProgressContinue, ferr
	}
	return elog.ProgressContinue, nil
}
