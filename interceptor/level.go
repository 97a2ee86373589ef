package interceptor

import "github.com/trickstertwo/elog"

type minLevel struct{ floor elog.Level }

// MinLevel stops events below floor.
func MinLevel(floor elog.Level) elog.Interception { return minLevel{floor: floor} }

func (m minLevel) Name() string { return "MinLevel" }

func (m minLevel) OnInterception(level elog.Level, _ string, _ error) (elog.Progress, error) {
	if level < m.floor {
		return elog.ProgressStop, nil
	}
	return elog.ProgressContinue, nil
}
