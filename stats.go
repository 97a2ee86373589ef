package elog

import "sync/atomic"

type stats struct {
	events              atomic.Uint64
	continued           atomic.Uint64
	stopped             atomic.Uint64
	interceptorFailures atomic.Uint64
	printFailures       atomic.Uint64
	aborted             atomic.Uint64
}

// Stats is a point-in-time counters snapshot.
type Stats struct {
	Events              uint64 // events dispatched
	Continued           uint64 // interceptor turns that returned CONTINUE
	Stopped             uint64 // interceptor turns that returned STOP
	InterceptorFailures uint64
	PrintFailures       uint64
	Aborted             uint64 // events cut short by a deadline or cancellation
}

func (s *stats) snapshot() Stats {
	return Stats{
		Events:              s.events.Load(),
		Continued:           s.continued.Load(),
		Stopped:             s.stopped.Load(),
		InterceptorFailures: s.interceptorFailures.Load(),
		PrintFailures:       s.printFailures.Load(),
		Aborted:             s.aborted.Load(),
	}
}

func (s *stats) reset() {
	s.events.Store(0)
	s.continued.Store(0)
	s.stopped.Store(0)
	s.interceptorFailures.Store(0)
	s.printFailures.Store(0)
	s.aborted.Store(0)
}
