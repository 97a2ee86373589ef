package elog

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNoSink is returned by Builder.Build when no Sink was configured.
	ErrNoSink = errors.New("elog: no sink configured")

	// ErrTagIsolation is returned by Pipeline.Tag. Scoped tag overrides are not
	// supported; pass the tag on each Event instead.
	ErrTagIsolation = errors.New("elog: tag isolation not implemented")

	// ErrInterceptorPanic marks an interceptor that panicked instead of
	// returning an error.
	ErrInterceptorPanic = errors.New("elog: interceptor panicked")

	// ErrGatePanic marks a guarded print that panicked.
	ErrGatePanic = errors.New("elog: guarded print panicked")
)

// InterceptorFailure reports an interceptor that returned an error or
// panicked. It aborts the remainder of the chain for that event.
type InterceptorFailure struct {
	Interceptor string
	Err         error
}

func (f *InterceptorFailure) Error() string {
	return fmt.Sprintf("interceptor %s failed: %v", f.Interceptor, f.Err)
}

func (f *InterceptorFailure) Unwrap() error { return f.Err }

// Format prints the wrapped stack with %+v.
func (f *InterceptorFailure) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "interceptor %s failed: %+v", f.Interceptor, f.Err)
		return
	}
	fmt.Fprint(s, f.Error())
}

// PrintFailure reports a guarded print that returned an error or panicked.
// The gate is released and the chain continues.
type PrintFailure struct {
	Gate string
	Err  error
}

func (f *PrintFailure) Error() string {
	return fmt.Sprintf("%s print failed: %v", f.Gate, f.Err)
}

func (f *PrintFailure) Unwrap() error { return f.Err }

// Format prints the wrapped stack with %+v.
func (f *PrintFailure) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s print failed: %+v", f.Gate, f.Err)
		return
	}
	fmt.Fprint(s, f.Error())
}

// recovered converts a recovered panic value into a stack-carrying error
// wrapping base.
func recovered(base error, r any) error {
	if err, ok := r.(error); ok {
		return errors.Wrapf(base, "%v", err)
	}
	return errors.Wrapf(base, "%v", r)
}
