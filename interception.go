package elog

// Interception is a middleware unit that inspects an event and decides whether
// its message is printed for this turn. Implementations may be stateful but
// must be safe for concurrent use: distinct events are dispatched in parallel.
//
// Returning a non-nil error (or panicking) aborts the rest of the chain for
// that event.
type Interception interface {
	OnInterception(level Level, message string, err error) (Progress, error)
}

// Named is implemented by interceptions that want a stable name in analytics
// lines and failure reports. Without it the simple type name is used.
type Named interface {
	Name() string
}

// InterceptionFunc adapts a function to Interception.
type InterceptionFunc func(level Level, message string, err error) (Progress, error)

func (f InterceptionFunc) OnInterception(level Level, message string, err error) (Progress, error) {
	return f(level, message, err)
}

type namedFunc struct {
	name string
	fn   InterceptionFunc
}

func (n namedFunc) Name() string { return n.name }

func (n namedFunc) OnInterception(level Level, message string, err error) (Progress, error) {
	return n.fn(level, message, err)
}

// Intercept wraps fn as a named Interception.
func Intercept(name string, fn InterceptionFunc) Interception {
	return namedFunc{name: name, fn: fn}
}

func interceptionName(i Interception) string {
	if n, ok := i.(Named); ok {
		if s := n.Name(); s != "" {
			return s
		}
	}
	if s := TagOf(i); s != "" {
		return s
	}
	return "Interception"
}
