package elog

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// DefaultTag is used when no tag was supplied and none can be inferred.
const DefaultTag = "ELog"

// maxCallSiteDepth bounds the frames inspected when capturing the call site.
const maxCallSiteDepth = 32

// pkgPrefix identifies frames that belong to this package so call-site capture
// can step over them.
var pkgPrefix = reflect.TypeOf(Event{}).PkgPath() + "."

// stackTracer is implemented by errors from github.com/pkg/errors.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// ResolveTag returns explicit when it is non-empty. Otherwise it infers a tag
// from the innermost stack frame of err, or from the caller's frame when err
// carries no stack, and falls back to DefaultTag. It never panics.
func ResolveTag(explicit string, err error) string {
	return resolveTag(explicit, err, DefaultTag)
}

func resolveTag(explicit string, err error, fallback string) (tag string) {
	if explicit != "" {
		return explicit
	}
	defer func() {
		if r := recover(); r != nil {
			tag = fallback
		}
	}()

	var fn string
	var st stackTracer
	if err != nil && errors.As(err, &st) {
		fn = firstFrame(st.StackTrace())
	} else {
		fn = callSite()
	}
	if name := declaringType(fn); name != "" {
		return name
	}
	return fallback
}

func firstFrame(trace errors.StackTrace) string {
	if len(trace) == 0 {
		return ""
	}
	pcs := make([]uintptr, len(trace))
	for i, f := range trace {
		pcs[i] = uintptr(f)
	}
	frame, _ := runtime.CallersFrames(pcs).Next()
	return frame.Function
}

// callSite returns the function name of the first frame outside this package.
func callSite() string {
	var pcs [maxCallSiteDepth]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		fn := frame.Function
		if fn != "" && !strings.HasPrefix(fn, pkgPrefix) && !strings.HasPrefix(fn, "runtime.") {
			return fn
		}
		if !more {
			return ""
		}
	}
}

// declaringType reduces a runtime function name to the simple name of the type
// that declares it:
//
//	github.com/acme/shop.(*Cart).Add        -> Cart
//	github.com/acme/shop.Cart.Total.func1   -> Cart
//	github.com/acme/shop.checkout.func2     -> shop
//	main.main                               -> main
func declaringType(fn string) string {
	if fn == "" {
		return ""
	}
	if i := strings.LastIndexByte(fn, '/'); i >= 0 {
		fn = fn[i+1:]
	}
	dot := strings.IndexByte(fn, '.')
	if dot <= 0 {
		return ""
	}
	pkg, rest := fn[:dot], fn[dot+1:]

	if strings.HasPrefix(rest, "(") {
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return pkg
		}
		recv := strings.TrimLeft(rest[1:end], "*")
		if recv = stripTypeArgs(recv); recv == "" {
			return pkg
		}
		return recv
	}

	parts := strings.Split(rest, ".")
	if len(parts) < 2 || isClosureSegment(parts[1]) {
		return pkg
	}
	if name := stripTypeArgs(parts[0]); name != "" && name != "init" && name != "glob" {
		return name
	}
	return pkg
}

func stripTypeArgs(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}

// isClosureSegment matches compiler-generated segments such as func1, 2 or gowrap1.
func isClosureSegment(s string) bool {
	s = strings.TrimSuffix(s, "-fm")
	for _, p := range []string{"func", "gowrap", "deferwrap"} {
		if strings.HasPrefix(s, p) {
			s = s[len(p):]
			break
		}
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// TagOf returns the simple type name of v, dereferencing pointers. It is the
// helper for tagging an event by its source object.
func TagOf(v any) string {
	if v == nil {
		return ""
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := stripTypeArgs(t.Name()); name != "" {
		return name
	}
	return t.String()
}
