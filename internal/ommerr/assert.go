package ommerr

import "fmt"

// Assert returns an ErrorInternal error naming expr and the caller's
// location when cond is false.
func Assert(cond bool, expr string) error {
	if cond {
		return nil
	}
	return AssertAt(cond, "", expr, Caller(1))
}

// AssertMsg is Assert with msg prepended to the diagnostic.
func AssertMsg(cond bool, msg, expr string) error {
	if cond {
		return nil
	}
	return AssertAt(cond, msg, expr, Caller(1))
}

// AssertAt is the explicit-location form used by generated or wrapped callers.
func AssertAt(cond bool, msg, expr string, loc Location) error {
	if cond {
		return nil
	}
	text := fmt.Sprintf("%s (%d): %s", loc.File, loc.Line, expr)
	if msg != "" {
		text = msg + ": " + text
	}
	return New(ErrorInternal, text)
}
