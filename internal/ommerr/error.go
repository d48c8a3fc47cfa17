package ommerr

import (
	"errors"
	"fmt"
)

// Error is a classified failure raised by the baking library.
// It is only ever constructed on a failure path, so its Result is never Success.
type Error struct {
	result Result
	msg    string
}

// Sentinels for errors.Is. Any *Error with the same Result matches.
var (
	ErrInternal          = &Error{result: ErrorInternal, msg: "internal error"}
	ErrInvalidValue      = &Error{result: ErrorInvalidValue, msg: "invalid value"}
	ErrMisalignedAddress = &Error{result: ErrorMisalignedAddress, msg: "misaligned address"}
	ErrCuda              = &Error{result: ErrorCuda, msg: "cuda error"}
	ErrMissingSupport    = &Error{result: ErrorMissingSupport, msg: "missing support"}
)

// New returns an Error classified as result. It panics if result is Success.
func New(result Result, msg string) *Error {
	if result == Success {
		panic("ommerr: cannot attach SUCCESS to an error")
	}
	return &Error{result: result, msg: msg}
}

// Newf is New with a formatted message.
func Newf(result Result, format string, args ...any) *Error {
	return New(result, fmt.Sprintf(format, args...))
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Result() Result {
	return e.result
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.result == e.result
}

// ResultOf reports the classification carried by err. Nil is Success and
// errors that do not wrap an *Error are ErrorInternal.
func ResultOf(err error) Result {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.result
	}
	return ErrorInternal
}
