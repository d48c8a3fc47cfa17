package ommerr

import (
	"fmt"
	"io"
	"os"

	"github.com/samcharles93/ommbake/internal/logger"
)

// Runtime is the part of the CUDA API the checker depends on.
type Runtime interface {
	// ErrorString decodes st. ok is false when the runtime has no string for it.
	ErrorString(st Status) (msg string, ok bool)
	// DeviceSynchronize blocks until outstanding device work completes.
	DeviceSynchronize() Status
}

const unknownError = "unknown error"

// Decode turns st into a human-readable string, falling back to a
// placeholder that still names the code.
func Decode(rt Runtime, st Status) string {
	if rt != nil {
		if msg, ok := rt.ErrorString(st); ok && msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("%s (code %d)", unknownError, st.Code)
}

// FormatFailure renders the diagnostic for a failed call.
func FormatFailure(rt Runtime, st Status, expr string, loc Location) string {
	return fmt.Sprintf("CUDA call (%s) failed with error: '%s' (%s)", expr, Decode(rt, st), loc)
}

// Checker converts CUDA statuses into errors, or into process termination on
// cleanup paths where an error cannot be returned.
type Checker struct {
	rt        Runtime
	debugSync bool
	stderr    io.Writer
	terminate func()
	log       logger.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithDebugSync forces a device synchronize after every Call and CallNoThrow.
// The default is DebugBuild.
func WithDebugSync(enabled bool) Option {
	return func(c *Checker) { c.debugSync = enabled }
}

// WithErrorStream sets where CheckNoThrow writes its diagnostic.
func WithErrorStream(w io.Writer) Option {
	return func(c *Checker) { c.stderr = w }
}

// WithTerminate replaces the terminal action. fn is expected not to return.
func WithTerminate(fn func()) Option {
	return func(c *Checker) { c.terminate = fn }
}

// WithLogger routes debug-sync and termination events to log.
func WithLogger(log logger.Logger) Option {
	return func(c *Checker) { c.log = log }
}

// NewChecker returns a Checker decoding through rt, or StaticRuntime when rt is nil.
func NewChecker(rt Runtime, opts ...Option) *Checker {
	if rt == nil {
		rt = StaticRuntime{}
	}
	c := &Checker{
		rt:        rt,
		debugSync: DebugBuild,
		stderr:    os.Stderr,
		terminate: Terminate,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Runtime returns the runtime used for decoding and synchronization.
func (c *Checker) Runtime() Runtime {
	return c.rt
}

// DebugSync reports whether Call and CallNoThrow synchronize the device.
func (c *Checker) DebugSync() bool {
	return c.debugSync
}

// Check returns nil when st is success, otherwise an ErrorCuda *Error whose
// message names expr and loc.
func (c *Checker) Check(st Status, expr string, loc Location) error {
	if st.OK() {
		return nil
	}
	return New(ErrorCuda, FormatFailure(c.rt, st, expr, loc))
}

// CheckNoThrow is Check for cleanup paths: a failure is written to the error
// stream and the process is terminated without unwinding.
func (c *Checker) CheckNoThrow(st Status, expr string, loc Location) {
	if st.OK() {
		return
	}
	c.fail(FormatFailure(c.rt, st, expr, loc))
}

// Call checks st on behalf of the calling line and, with debug sync enabled,
// checks a device synchronize against the same expression.
func (c *Checker) Call(st Status, expr string) error {
	loc := Caller(1)
	if err := c.Check(st, expr, loc); err != nil {
		return err
	}
	return c.sync(expr, loc)
}

// CallNoThrow is the cleanup-path form of Call. A failed synchronize also
// terminates.
func (c *Checker) CallNoThrow(st Status, expr string) {
	loc := Caller(1)
	if !st.OK() {
		c.fail(FormatFailure(c.rt, st, expr, loc))
		return
	}
	if err := c.sync(expr, loc); err != nil {
		c.fail(err.Error())
	}
}

func (c *Checker) sync(expr string, loc Location) error {
	if !c.debugSync {
		return nil
	}
	c.log.Debug("device synchronize", "expr", expr, "location", loc.String())
	return c.Check(c.rt.DeviceSynchronize(), expr, loc)
}

func (c *Checker) fail(msg string) {
	c.log.Error("terminating after failed cleanup call", "error", msg)
	_, _ = fmt.Fprintln(c.stderr, msg)
	c.terminate()
}
