package ommerr

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"
)

type fakeRuntime struct {
	strings   map[Status]string
	syncState Status
	syncCalls int
}

func (r *fakeRuntime) ErrorString(st Status) (string, bool) {
	msg, ok := r.strings[st]
	return msg, ok
}

func (r *fakeRuntime) DeviceSynchronize() Status {
	r.syncCalls++
	return r.syncState
}

type terminateRecorder struct {
	calls int
}

func (r *terminateRecorder) terminate() {
	r.calls++
}

func newTestChecker(rt Runtime, debugSync bool) (*Checker, *bytes.Buffer, *terminateRecorder) {
	var stderr bytes.Buffer
	rec := &terminateRecorder{}
	c := NewChecker(rt,
		WithDebugSync(debugSync),
		WithErrorStream(&stderr),
		WithTerminate(rec.terminate),
	)
	return c, &stderr, rec
}

func TestCheckSuccessIsNoop(t *testing.T) {
	t.Parallel()

	for _, st := range []Status{RuntimeStatus(0), DriverStatus(0)} {
		c, stderr, rec := newTestChecker(StaticRuntime{}, false)
		if err := c.Check(st, "foo()", Location{File: "x.c", Line: 1}); err != nil {
			t.Fatalf("Check(%v): unexpected error %v", st, err)
		}
		c.CheckNoThrow(st, "foo()", Location{File: "x.c", Line: 1})
		if stderr.Len() != 0 {
			t.Fatalf("CheckNoThrow(%v) wrote output: %q", st, stderr.String())
		}
		if rec.calls != 0 {
			t.Fatalf("CheckNoThrow(%v) terminated", st)
		}
	}
}

func TestCheckFailureMessage(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestChecker(StaticRuntime{}, false)
	err := c.Check(RuntimeStatus(2), "bar()", Location{File: "x.c", Line: 42})
	if err == nil {
		t.Fatal("expected error")
	}
	want := "CUDA call (bar()) failed with error: 'out of memory' (x.c:42)"
	if err.Error() != want {
		t.Fatalf("unexpected message:\n got: %s\nwant: %s", err.Error(), want)
	}
	for _, sub := range []string{"bar()", "x.c", "42"} {
		if !strings.Contains(err.Error(), sub) {
			t.Fatalf("message %q missing %q", err.Error(), sub)
		}
	}
}

func TestCheckFailureIsClassifiedCuda(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestChecker(StaticRuntime{}, false)
	statuses := []Status{
		RuntimeStatus(1),
		RuntimeStatus(700),
		DriverStatus(2),
		DriverStatus(12345),
	}
	for _, st := range statuses {
		err := c.Check(st, "launch()", Location{File: "bake.go", Line: 7})
		if !errors.Is(err, ErrCuda) {
			t.Fatalf("Check(%v): expected ErrCuda, got %v", st, err)
		}
		if got := ResultOf(err); got != ErrorCuda {
			t.Fatalf("Check(%v): result %v, want %v", st, got, ErrorCuda)
		}
	}
}

func TestCheckNoThrowFailureWritesAndTerminates(t *testing.T) {
	t.Parallel()

	c, stderr, rec := newTestChecker(StaticRuntime{}, false)
	c.CheckNoThrow(DriverStatus(201), "cuMemFree(ptr)", Location{File: "buffer.cu", Line: 88})

	if rec.calls != 1 {
		t.Fatalf("expected one terminate, got %d", rec.calls)
	}
	out := stderr.String()
	for _, sub := range []string{"cuMemFree(ptr)", "buffer.cu:88", "invalid device context"} {
		if !strings.Contains(out, sub) {
			t.Fatalf("diagnostic %q missing %q", out, sub)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("diagnostic should end with a newline: %q", out)
	}
}

func TestDecodeUnknownCodeFallsBack(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rt   Runtime
		st   Status
	}{
		{"unmapped runtime code", StaticRuntime{}, RuntimeStatus(4242)},
		{"unmapped driver code", StaticRuntime{}, DriverStatus(-3)},
		{"nil runtime", nil, RuntimeStatus(2)},
		{"empty string", &fakeRuntime{strings: map[Status]string{RuntimeStatus(5): ""}}, RuntimeStatus(5)},
	}
	for _, tc := range tests {
		got := Decode(tc.rt, tc.st)
		if got == "" {
			t.Fatalf("%s: empty decode", tc.name)
		}
		if !strings.Contains(got, "unknown error") {
			t.Fatalf("%s: expected placeholder, got %q", tc.name, got)
		}
	}
}

func TestCallCapturesCallerLocation(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestChecker(StaticRuntime{}, false)
	err := c.Call(RuntimeStatus(1), "cudaMemset(ptr, 0, n)")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "check_test.go:") {
		t.Fatalf("expected caller file in message: %v", err)
	}
}

func TestCallDebugSync(t *testing.T) {
	t.Parallel()

	t.Run("disabled skips synchronize", func(t *testing.T) {
		rt := &fakeRuntime{syncState: RuntimeStatus(700)}
		c, _, _ := newTestChecker(rt, false)
		if err := c.Call(RuntimeStatus(0), "kernel<<<1, 1>>>()"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rt.syncCalls != 0 {
			t.Fatalf("expected no synchronize, got %d", rt.syncCalls)
		}
	})

	t.Run("enabled reports asynchronous failure at the call", func(t *testing.T) {
		rt := &fakeRuntime{
			strings:   map[Status]string{RuntimeStatus(700): "an illegal memory access was encountered"},
			syncState: RuntimeStatus(700),
		}
		c, _, _ := newTestChecker(rt, true)
		err := c.Call(RuntimeStatus(0), "kernel<<<1, 1>>>()")
		if !errors.Is(err, ErrCuda) {
			t.Fatalf("expected ErrCuda, got %v", err)
		}
		if !strings.Contains(err.Error(), "kernel<<<1, 1>>>()") || !strings.Contains(err.Error(), "illegal memory access") {
			t.Fatalf("unexpected message: %v", err)
		}
		if rt.syncCalls != 1 {
			t.Fatalf("expected one synchronize, got %d", rt.syncCalls)
		}
	})

	t.Run("enabled does not synchronize after a failed call", func(t *testing.T) {
		rt := &fakeRuntime{}
		c, _, _ := newTestChecker(rt, true)
		if err := c.Call(RuntimeStatus(2), "cudaMalloc(&p, n)"); err == nil {
			t.Fatal("expected error")
		}
		if rt.syncCalls != 0 {
			t.Fatalf("expected no synchronize, got %d", rt.syncCalls)
		}
	})
}

func TestCallNoThrow(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		rt := &fakeRuntime{}
		c, stderr, rec := newTestChecker(rt, true)
		c.CallNoThrow(RuntimeStatus(0), "cudaFree(p)")
		if rec.calls != 0 || stderr.Len() != 0 {
			t.Fatalf("unexpected termination: calls=%d out=%q", rec.calls, stderr.String())
		}
		if rt.syncCalls != 1 {
			t.Fatalf("expected one synchronize, got %d", rt.syncCalls)
		}
	})

	t.Run("failed synchronize terminates", func(t *testing.T) {
		rt := &fakeRuntime{syncState: RuntimeStatus(719)}
		c, stderr, rec := newTestChecker(rt, true)
		c.CallNoThrow(RuntimeStatus(0), "cudaFree(p)")
		if rec.calls != 1 {
			t.Fatalf("expected terminate, got %d calls", rec.calls)
		}
		if !strings.Contains(stderr.String(), "cudaFree(p)") {
			t.Fatalf("diagnostic missing expression: %q", stderr.String())
		}
	})

	t.Run("failed call terminates once", func(t *testing.T) {
		rt := &fakeRuntime{}
		c, stderr, rec := newTestChecker(rt, true)
		c.CallNoThrow(RuntimeStatus(400), "cudaStreamDestroy(s)")
		if rec.calls != 1 {
			t.Fatalf("expected terminate, got %d calls", rec.calls)
		}
		if rt.syncCalls != 0 {
			t.Fatalf("expected no synchronize, got %d", rt.syncCalls)
		}
		if !strings.Contains(stderr.String(), "check_test.go:") {
			t.Fatalf("diagnostic missing caller location: %q", stderr.String())
		}
	})
}

const terminateHelperEnv = "OMMERR_TERMINATE_HELPER"

func TestCheckNoThrowTerminatesProcess(t *testing.T) {
	if os.Getenv(terminateHelperEnv) == "1" {
		NewChecker(StaticRuntime{}).CheckNoThrow(RuntimeStatus(2), "cudaMalloc(&ptr, n)", Location{File: "x.c", Line: 42})
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestCheckNoThrowTerminatesProcess$")
	cmd.Env = append(os.Environ(), terminateHelperEnv+"=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected abnormal exit, got %v (stderr=%q)", err, stderr.String())
	}
	if code := exitErr.ExitCode(); code != abortExitCode {
		t.Fatalf("exit code: got %d want %d (stderr=%q)", code, abortExitCode, stderr.String())
	}
	want := "CUDA call (cudaMalloc(&ptr, n)) failed with error: 'out of memory' (x.c:42)\n"
	if out := stderr.String(); !strings.HasSuffix(out, want) {
		t.Fatalf("diagnostic must be the last stderr output:\n got: %q\nwant suffix: %q", out, want)
	}
}
