package ommerr

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// Family identifies the CUDA API that produced a status code.
type Family uint8

const (
	// FamilyRuntime covers cudaError_t values from the runtime API.
	FamilyRuntime Family = iota
	// FamilyDriver covers CUresult values from the driver API.
	FamilyDriver
)

func (f Family) String() string {
	switch f {
	case FamilyRuntime:
		return "runtime"
	case FamilyDriver:
		return "driver"
	default:
		return fmt.Sprintf("Family(%d)", uint8(f))
	}
}

// ParseFamily accepts "runtime" or "driver" (case-insensitive).
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "runtime", "rt", "cudart":
		return FamilyRuntime, nil
	case "driver", "cu":
		return FamilyDriver, nil
	default:
		return 0, fmt.Errorf("unknown status family %q (expected runtime or driver)", s)
	}
}

// Status is the raw result of a CUDA call. Code 0 is success in both families.
type Status struct {
	Family Family
	Code   int
}

func RuntimeStatus(code int) Status {
	return Status{Family: FamilyRuntime, Code: code}
}

func DriverStatus(code int) Status {
	return Status{Family: FamilyDriver, Code: code}
}

func (s Status) OK() bool {
	return s.Code == 0
}

func (s Status) String() string {
	return s.Family.String() + ":" + strconv.Itoa(s.Code)
}

// Location is a source position reported in diagnostics.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	return l.File + ":" + strconv.Itoa(l.Line)
}

// Caller returns the location of the function skip frames above its caller.
// Caller(0) is the line that called Caller.
func Caller(skip int) Location {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{File: "???"}
	}
	return Location{File: file, Line: line}
}
