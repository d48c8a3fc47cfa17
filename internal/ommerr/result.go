package ommerr

import "fmt"

// Result classifies the outcome of a baking operation.
type Result int

const (
	Success Result = iota
	ErrorInternal
	ErrorInvalidValue
	ErrorMisalignedAddress
	ErrorCuda
	ErrorMissingSupport
)

var resultNames = [...]string{
	Success:                "SUCCESS",
	ErrorInternal:          "ERROR_INTERNAL",
	ErrorInvalidValue:      "ERROR_INVALID_VALUE",
	ErrorMisalignedAddress: "ERROR_MISALIGNED_ADDRESS",
	ErrorCuda:              "ERROR_CUDA",
	ErrorMissingSupport:    "ERROR_MISSING_SUPPORT",
}

func (r Result) String() string {
	if r >= 0 && int(r) < len(resultNames) {
		return resultNames[r]
	}
	return fmt.Sprintf("Result(%d)", int(r))
}
