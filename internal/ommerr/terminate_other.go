//go:build !linux

package ommerr

import "os"

// Terminate exits the process. Deferred functions do not run.
func Terminate() {
	os.Exit(abortExitCode)
}
