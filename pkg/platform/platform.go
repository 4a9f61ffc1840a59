// Package platform answers the two prerequisite questions asked before any
// probe or setup phase runs: is this the supported operating system, and is
// the process elevated.
package platform

import "runtime"

// IsWindows reports whether the process runs on Windows, the only supported
// target for the setup pipeline.
func IsWindows() bool {
	return runtime.GOOS == "windows"
}
