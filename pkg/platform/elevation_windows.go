//go:build windows

package platform

import "golang.org/x/sys/windows"

// IsElevated reports whether the current process token carries Administrator
// elevation.
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
