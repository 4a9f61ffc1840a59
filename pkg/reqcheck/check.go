// Package reqcheck probes the machine against the documented system
// requirements for the install: free disk space and installed memory.
package reqcheck

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/vertti/mlrig/pkg/check"
)

const (
	_         = iota
	kb uint64 = 1 << (10 * iota)
	mb
	gb
)

// Documented install requirements.
const (
	MinDisk        = 50 * gb
	MinMemory      = 8 * gb
	RecommendedMem = 16 * gb
)

// ResourceProber abstracts resource probing for testability.
type ResourceProber interface {
	FreeDiskSpace(path string) (uint64, error)
	TotalMemory() (uint64, error)
}

// RealResourceProber reads actual system state through gopsutil.
type RealResourceProber struct{}

// FreeDiskSpace returns free disk space in bytes at the given path.
func (r *RealResourceProber) FreeDiskSpace(path string) (uint64, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, err
	}
	return usage.Free, nil
}

// TotalMemory returns installed memory in bytes.
func (r *RealResourceProber) TotalMemory() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Total, nil
}

// Check verifies disk and memory against the install requirements.
type Check struct {
	Path   string // path for the disk probe (default: ".")
	Prober ResourceProber
}

// Run executes the requirements check.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: "requirements: disk and memory",
	}

	prober := c.Prober
	if prober == nil {
		prober = &RealResourceProber{}
	}
	path := c.Path
	if path == "" {
		path = "."
	}

	free, err := prober.FreeDiskSpace(path)
	if err != nil {
		return result.Failf("could not probe disk space: %v", err)
	}
	result.AddDetailf("disk free: %s (path: %s)", FormatSize(free), path)
	if free < MinDisk {
		return result.Failf("free disk %s below required %s", FormatSize(free), FormatSize(MinDisk))
	}

	total, err := prober.TotalMemory()
	if err != nil {
		return result.Failf("could not probe memory: %v", err)
	}
	result.AddDetailf("memory: %s", FormatSize(total))
	if total < MinMemory {
		return result.Failf("memory %s below required %s", FormatSize(total), FormatSize(MinMemory))
	}
	if total < RecommendedMem {
		result.Warnf("memory %s below recommended %s", FormatSize(total), FormatSize(RecommendedMem))
	}

	return result.Pass()
}

// FormatSize formats bytes into a human-readable string.
func FormatSize(bytes uint64) string {
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1fGB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.1fMB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.1fKB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}
