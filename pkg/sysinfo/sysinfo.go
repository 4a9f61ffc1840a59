// Package sysinfo collects the diagnostic system summary printed before the
// verification checks: host platform, processor, and GPU driver state.
package sysinfo

import (
	"fmt"
	"strings"

	"github.com/klauspost/cpuid/v2"
	"github.com/shirou/gopsutil/v3/host"

	"github.com/vertti/mlrig/pkg/cmdrunner"
	"github.com/vertti/mlrig/pkg/output"
)

// Info is the diagnostic snapshot of the host.
type Info struct {
	OS          string
	Platform    string
	Arch        string
	Processor   string
	DriverLines []string // nvidia-smi lines of interest, empty when unavailable
}

// swapped out in tests
var hostInfo = host.Info

// Collect gathers the host summary. Individual probe failures degrade to
// "unknown" fields rather than errors: the summary is diagnostic context, not
// a check.
func Collect(runner cmdrunner.Runner) Info {
	if runner == nil {
		runner = &cmdrunner.RealRunner{}
	}

	info := Info{
		OS:        "unknown",
		Platform:  "unknown",
		Arch:      "unknown",
		Processor: cpuid.CPU.BrandName,
	}

	if h, err := hostInfo(); err == nil {
		info.OS = h.OS
		info.Platform = fmt.Sprintf("%s %s", h.Platform, h.PlatformVersion)
		info.Arch = h.KernelArch
	}

	if stdout, _, err := runner.Run("nvidia-smi"); err == nil {
		info.DriverLines = driverLines(stdout)
	}

	return info
}

// driverLines picks the nvidia-smi lines worth echoing into the summary.
func driverLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(line, "Driver Version"),
			strings.Contains(line, "CUDA Version"),
			strings.Contains(line, "NVIDIA") && strings.Contains(line, "GPU"):
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	return lines
}

// Print writes the summary through the shared output package.
func Print(info Info) {
	output.PrintInfo("os: %s", info.OS)
	output.PrintInfo("platform: %s", info.Platform)
	output.PrintInfo("arch: %s", info.Arch)
	output.PrintInfo("processor: %s", info.Processor)
	if len(info.DriverLines) == 0 {
		output.PrintInfo("gpu: nvidia-smi unavailable")
		return
	}
	for _, line := range info.DriverLines {
		output.PrintInfo("gpu: %s", line)
	}
}
