// Package drivercheck probes the NVIDIA driver through nvidia-smi.
package drivercheck

import (
	"strings"

	"github.com/vertti/mlrig/pkg/check"
	"github.com/vertti/mlrig/pkg/cmdrunner"
)

// Tool is the driver status utility this check shells out to.
const Tool = "nvidia-smi"

// gpuModelTokens identify a GPU model line in nvidia-smi output.
var gpuModelTokens = []string{"RTX", "GTX", "Quadro", "Tesla"}

// Check queries the NVIDIA driver status tool and extracts the driver
// version, the driver-supported CUDA version, and the GPU model.
type Check struct {
	Runner cmdrunner.Runner // injected for testing
}

// Run executes the driver check.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: "driver: " + Tool,
	}

	runner := c.Runner
	if runner == nil {
		runner = &cmdrunner.RealRunner{}
	}

	stdout, stderr, err := runner.Run(Tool)
	if err != nil {
		result.AddDetailf("could not run %s, the NVIDIA driver may not be installed", Tool)
		if stderr != "" {
			result.AddDetailf("stderr: %s", strings.TrimSpace(stderr))
		}
		return result.Failf("%s: %v", Tool, err)
	}

	info := parseDriverInfo(stdout)

	if info.DriverVersion != "" {
		result.AddDetailf("driver version: %s", info.DriverVersion)
	} else {
		result.AddDetail("driver version: not found")
	}
	if info.CUDAVersion != "" {
		result.AddDetailf("cuda version (driver): %s", info.CUDAVersion)
	} else {
		result.AddDetail("cuda version (driver): not found")
	}
	if info.GPUName != "" {
		result.AddDetailf("gpu: %s", info.GPUName)
	} else {
		result.AddDetail("gpu: not found")
	}

	return result.Pass()
}

// Info holds the tokens extracted from nvidia-smi output.
type Info struct {
	DriverVersion string
	CUDAVersion   string
	GPUName       string
}

// parseDriverInfo scans nvidia-smi output for the fixed labels. Absent labels
// leave the corresponding field empty.
func parseDriverInfo(out string) Info {
	var info Info
	for _, line := range strings.Split(out, "\n") {
		if v := fieldAfterLabel(line, "Driver Version"); v != "" && info.DriverVersion == "" {
			info.DriverVersion = v
		}
		if v := fieldAfterLabel(line, "CUDA Version"); v != "" && info.CUDAVersion == "" {
			info.CUDAVersion = v
		}
		if info.GPUName == "" && strings.Contains(line, "NVIDIA") {
			for _, token := range gpuModelTokens {
				if strings.Contains(line, token) {
					info.GPUName = strings.Trim(strings.TrimSpace(line), "| ")
					break
				}
			}
		}
	}
	return info
}

// fieldAfterLabel returns the first whitespace-delimited field following
// "label:" in the line, or "" when the label is absent.
func fieldAfterLabel(line, label string) string {
	idx := strings.Index(line, label)
	if idx < 0 {
		return ""
	}
	rest := line[idx+len(label):]
	rest = strings.TrimLeft(rest, ": \t")
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
