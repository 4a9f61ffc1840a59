// Package torchcheck probes PyTorch CUDA support by generating a Python
// probe script, running it under the installed interpreter, and parsing its
// key=value marker output.
package torchcheck

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vertti/mlrig/pkg/check"
	"github.com/vertti/mlrig/pkg/cmdrunner"
)

// probeScript emits one key=value marker per line so the Go side never has to
// guess at PyTorch's human-readable output. The benchmark arm times the fixed
// 1000x1000 matmul ten times on GPU and CPU after a warm-up pass.
const probeScript = `import sys

try:
    import torch
except ImportError as exc:
    print("import_error=%s" % exc)
    sys.exit(0)

print("torch_version=%s" % torch.__version__)
available = torch.cuda.is_available()
print("cuda_available=%s" % ("true" if available else "false"))

if available:
    print("cuda_version=%s" % torch.version.cuda)
    print("device_count=%d" % torch.cuda.device_count())
    for i in range(torch.cuda.device_count()):
        print("device_%d=%s" % (i, torch.cuda.get_device_name(i)))

if available and "benchmark" in sys.argv:
    import time
    x = torch.rand(1000, 1000).cuda()
    y = torch.rand(1000, 1000).cuda()
    torch.matmul(x, y)
    torch.cuda.synchronize()

    start = time.time()
    for _ in range(10):
        torch.matmul(x, y)
    torch.cuda.synchronize()
    gpu = time.time() - start

    x_cpu, y_cpu = x.cpu(), y.cpu()
    start = time.time()
    for _ in range(10):
        torch.matmul(x_cpu, y_cpu)
    cpu = time.time() - start

    print("gpu_seconds=%.6f" % gpu)
    print("cpu_seconds=%.6f" % cpu)
    print("speedup=%.2f" % (cpu / gpu))
`

// Check probes PyTorch and, optionally, GPU-vs-CPU matmul performance.
type Check struct {
	Interpreter string // interpreter command (default: python)
	WorkDir     string // where the probe script is written (default: os.TempDir)
	Benchmark   bool   // also run the matmul timing comparison
	Runner      cmdrunner.Runner
}

// Run executes the PyTorch check.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: "torch: cuda",
	}

	runner := c.Runner
	if runner == nil {
		runner = &cmdrunner.RealRunner{}
	}
	interpreter := c.Interpreter
	if interpreter == "" {
		interpreter = "python"
	}
	workDir := c.WorkDir
	if workDir == "" {
		workDir = filepath.Join(os.TempDir(), "mlrig_torch")
	}

	scriptPath := filepath.Join(workDir, "torch_probe.py")
	if err := os.MkdirAll(workDir, 0o750); err != nil {
		return result.Failf("could not create work dir: %v", err)
	}
	if err := os.WriteFile(scriptPath, []byte(probeScript), 0o600); err != nil {
		return result.Failf("could not write probe script: %v", err)
	}

	args := []string{scriptPath}
	if c.Benchmark {
		args = append(args, "benchmark")
	}

	stdout, stderr, err := runner.Run(interpreter, args...)
	if err != nil {
		result.AddDetailf("probe script failed: %v", err)
		if stderr != "" {
			result.AddDetailf("stderr: %s", strings.TrimSpace(stderr))
		}
		result.Status = check.StatusFail
		result.Err = err
		return result
	}

	markers := parseMarkers(stdout)

	if msg, ok := markers["import_error"]; ok {
		return result.Failf("PyTorch not installed: %s", msg)
	}

	if v, ok := markers["torch_version"]; ok {
		result.AddDetailf("torch: %s", v)
	} else {
		return result.Failf("probe produced no version marker")
	}

	if markers["cuda_available"] != "true" {
		return result.Failf("CUDA not available to PyTorch, check the CUDA and cuDNN installation")
	}
	result.AddDetailf("cuda version: %s", markers["cuda_version"])
	result.AddDetailf("devices: %s", markers["device_count"])
	if name, ok := markers["device_0"]; ok {
		result.AddDetailf("device 0: %s", name)
	}

	if c.Benchmark {
		c.reportBenchmark(markers, &result)
	}

	return result.Pass()
}

func (c *Check) reportBenchmark(markers map[string]string, result *check.Result) {
	gpu, cpu := markers["gpu_seconds"], markers["cpu_seconds"]
	if gpu == "" || cpu == "" {
		result.Warnf("benchmark markers missing from probe output")
		return
	}
	result.AddDetailf("gpu time: %ss", gpu)
	result.AddDetailf("cpu time: %ss", cpu)

	speedup, err := strconv.ParseFloat(markers["speedup"], 64)
	if err != nil {
		result.Warnf("could not parse speedup marker: %v", err)
		return
	}
	if speedup > 1 {
		result.AddDetailf("speedup: %.2fx over CPU", speedup)
	} else {
		result.Warnf("CPU outpaced the GPU (%.2fx), transfer overhead dominates small workloads", speedup)
	}
}

// parseMarkers collects key=value lines from probe output, ignoring anything
// that does not look like a marker.
func parseMarkers(out string) map[string]string {
	markers := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), "=")
		if !found || key == "" || strings.ContainsAny(key, " \t") {
			continue
		}
		markers[key] = value
	}
	return markers
}
