// Package vscheck verifies the Visual Studio toolchain: the 2022 install
// roots, the MSVC compiler, and the required workloads reported by vswhere.
package vscheck

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/vertti/mlrig/pkg/check"
	"github.com/vertti/mlrig/pkg/cmdrunner"
)

// installRoots are the fixed Visual Studio 2022 Community locations.
var installRoots = []string{
	`C:\Program Files\Microsoft Visual Studio\2022\Community`,
	`C:\Program Files (x86)\Microsoft Visual Studio\2022\Community`,
}

// VswherePath is the fixed location of the workload-discovery helper shipped
// with the Visual Studio installer.
const VswherePath = `C:\Program Files (x86)\Microsoft Visual Studio\Installer\vswhere.exe`

// workloads that the CUDA build environment needs.
var workloads = []struct {
	id   string
	name string
}{
	{"Microsoft.VisualStudio.Workload.NativeDesktop", "Desktop development with C++"},
	{"Microsoft.VisualStudio.Workload.Python", "Python development"},
}

// FileSystem abstracts filesystem probing for testability.
type FileSystem interface {
	Exists(path string) bool
	Glob(pattern string) ([]string, error)
}

// RealFileSystem uses the real os and filepath packages.
type RealFileSystem struct{}

// Exists reports whether path exists.
func (r *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Glob expands a filesystem pattern.
func (r *RealFileSystem) Glob(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

// Check verifies the Visual Studio installation.
type Check struct {
	Runner cmdrunner.Runner
	FS     FileSystem
}

// Run executes the Visual Studio check.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: "toolchain: visual studio 2022",
	}

	runner := c.Runner
	if runner == nil {
		runner = &cmdrunner.RealRunner{}
	}
	fs := c.FS
	if fs == nil {
		fs = &RealFileSystem{}
	}

	root := ""
	for _, r := range installRoots {
		if fs.Exists(r) {
			root = r
			break
		}
	}
	if root == "" {
		return result.Failf("Visual Studio 2022 Community not found under the known install roots")
	}
	result.AddDetailf("path: %s", root)

	clPattern := filepath.Join(root, "VC", "Tools", "MSVC", "*", "bin", "Hostx64", "x64", "cl.exe")
	matches, err := fs.Glob(clPattern)
	if err != nil || len(matches) == 0 {
		return result.Failf("C/C++ compiler (cl.exe) not found under %s", root)
	}
	result.AddDetailf("cl.exe: %s", matches[0])

	c.checkWorkloads(runner, fs, &result)

	return result.Pass()
}

// checkWorkloads asks vswhere for each required workload. vswhere emits a
// JSON array of matching installations; an empty array means the workload is
// not installed.
func (c *Check) checkWorkloads(runner cmdrunner.Runner, fs FileSystem, result *check.Result) {
	if !fs.Exists(VswherePath) {
		result.Warnf("vswhere.exe not found, workloads not verified")
		return
	}

	for _, w := range workloads {
		stdout, _, err := runner.Run(VswherePath, "-products", "*", "-requires", w.id, "-format", "json", "-utf8")
		if err != nil {
			result.Warnf("vswhere query for %s failed: %v", w.name, err)
			continue
		}

		installs := gjson.Parse(strings.TrimSpace(stdout))
		if !installs.IsArray() || len(installs.Array()) == 0 {
			result.Warnf("workload %q not installed", w.name)
			continue
		}
		result.AddDetailf("workload: %s", w.name)
	}
}
