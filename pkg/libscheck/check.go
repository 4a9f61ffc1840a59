// Package libscheck verifies the auxiliary ML/NLP Python libraries by
// importing each one and reporting its version.
package libscheck

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vertti/mlrig/pkg/check"
	"github.com/vertti/mlrig/pkg/cmdrunner"
)

// Library pairs a Python module name with its display name.
type Library struct {
	Module  string
	Display string
}

// DefaultLibraries is the fixed set the install scripts provision.
var DefaultLibraries = []Library{
	{"numpy", "NumPy"},
	{"scipy", "SciPy"},
	{"matplotlib", "Matplotlib"},
	{"pandas", "Pandas"},
	{"sklearn", "Scikit-learn"},
	{"transformers", "Transformers (Hugging Face)"},
	{"datasets", "Datasets (Hugging Face)"},
	{"jupyter", "Jupyter"},
}

const probeTemplate = `import importlib

for name in [%s]:
    try:
        module = importlib.import_module(name)
        print("%%s=%%s" %% (name, getattr(module, "__version__", "unknown")))
    except Exception:
        print("%%s=missing" %% name)
`

// Check imports each library and introspects its version.
type Check struct {
	Interpreter string    // interpreter command (default: python)
	WorkDir     string    // where the probe script is written (default: os.TempDir)
	Libraries   []Library // libraries to verify (default: DefaultLibraries)
	Runner      cmdrunner.Runner
}

// Run executes the libraries check.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: "libs: ml libraries",
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
		workDir = filepath.Join(os.TempDir(), "mlrig_libs")
	}
	libraries := c.Libraries
	if len(libraries) == 0 {
		libraries = DefaultLibraries
	}

	quoted := make([]string, len(libraries))
	for i, lib := range libraries {
		quoted[i] = fmt.Sprintf("%q", lib.Module)
	}
	script := fmt.Sprintf(probeTemplate, strings.Join(quoted, ", "))

	scriptPath := filepath.Join(workDir, "libs_probe.py")
	if err := os.MkdirAll(workDir, 0o750); err != nil {
		return result.Failf("could not create work dir: %v", err)
	}
	if err := os.WriteFile(scriptPath, []byte(script), 0o600); err != nil {
		return result.Failf("could not write probe script: %v", err)
	}

	stdout, stderr, err := runner.Run(interpreter, scriptPath)
	if err != nil {
		result.AddDetailf("probe script failed: %v", err)
		if stderr != "" {
			result.AddDetailf("stderr: %s", strings.TrimSpace(stderr))
		}
		result.Status = check.StatusFail
		result.Err = err
		return result
	}

	versions := parseVersions(stdout)
	var missing []string
	for _, lib := range libraries {
		v, ok := versions[lib.Module]
		switch {
		case !ok:
			missing = append(missing, lib.Display)
			result.AddDetailf("%s: no probe output", lib.Display)
		case v == "missing":
			missing = append(missing, lib.Display)
			result.AddDetailf("%s: not installed", lib.Display)
		default:
			result.AddDetailf("%s: %s", lib.Display, v)
		}
	}

	if len(missing) > 0 {
		return result.Failf("missing libraries: %s", strings.Join(missing, ", "))
	}
	return result.Pass()
}

func parseVersions(out string) map[string]string {
	versions := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		module, v, found := strings.Cut(strings.TrimSpace(line), "=")
		if !found || module == "" {
			continue
		}
		versions[module] = v
	}
	return versions
}
