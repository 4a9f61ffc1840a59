// Package pythoncheck verifies the Python runtime and its package manager.
package pythoncheck

import (
	"os"
	"strings"

	"github.com/vertti/mlrig/pkg/check"
	"github.com/vertti/mlrig/pkg/cmdrunner"
	"github.com/vertti/mlrig/pkg/version"
)

// DefaultRecommended is the interpreter version the install scripts target.
const DefaultRecommended = "~3.10"

// EnvGetter abstracts environment access for testability.
type EnvGetter interface {
	LookupEnv(key string) (string, bool)
}

// RealEnvGetter reads the actual process environment.
type RealEnvGetter struct{}

// LookupEnv returns the value of the environment variable.
func (r *RealEnvGetter) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Check verifies that Python and pip are installed and on PATH.
type Check struct {
	Interpreter string // interpreter command (default: python)
	Recommended string // recommended version constraint (default: ~3.10)
	Runner      cmdrunner.Runner
	Env         EnvGetter
}

// Run executes the Python check.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: "python: runtime",
	}

	runner := c.Runner
	if runner == nil {
		runner = &cmdrunner.RealRunner{}
	}
	env := c.Env
	if env == nil {
		env = &RealEnvGetter{}
	}
	interpreter := c.Interpreter
	if interpreter == "" {
		interpreter = "python"
	}

	stdout, stderr, err := runner.Run(interpreter, "--version")
	if err != nil {
		return result.Failf("%s not installed or not in PATH: %v", interpreter, err)
	}

	// Older interpreters print the version banner on stderr.
	banner := strings.TrimSpace(stdout)
	if banner == "" {
		banner = strings.TrimSpace(stderr)
	}
	result.AddDetailf("version: %s", banner)

	c.checkRecommended(banner, &result)

	stdout, _, err = runner.Run("pip", "--version")
	if err != nil {
		return result.Failf("pip not installed or not in PATH: %v", err)
	}
	result.AddDetailf("pip: %s", strings.TrimSpace(stdout))

	pathList, _ := env.LookupEnv("PATH")
	entry := ""
	for _, p := range strings.Split(pathList, string(os.PathListSeparator)) {
		if strings.Contains(strings.ToLower(p), "python") {
			entry = p
			break
		}
	}
	if entry != "" {
		result.AddDetailf("PATH entry: %s", entry)
	} else {
		result.Warnf("no Python entry found in PATH")
	}

	return result.Pass()
}

func (c *Check) checkRecommended(banner string, result *check.Result) {
	v, err := version.Extract(banner)
	if err != nil {
		result.Warnf("could not parse interpreter version: %v", err)
		return
	}

	constraint := c.Recommended
	if constraint == "" {
		constraint = DefaultRecommended
	}
	ok, err := version.Satisfies(v, constraint)
	if err != nil {
		result.Warnf("bad recommended-version constraint: %v", err)
		return
	}
	if !ok {
		result.Warnf("interpreter version %s does not match recommended %s", v, constraint)
	}
}
