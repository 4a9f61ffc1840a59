// Package toolkitcheck verifies the CUDA toolkit installation: the nvcc
// compiler, the toolkit environment variables, and the cuDNN headers.
package toolkitcheck

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/vertti/mlrig/pkg/check"
	"github.com/vertti/mlrig/pkg/cmdrunner"
	"github.com/vertti/mlrig/pkg/version"
)

// Compiler is the CUDA compiler front end.
const Compiler = "nvcc"

// DefaultRecommended is the toolkit version the install scripts target.
const DefaultRecommended = "~12.4"

// cudnnFallbackPaths are probed for the cuDNN header when CUDA_PATH does not
// lead to one.
var cudnnFallbackPaths = []string{
	`C:\Program Files\NVIDIA GPU Computing Toolkit\CUDA\v12.4\include\cudnn.h`,
	`C:\Program Files\NVIDIA\CUDNN\v8.x\include\cudnn.h`,
}

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

// FileSystem abstracts file existence probing for testability.
type FileSystem interface {
	Exists(path string) bool
}

// RealFileSystem uses the real os package.
type RealFileSystem struct{}

// Exists reports whether path names an existing regular file.
func (r *RealFileSystem) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Check verifies the CUDA toolkit installation.
type Check struct {
	Recommended string // recommended version constraint (default: ~12.4)
	Runner      cmdrunner.Runner
	Env         EnvGetter
	FS          FileSystem
}

// Run executes the toolkit check.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: "toolkit: cuda",
	}

	runner := c.Runner
	if runner == nil {
		runner = &cmdrunner.RealRunner{}
	}
	env := c.Env
	if env == nil {
		env = &RealEnvGetter{}
	}
	fs := c.FS
	if fs == nil {
		fs = &RealFileSystem{}
	}

	path, err := runner.LookPath(Compiler)
	if err != nil {
		return result.Failf("%s not found in PATH: %v", Compiler, err)
	}
	result.AddDetailf("path: %s", path)

	stdout, stderr, err := runner.Run(Compiler, "--version")
	if err != nil {
		result.AddDetailf("%s --version failed: %v", Compiler, err)
		if stderr != "" {
			result.AddDetailf("stderr: %s", strings.TrimSpace(stderr))
		}
		result.Status = check.StatusFail
		result.Err = err
		return result
	}

	c.checkReleaseVersion(stdout, &result)
	c.checkEnvironment(env, &result)
	c.checkCudnn(env, fs, &result)

	return result.Pass()
}

// checkReleaseVersion finds the release line of the nvcc banner. The line is
// located by its "release" token rather than a fixed position, since the
// banner layout differs between toolkit builds.
func (c *Check) checkReleaseVersion(banner string, result *check.Result) {
	releaseLine := ""
	for _, line := range strings.Split(banner, "\n") {
		if strings.Contains(strings.ToLower(line), "release") {
			releaseLine = strings.TrimSpace(line)
			break
		}
	}
	if releaseLine == "" {
		result.Warnf("release line not found in %s banner", Compiler)
		return
	}

	result.AddDetailf("version: %s", releaseLine)

	v, err := version.Extract(releaseLine[strings.Index(strings.ToLower(releaseLine), "release"):])
	if err != nil {
		result.Warnf("could not parse toolkit version: %v", err)
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
		result.Warnf("toolkit version %s does not match recommended %s", v, constraint)
	}
}

func (c *Check) checkEnvironment(env EnvGetter, result *check.Result) {
	if home, ok := env.LookupEnv("CUDA_PATH"); ok && home != "" {
		result.AddDetailf("CUDA_PATH: %s", home)
	} else {
		result.Warnf("CUDA_PATH environment variable not set")
	}

	pathList, _ := env.LookupEnv("PATH")
	for _, entry := range strings.Split(pathList, string(os.PathListSeparator)) {
		if strings.Contains(strings.ToLower(entry), "cuda") {
			result.AddDetailf("PATH entry: %s", entry)
			return
		}
	}
	result.Warnf("no CUDA entry found in PATH")
}

func (c *Check) checkCudnn(env EnvGetter, fs FileSystem, result *check.Result) {
	candidates := make([]string, 0, len(cudnnFallbackPaths)+1)
	if home, ok := env.LookupEnv("CUDA_PATH"); ok && home != "" {
		candidates = append(candidates, filepath.Join(home, "include", "cudnn.h"))
	}
	candidates = append(candidates, cudnnFallbackPaths...)

	for _, p := range candidates {
		if fs.Exists(p) {
			result.AddDetailf("cudnn: %s", p)
			return
		}
	}
	result.Warnf("cudnn.h not found, install cuDNN manually")
}
