// Package cmdrunner abstracts external process execution for the probes and
// the setup pipeline. Every check that shells out goes through a Runner so
// tests can substitute canned output.
package cmdrunner

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner abstracts command execution for testability.
type Runner interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) (stdout, stderr string, err error)
	RunContext(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// RealRunner implements Runner using actual OS commands.
type RealRunner struct{}

// LookPath searches for an executable in PATH.
func (r *RealRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its captured output.
func (r *RealRunner) Run(name string, args ...string) (stdout, stderr string, err error) {
	return r.RunContext(context.Background(), name, args...)
}

// RunContext executes a command under a context and returns its captured output.
func (r *RealRunner) RunContext(ctx context.Context, name string, args ...string) (stdout, stderr string, err error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.String(), errBuf.String(), err
}

// MockRunner is a test double for Runner.
type MockRunner struct {
	LookPathFunc func(file string) (string, error)
	RunFunc      func(name string, args ...string) (string, string, error)
}

// LookPath calls the mock function.
func (m *MockRunner) LookPath(file string) (string, error) {
	return m.LookPathFunc(file)
}

// Run calls the mock function.
func (m *MockRunner) Run(name string, args ...string) (stdout, stderr string, err error) {
	return m.RunFunc(name, args...)
}

// RunContext calls the mock function, ignoring the context.
func (m *MockRunner) RunContext(_ context.Context, name string, args ...string) (stdout, stderr string, err error) {
	return m.RunFunc(name, args...)
}
