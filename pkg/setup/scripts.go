package setup

import (
	"fmt"
	"os"
	"os/exec"
)

// ScriptRunner abstracts installer script execution for testability.
type ScriptRunner interface {
	RunScript(path string) error
}

// PowerShellRunner runs installer scripts through the PowerShell host with
// the execution policy bypassed, streaming their output to the operator.
type PowerShellRunner struct{}

// RunScript executes a PowerShell script and returns an error on a missing
// script or a non-zero exit.
func (r *PowerShellRunner) RunScript(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("script not found: %w", err)
	}

	cmd := exec.Command("powershell", "-ExecutionPolicy", "Bypass", "-File", path)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}

// MockScriptRunner is a test double for ScriptRunner.
type MockScriptRunner struct {
	Calls         []string
	RunScriptFunc func(path string) error
}

// RunScript records the call and delegates to the mock function.
func (m *MockScriptRunner) RunScript(path string) error {
	m.Calls = append(m.Calls, path)
	if m.RunScriptFunc == nil {
		return nil
	}
	return m.RunScriptFunc(path)
}
