package setup

import (
	"errors"
	"runtime"
	"testing"

	"github.com/vertti/mlrig/pkg/cmdrunner"
)

func TestSystemRebooter_RequiresWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("behavior under test is the non-Windows refusal")
	}

	called := false
	rebooter := &SystemRebooter{
		Runner: &cmdrunner.MockRunner{
			RunFunc: func(name string, args ...string) (string, string, error) {
				called = true
				return "", "", nil
			},
		},
	}

	if err := rebooter.Reboot(); err == nil {
		t.Error("Reboot() error = nil, want refusal on non-Windows host")
	}
	if called {
		t.Error("shutdown command ran on a non-Windows host")
	}
}

func TestMockRebooter(t *testing.T) {
	m := &MockRebooter{Err: errors.New("boom")}

	if err := m.Reboot(); err == nil {
		t.Error("Reboot() error = nil, want injected error")
	}
	if !m.Called {
		t.Error("Called = false, want true")
	}
}
