package setup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vertti/mlrig/pkg/cmdrunner"
	"github.com/vertti/mlrig/pkg/platform"
)

// Rebooter abstracts the reboot side effect for testability.
type Rebooter interface {
	Reboot() error
}

// SystemRebooter schedules a reboot through the OS shutdown command with a
// short grace period.
type SystemRebooter struct {
	Runner cmdrunner.Runner
}

// Reboot schedules the restart.
func (s *SystemRebooter) Reboot() error {
	if !platform.IsWindows() {
		return errors.New("reboot is only supported on Windows")
	}

	runner := s.Runner
	if runner == nil {
		runner = &cmdrunner.RealRunner{}
	}

	_, stderr, err := runner.Run("shutdown", "/r", "/t", "10")
	if err != nil {
		if stderr != "" {
			return fmt.Errorf("shutdown: %v: %s", err, strings.TrimSpace(stderr))
		}
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// MockRebooter is a test double for Rebooter.
type MockRebooter struct {
	Called bool
	Err    error
}

// Reboot records the call.
func (m *MockRebooter) Reboot() error {
	m.Called = true
	return m.Err
}
