package pythoncheck

import (
	"errors"
	"strings"
	"testing"

	"github.com/vertti/mlrig/pkg/check"
	"github.com/vertti/mlrig/pkg/cmdrunner"
)

type mockEnv map[string]string

func (m mockEnv) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func TestPythonCheck_AllPresent(t *testing.T) {
	runner := &cmdrunner.MockRunner{
		RunFunc: func(name string, args ...string) (string, string, error) {
			switch name {
			case "python":
				return "Python 3.10.11", "", nil
			case "pip":
				return "pip 23.0.1 from site-packages (python 3.10)", "", nil
			}
			return "", "", errors.New("unexpected command " + name)
		},
	}
	env := mockEnv{"PATH": `C:\Python310;C:\Windows`}

	result := (&Check{Runner: runner, Env: env}).Run()

	if result.Status != check.StatusOK {
		t.Fatalf("Status = %v, want %v (details: %v)", result.Status, check.StatusOK, result.Details)
	}
	joined := strings.Join(result.Details, "\n")
	for _, want := range []string{"Python 3.10.11", "pip 23.0.1", "PATH entry:"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Details missing %q:\n%s", want, joined)
		}
	}
}

func TestPythonCheck_InterpreterMissing(t *testing.T) {
	runner := &cmdrunner.MockRunner{
		RunFunc: func(name string, args ...string) (string, string, error) {
			return "", "", errors.New("executable file not found")
		},
	}

	result := (&Check{Runner: runner, Env: mockEnv{}}).Run()

	if result.Status != check.StatusFail {
		t.Errorf("Status = %v, want %v", result.Status, check.StatusFail)
	}
}

func TestPythonCheck_PipMissing(t *testing.T) {
	runner := &cmdrunner.MockRunner{
		RunFunc: func(name string, args ...string) (string, string, error) {
			if name == "python" {
				return "Python 3.10.11", "", nil
			}
			return "", "", errors.New("executable file not found")
		},
	}

	result := (&Check{Runner: runner, Env: mockEnv{"PATH": `C:\Python310`}}).Run()

	if result.Status != check.StatusFail {
		t.Errorf("Status = %v, want %v when pip is absent", result.Status, check.StatusFail)
	}
}

func TestPythonCheck_VersionOnStderr(t *testing.T) {
	runner := &cmdrunner.MockRunner{
		RunFunc: func(name string, args ...string) (string, string, error) {
			if name == "python" {
				return "", "Python 3.10.6", nil
			}
			return "pip 23.0.1", "", nil
		},
	}

	result := (&Check{Runner: runner, Env: mockEnv{"PATH": `C:\Python310`}}).Run()

	if result.Status != check.StatusOK {
		t.Errorf("Status = %v, want %v", result.Status, check.StatusOK)
	}
	if !strings.Contains(strings.Join(result.Details, "\n"), "Python 3.10.6") {
		t.Errorf("Details = %v, want stderr banner used", result.Details)
	}
}

func TestPythonCheck_NonRecommendedVersionWarns(t *testing.T) {
	runner := &cmdrunner.MockRunner{
		RunFunc: func(name string, args ...string) (string, string, error) {
			if name == "python" {
				return "Python 3.12.2", "", nil
			}
			return "pip 24.0", "", nil
		},
	}

	result := (&Check{Runner: runner, Env: mockEnv{"PATH": `C:\Python312`}}).Run()

	if result.Status != check.StatusWarn {
		t.Errorf("Status = %v, want %v for non-recommended version", result.Status, check.StatusWarn)
	}
	if !result.OK() {
		t.Error("OK() = false, want true: version mismatch is advisory")
	}
}
