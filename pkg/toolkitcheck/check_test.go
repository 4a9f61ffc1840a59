package toolkitcheck

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/vertti/mlrig/pkg/check"
	"github.com/vertti/mlrig/pkg/cmdrunner"
)

const nvccBanner = `nvcc: NVIDIA (R) Cuda compiler driver
Copyright (c) 2005-2024 NVIDIA Corporation
Built on Thu_Mar_28_02:30:10_Pacific_Daylight_Time_2024
Cuda compilation tools, release 12.4, V12.4.131
Build cuda_12.4.r12.4/compiler.34097967_0`

type mockEnv map[string]string

func (m mockEnv) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

type mockFS map[string]bool

func (m mockFS) Exists(path string) bool { return m[path] }

func happyRunner() *cmdrunner.MockRunner {
	return &cmdrunner.MockRunner{
		LookPathFunc: func(file string) (string, error) {
			return `C:\CUDA\bin\nvcc.exe`, nil
		},
		RunFunc: func(name string, args ...string) (string, string, error) {
			return nvccBanner, "", nil
		},
	}
}

func TestToolkitCheck_NvccMissing(t *testing.T) {
	runner := &cmdrunner.MockRunner{
		LookPathFunc: func(file string) (string, error) {
			return "", errors.New("executable file not found in %PATH%")
		},
	}

	result := (&Check{Runner: runner, Env: mockEnv{}, FS: mockFS{}}).Run()

	if result.Status != check.StatusFail {
		t.Errorf("Status = %v, want %v", result.Status, check.StatusFail)
	}
	if !strings.Contains(strings.Join(result.Details, "\n"), "nvcc") {
		t.Errorf("Details = %v, want compiler name mentioned", result.Details)
	}
}

func TestToolkitCheck_AllPresent(t *testing.T) {
	cudaPath := `C:\Program Files\NVIDIA GPU Computing Toolkit\CUDA\v12.4`
	env := mockEnv{
		"CUDA_PATH": cudaPath,
		"PATH":      strings.Join([]string{`C:\Windows`, cudaPath + `\bin`}, string(os.PathListSeparator)),
	}
	fs := mockFS{cudaPath + `\include\cudnn.h`: true}

	result := (&Check{Runner: happyRunner(), Env: env, FS: fs}).Run()

	if result.Status != check.StatusOK {
		t.Fatalf("Status = %v, want %v (details: %v)", result.Status, check.StatusOK, result.Details)
	}
	joined := strings.Join(result.Details, "\n")
	for _, want := range []string{"release 12.4", "CUDA_PATH:", "PATH entry:", "cudnn:"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Details missing %q:\n%s", want, joined)
		}
	}
}

func TestToolkitCheck_MissingCudnnWarns(t *testing.T) {
	env := mockEnv{
		"CUDA_PATH": `C:\CUDA`,
		"PATH":      `C:\CUDA\bin`,
	}

	result := (&Check{Runner: happyRunner(), Env: env, FS: mockFS{}}).Run()

	if result.Status != check.StatusWarn {
		t.Errorf("Status = %v, want %v", result.Status, check.StatusWarn)
	}
	if !result.OK() {
		t.Error("OK() = false, want true: missing cuDNN is a soft warning")
	}
}

func TestToolkitCheck_WrongVersionWarns(t *testing.T) {
	runner := happyRunner()
	runner.RunFunc = func(name string, args ...string) (string, string, error) {
		return "Cuda compilation tools, release 11.8, V11.8.89", "", nil
	}
	env := mockEnv{"CUDA_PATH": `C:\CUDA`, "PATH": `C:\CUDA\bin`}
	fs := mockFS{`C:\CUDA\include\cudnn.h`: true}

	result := (&Check{Runner: runner, Env: env, FS: fs}).Run()

	if result.Status != check.StatusWarn {
		t.Errorf("Status = %v, want %v for non-recommended version", result.Status, check.StatusWarn)
	}
	if !strings.Contains(strings.Join(result.Details, "\n"), "recommended") {
		t.Errorf("Details = %v, want recommendation warning", result.Details)
	}
}

func TestToolkitCheck_VersionCommandFails(t *testing.T) {
	runner := happyRunner()
	runner.RunFunc = func(name string, args ...string) (string, string, error) {
		return "", "nvcc fatal", errors.New("exit 1")
	}

	result := (&Check{Runner: runner, Env: mockEnv{}, FS: mockFS{}}).Run()

	if result.Status != check.StatusFail {
		t.Errorf("Status = %v, want %v", result.Status, check.StatusFail)
	}
	if result.Err == nil {
		t.Error("Err = nil, want underlying error preserved")
	}
}
