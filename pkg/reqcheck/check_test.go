package reqcheck

import (
	"errors"
	"strings"
	"testing"

	"github.com/vertti/mlrig/pkg/check"
)

type mockProber struct {
	disk    uint64
	mem     uint64
	diskErr error
	memErr  error
}

func (m *mockProber) FreeDiskSpace(path string) (uint64, error) { return m.disk, m.diskErr }
func (m *mockProber) TotalMemory() (uint64, error)              { return m.mem, m.memErr }

func TestReqCheck_MeetsRequirements(t *testing.T) {
	p := &mockProber{disk: 120 * gb, mem: 32 * gb}

	result := (&Check{Prober: p}).Run()

	if result.Status != check.StatusOK {
		t.Fatalf("Status = %v, want %v (details: %v)", result.Status, check.StatusOK, result.Details)
	}
}

func TestReqCheck_LowDiskFails(t *testing.T) {
	p := &mockProber{disk: 20 * gb, mem: 32 * gb}

	result := (&Check{Prober: p}).Run()

	if result.Status != check.StatusFail {
		t.Errorf("Status = %v, want %v", result.Status, check.StatusFail)
	}
	if !strings.Contains(strings.Join(result.Details, "\n"), "50.0GB") {
		t.Errorf("Details = %v, want required size reported", result.Details)
	}
}

func TestReqCheck_LowMemoryFails(t *testing.T) {
	p := &mockProber{disk: 120 * gb, mem: 4 * gb}

	result := (&Check{Prober: p}).Run()

	if result.Status != check.StatusFail {
		t.Errorf("Status = %v, want %v", result.Status, check.StatusFail)
	}
}

func TestReqCheck_BelowRecommendedMemoryWarns(t *testing.T) {
	p := &mockProber{disk: 120 * gb, mem: 8 * gb}

	result := (&Check{Prober: p}).Run()

	if result.Status != check.StatusWarn {
		t.Errorf("Status = %v, want %v", result.Status, check.StatusWarn)
	}
	if !result.OK() {
		t.Error("OK() = false, want true: 8GB meets the minimum")
	}
}

func TestReqCheck_ProbeError(t *testing.T) {
	p := &mockProber{diskErr: errors.New("statfs failed")}

	result := (&Check{Prober: p}).Run()

	if result.Status != check.StatusFail {
		t.Errorf("Status = %v, want %v", result.Status, check.StatusFail)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{50 * gb, "50.0GB"},
		{512 * mb, "512.0MB"},
		{100, "100B"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.bytes); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
