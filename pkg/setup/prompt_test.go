package setup

import (
	"strings"
	"testing"
)

func TestStdinPrompter_Confirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"lowercase y", "y\n", true},
		{"uppercase Y", "Y\n", true},
		{"yes word", "yes\n", true},
		{"no", "n\n", false},
		{"empty line", "\n", false},
		{"other text", "maybe\n", false},
		{"eof", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &StdinPrompter{In: strings.NewReader(tt.input)}
			if got := p.Confirm("Reboot now?"); got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStdinPrompter_SequentialAnswers(t *testing.T) {
	p := &StdinPrompter{In: strings.NewReader("y\nn\n")}

	if !p.Confirm("first?") {
		t.Error("first answer = false, want true")
	}
	if p.Confirm("second?") {
		t.Error("second answer = true, want false")
	}
}
