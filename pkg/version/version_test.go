package version

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"full version", "Python 3.10.11", "3.10.11"},
		{"two components", "release 12.4, V12.4.131", "12.4.0"},
		{"major only", "551", "551.0.0"},
		{"v prefix", "v1.2.3", "1.2.3"},
		{"embedded in banner", "Cuda compilation tools, release 12.4, V12.4.131", "12.4.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Extract(tt.input)
			if err != nil {
				t.Fatalf("Extract(%q) error = %v", tt.input, err)
			}
			if v.String() != tt.want {
				t.Errorf("Extract(%q) = %s, want %s", tt.input, v, tt.want)
			}
		})
	}
}

func TestExtract_NoVersion(t *testing.T) {
	_, err := Extract("no numbers here")
	if err == nil {
		t.Error("Extract() error = nil, want error for input without version")
	}
}

func TestSatisfies(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		constraint string
		want       bool
	}{
		{"python 3.10 matches tilde", "Python 3.10.11", "~3.10", true},
		{"python 3.12 misses tilde", "Python 3.12.1", "~3.10", false},
		{"cuda 12.4 matches", "release 12.4", "~12.4", true},
		{"cuda 11.8 misses", "release 11.8", "~12.4", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Extract(tt.input)
			if err != nil {
				t.Fatalf("Extract(%q) error = %v", tt.input, err)
			}
			got, err := Satisfies(v, tt.constraint)
			if err != nil {
				t.Fatalf("Satisfies error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Satisfies(%s, %q) = %v, want %v", v, tt.constraint, got, tt.want)
			}
		})
	}
}

func TestSatisfies_InvalidConstraint(t *testing.T) {
	v, _ := Extract("3.10.11")
	_, err := Satisfies(v, "not a constraint !!")
	if err == nil {
		t.Error("Satisfies() error = nil, want error for invalid constraint")
	}
}
