package check

// Status represents the outcome of a check.
type Status string

const (
	StatusOK   Status = "OK"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Result holds the outcome of a single check.
type Result struct {
	Name    string   // e.g., "driver: nvidia-smi", "python: runtime"
	Status  Status   // OK, WARN, or FAIL
	Details []string // human-readable details
	Err     error    // underlying error for failures
}

// OK returns true if the check passed. A warning still counts as passing:
// warnings flag recommended-but-missing pieces (cuDNN headers, non-recommended
// versions) that do not break the environment.
func (r Result) OK() bool {
	return r.Status != StatusFail
}
