package check

// Summary accumulates results across a run and computes the aggregate outcome.
type Summary struct {
	Results []Result
}

// Add records a result.
func (s *Summary) Add(r Result) {
	s.Results = append(s.Results, r)
}

// AllOK reports whether every recorded check passed. The aggregate is the
// logical AND over the selected checks; warnings do not fail the run.
func (s *Summary) AllOK() bool {
	for _, r := range s.Results {
		if !r.OK() {
			return false
		}
	}
	return true
}
