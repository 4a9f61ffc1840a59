package check

import "fmt"

// Fail sets the result to failed status with a detail message.
func (r *Result) Fail(detail string, err error) Result {
	r.Status = StatusFail
	r.Details = append(r.Details, detail)
	r.Err = err
	return *r
}

// Failf sets the result to failed status with a formatted detail message.
func (r *Result) Failf(format string, args ...interface{}) Result {
	return r.Fail(fmt.Sprintf(format, args...), fmt.Errorf(format, args...))
}

// Warnf downgrades the result to a warning with a formatted detail message.
// A failed result stays failed.
func (r *Result) Warnf(format string, args ...interface{}) *Result {
	if r.Status != StatusFail {
		r.Status = StatusWarn
	}
	return r.AddDetailf(format, args...)
}

// AddDetail appends a detail line to the result.
func (r *Result) AddDetail(detail string) *Result {
	r.Details = append(r.Details, detail)
	return r
}

// AddDetailf appends a formatted detail line to the result.
func (r *Result) AddDetailf(format string, args ...interface{}) *Result {
	return r.AddDetail(fmt.Sprintf(format, args...))
}

// Pass marks the result as passed unless it was already warned or failed.
func (r *Result) Pass() Result {
	if r.Status == "" {
		r.Status = StatusOK
	}
	return *r
}
