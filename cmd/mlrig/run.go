package main

import (
	"errors"

	"github.com/vertti/mlrig/pkg/check"
	"github.com/vertti/mlrig/pkg/output"
)

// ErrCheckFailed is returned when at least one selected check failed.
// The returned error causes Cobra to exit with code 1.
var ErrCheckFailed = errors.New("check failed")

// ErrPrereqFailed is returned when the OS or elevation prerequisite failed
// before any operation began.
var ErrPrereqFailed = errors.New("prerequisites not met")

// runCheckers executes each check in order, prints every result, and prints
// the aggregate summary. A failed check never stops the remaining checks.
func runCheckers(checkers []check.Checker) bool {
	var summary check.Summary
	for _, c := range checkers {
		result := c.Run()
		output.PrintResult(result)
		summary.Add(result)
	}
	output.PrintSummary(&summary)
	return summary.AllOK()
}
