// Package output prints check results and run banners with colored status
// labels when the terminal supports it.
package output

import (
	"fmt"
	"strings"

	"github.com/jwalton/go-supportscolor"

	"github.com/vertti/mlrig/pkg/check"
)

var (
	green  = "\033[32m"
	yellow = "\033[33m"
	red    = "\033[31m"
	dim    = "\033[2m"
	reset  = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		green, yellow, red, dim, reset = "", "", "", "", ""
	}
}

// PrintResult outputs a check result with colored status.
func PrintResult(r check.Result) {
	var tag, color string
	switch r.Status {
	case check.StatusOK:
		tag, color = "[OK]", green
	case check.StatusWarn:
		tag, color = "[WARN]", yellow
	default:
		tag, color = "[FAIL]", red
	}

	fmt.Printf("%s%s%s %s\n", color, tag, reset, r.Name)

	indent := strings.Repeat(" ", len(tag)+1)
	for _, d := range r.Details {
		fmt.Printf("%s%s\n", indent, formatLabel(d))
	}
}

// formatLabel dims the "label:" prefix of a detail line, if present.
func formatLabel(detail string) string {
	if dim == "" {
		return detail
	}
	idx := strings.Index(detail, ": ")
	if idx < 0 {
		return detail
	}
	return dim + detail[:idx+1] + reset + detail[idx+1:]
}

// PrintBanner prints a heavy section divider with a title.
func PrintBanner(title string) {
	line := strings.Repeat("=", 80)
	fmt.Printf("\n%s\n%s\n%s\n", line, title, line)
}

// PrintSection prints a light divider before a group of checks.
func PrintSection(title string) {
	fmt.Printf("\n%s\n%s\n", title, strings.Repeat("-", 80))
}

// PrintError prints a labeled error line.
func PrintError(format string, args ...interface{}) {
	fmt.Printf("%s[ERROR]%s %s\n", red, reset, fmt.Sprintf(format, args...))
}

// PrintWarning prints a labeled warning line.
func PrintWarning(format string, args ...interface{}) {
	fmt.Printf("%s[WARN]%s %s\n", yellow, reset, fmt.Sprintf(format, args...))
}

// PrintInfo prints a labeled informational line.
func PrintInfo(format string, args ...interface{}) {
	fmt.Printf("%s[INFO]%s %s\n", dim, reset, fmt.Sprintf(format, args...))
}

// PrintSummary prints the per-check pass/fail table and the aggregate verdict.
func PrintSummary(s *check.Summary) {
	PrintBanner("Summary")
	for _, r := range s.Results {
		PrintResult(check.Result{Name: r.Name, Status: r.Status})
	}
	fmt.Println()
	if s.AllOK() {
		fmt.Printf("%s[OK]%s environment checks passed\n", green, reset)
	} else {
		fmt.Printf("%s[FAIL]%s one or more environment checks failed\n", red, reset)
	}
}
