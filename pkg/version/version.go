// Package version extracts version numbers from tool output and checks them
// against recommended-version constraints.
package version

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/Masterminds/semver/v3"
)

// versionRegex matches version tokens like 3.10.11, v12.4, 551, etc.
var versionRegex = regexp.MustCompile(`v?(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

// Extract finds and parses the first version number in a string.
// Missing minor/patch components default to zero.
func Extract(s string) (*semver.Version, error) {
	matches := versionRegex.FindStringSubmatch(s)
	if matches == nil {
		return nil, fmt.Errorf("no version found in: %q", s)
	}

	major, _ := strconv.Atoi(matches[1])
	var minor, patch int
	if matches[2] != "" {
		minor, _ = strconv.Atoi(matches[2])
	}
	if matches[3] != "" {
		patch, _ = strconv.Atoi(matches[3])
	}

	return semver.New(uint64(major), uint64(minor), uint64(patch), "", ""), nil
}

// Satisfies reports whether v matches the given constraint expression
// (e.g. "~3.10" or "~12.4").
func Satisfies(v *semver.Version, constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	return c.Check(v), nil
}
