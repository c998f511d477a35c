package planner

import (
	"fmt"
	"strings"
)

// EnvironmentError reports missing run context, detected before any
// planning work begins.
type EnvironmentError struct {
	Missing string
	Hint    string
}

// Error implements the error interface.
func (e *EnvironmentError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("%s is not set", e.Missing)
	}
	return fmt.Sprintf("%s is not set (%s)", e.Missing, e.Hint)
}

// TagNotFoundError reports that a version resolved to zero or to several
// tags. Ambiguity is never guessed around: both cases abort the run.
type TagNotFoundError struct {
	Package string
	Version string
	Matches []string
}

// Error implements the error interface.
func (e *TagNotFoundError) Error() string {
	if len(e.Matches) == 0 {
		return fmt.Sprintf("no tag matches %s %s (tried v%s, release-%s, %s-%s)",
			e.Package, e.Version, e.Version, e.Version, e.Package, e.Version)
	}
	return fmt.Sprintf("ambiguous tags for %s %s: %s",
		e.Package, e.Version, strings.Join(e.Matches, ", "))
}
