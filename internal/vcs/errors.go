package vcs

import "fmt"

// CommandError reports a failed git invocation, keeping the combined
// output so the CLI can show what git actually said.
type CommandError struct {
	Op     string
	Dir    string
	Output string
	Err    error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("git %s in %s: %v", e.Op, e.Dir, e.Err)
	}
	return fmt.Sprintf("git %s in %s: %v: %s", e.Op, e.Dir, e.Err, e.Output)
}

// Unwrap returns the underlying execution error.
func (e *CommandError) Unwrap() error {
	return e.Err
}
