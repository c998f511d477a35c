package trace

import "fmt"

// TraceError reports that the tracing step itself failed, as opposed to
// tracing cleanly and finding nothing. Planning treats it as fatal.
type TraceError struct {
	File   string
	Macro  string
	Output string
	Err    error
}

// Error implements the error interface.
func (e *TraceError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("tracing %s in %s: %v", e.Macro, e.File, e.Err)
	}
	return fmt.Sprintf("tracing %s in %s: %v: %s", e.Macro, e.File, e.Err, e.Output)
}

// Unwrap returns the underlying failure.
func (e *TraceError) Unwrap() error {
	return e.Err
}
