// Package trace extracts macro arguments from autoconf configuration
// sources. The planner uses it to read declared toolchain floors
// (AC_PREREQ and friends) out of a checked-out tree.
package trace

import "context"

// Tracer reports the ordered first arguments of every occurrence of a
// macro in an autoconf input file. An empty result is not an error; it
// means the macro is not declared.
type Tracer interface {
	Trace(ctx context.Context, file, macro string) ([]string, error)
}
