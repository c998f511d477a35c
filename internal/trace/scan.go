package trace

import (
	"context"
	"os"
	"regexp"
	"strings"
)

// ScanTracer traces macros by scanning the raw file text. It does not run
// m4, so it cannot expand indirections and may mis-read unusual quoting;
// for the version-floor macros in real autotools trees the textual form is
// what gets declared, and scanning keeps planning free of a host autoconf
// dependency. Hosts that want exact semantics configure the autom4te
// tracer instead.
type ScanTracer struct{}

// NewScanTracer creates the default textual tracer.
func NewScanTracer() *ScanTracer {
	return &ScanTracer{}
}

// Trace returns the first argument of each occurrence of macro in file,
// in file order, with m4 quoting stripped.
func (s *ScanTracer) Trace(_ context.Context, file, macro string) ([]string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, &TraceError{File: file, Macro: macro, Err: err}
	}

	// Match the macro name at a word boundary followed by its opening
	// paren, capturing up to the first comma or closing paren.
	re := regexp.MustCompile(`(?m)(?:^|[^A-Za-z0-9_])` + regexp.QuoteMeta(macro) + `\(([^(),]*)`)

	var args []string
	for _, m := range re.FindAllStringSubmatch(string(data), -1) {
		arg := strings.TrimSpace(m[1])
		arg = strings.TrimPrefix(arg, "[")
		arg = strings.TrimSuffix(arg, "]")
		arg = strings.TrimSpace(arg)
		if arg != "" {
			args = append(args, arg)
		}
	}
	return args, nil
}
