package trace

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/buildplane/autoplan/internal/executor"
)

// Autom4teTracer traces macros by running autom4te, which expands the
// input with real m4 semantics. Selected with tracer = "autom4te" in the
// tool configuration; requires autom4te on the host.
type Autom4teTracer struct {
	runner executor.CommandRunner
}

// NewAutom4teTracer creates a tracer shelling out through runner.
func NewAutom4teTracer(runner executor.CommandRunner) *Autom4teTracer {
	return &Autom4teTracer{runner: runner}
}

// Trace runs autom4te in the file's directory and returns one entry per
// traced occurrence.
func (t *Autom4teTracer) Trace(ctx context.Context, file, macro string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, executor.DefaultTimeout)
	defer cancel()

	out, err := t.runner.Run(ctx, filepath.Dir(file), "autom4te",
		"--language=Autoconf-without-aclocal-m4",
		"--trace", macro+":$1",
		filepath.Base(file))
	if err != nil {
		return nil, &TraceError{
			File:   file,
			Macro:  macro,
			Output: strings.TrimSpace(string(out)),
			Err:    err,
		}
	}

	var args []string
	for _, line := range strings.Split(string(out), "\n") {
		if arg := strings.TrimSpace(line); arg != "" {
			args = append(args, arg)
		}
	}
	return args, nil
}
