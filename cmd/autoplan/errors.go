package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/buildplane/autoplan/internal/planner"
	"github.com/buildplane/autoplan/internal/trace"
)

// Exit codes distinguish the failure classes a calling script can react
// to. Anything not recognized exits with the generic code.
const (
	exitGeneric     = 1
	exitEnvironment = 2
	exitTagNotFound = 3
	exitTrace       = 4
)

// exitCode maps an error from a command run to the process exit code.
func exitCode(err error) int {
	var envErr *planner.EnvironmentError
	if errors.As(err, &envErr) {
		return exitEnvironment
	}

	var tagErr *planner.TagNotFoundError
	if errors.As(err, &tagErr) {
		return exitTagNotFound
	}

	var traceErr *trace.TraceError
	if errors.As(err, &traceErr) {
		return exitTrace
	}

	return exitGeneric
}

// fatal marks err as a runtime failure rather than a usage mistake, so
// cobra does not append help text to it. The error passes through
// unchanged for exit-code mapping in main.
func fatal(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	cmd.SilenceUsage = true
	return err
}
