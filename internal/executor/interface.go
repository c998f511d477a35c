package executor

import (
	"context"
	"time"
)

// CommandRunner abstracts external command execution for testing.
// Planning shells out to git and, optionally, autom4te; everything that
// does so takes a CommandRunner so tests can substitute a fake.
//
// The caller is responsible for validating command arguments; nothing here
// passes through a shell.
type CommandRunner interface {
	// Run executes a command in dir (empty means the current directory)
	// and returns combined stdout and stderr. The command is killed when
	// ctx is cancelled or its deadline passes.
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// DefaultTimeout bounds a single external command during planning. Tag
// listings and checkouts on real autotools mirrors finish well inside it.
const DefaultTimeout = 30 * time.Second
