// Package vcs wraps the local git mirrors that planning inspects. Planning
// only ever reads tag lists and forces the working tree onto a tag; all
// mutation of mirror contents beyond checkout/clean belongs to the emitted
// Makefile, not to this package.
package vcs

import (
	"context"
	"fmt"
	"os"

	"github.com/buildplane/autoplan/internal/executor"
)

// Repo is the source-control surface the planner depends on.
type Repo interface {
	// Dir returns the working tree path of the mirror.
	Dir() string

	// Tags lists all tag names in the mirror, one per entry, order as
	// reported by git.
	Tags(ctx context.Context) ([]string, error)

	// Checkout forces the working tree onto ref and removes untracked
	// files. Destructive: anything not committed is gone afterwards.
	Checkout(ctx context.Context, ref string) error

	// Head returns the commit hash the working tree currently sits on.
	Head(ctx context.Context) (string, error)
}

// Open validates that dir exists and returns a git-backed Repo on it.
func Open(dir string, runner executor.CommandRunner) (Repo, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("mirror %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("mirror %s: not a directory", dir)
	}
	return NewGitRepo(dir, runner), nil
}
