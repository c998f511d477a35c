package vcs

import (
	"context"
	"strings"

	"github.com/buildplane/autoplan/internal/executor"
)

// GitRepo implements Repo by shelling out to the git binary through a
// CommandRunner. It never touches the network: mirrors are expected to be
// maintained by the caller (git clone --mirror or a plain clone kept
// fetched out of band).
type GitRepo struct {
	dir    string
	runner executor.CommandRunner
}

// NewGitRepo creates a GitRepo on an existing working tree.
func NewGitRepo(dir string, runner executor.CommandRunner) *GitRepo {
	return &GitRepo{dir: dir, runner: runner}
}

// Dir returns the working tree path.
func (r *GitRepo) Dir() string {
	return r.dir
}

// Tags lists every tag name in the repository.
func (r *GitRepo) Tags(ctx context.Context) ([]string, error) {
	out, err := r.git(ctx, "tag", "-l")
	if err != nil {
		return nil, err
	}
	var tags []string
	for _, line := range strings.Split(string(out), "\n") {
		if tag := strings.TrimSpace(line); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// Checkout forces the working tree onto ref and cleans untracked files,
// mirroring what the emitted extraction rules do at build time.
func (r *GitRepo) Checkout(ctx context.Context, ref string) error {
	if _, err := r.git(ctx, "checkout", "-f", "-q", ref); err != nil {
		return err
	}
	_, err := r.git(ctx, "clean", "-d", "-f", "-x", "-q")
	return err
}

// Head returns the current commit hash.
func (r *GitRepo) Head(ctx context.Context) (string, error) {
	out, err := r.git(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (r *GitRepo) git(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, executor.DefaultTimeout)
	defer cancel()
	out, err := r.runner.Run(ctx, r.dir, "git", args...)
	if err != nil {
		return nil, &CommandError{
			Op:     args[0],
			Dir:    r.dir,
			Output: strings.TrimSpace(string(out)),
			Err:    err,
		}
	}
	return out, nil
}
