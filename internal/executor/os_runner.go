package executor

import (
	"context"
	"os"
	"os/exec"
)

// OSRunner implements CommandRunner using os/exec. This is the production
// adapter; tests use FakeRunner instead.
type OSRunner struct {
	// extraEnv is appended to the inherited environment for every command.
	extraEnv []string
}

// NewOSRunner creates a runner executing real system commands. Any extraEnv
// entries ("KEY=value") are added to the environment of every command, on
// top of the parent process environment.
func NewOSRunner(extraEnv ...string) *OSRunner {
	return &OSRunner{extraEnv: extraEnv}
}

// Run executes the command via exec.CommandContext and returns combined
// stdout and stderr. A non-zero exit comes back as *exec.ExitError with the
// output still populated, so callers can include it in diagnostics.
func (r *OSRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if len(r.extraEnv) > 0 {
		cmd.Env = append(os.Environ(), r.extraEnv...)
	}
	return cmd.CombinedOutput()
}
