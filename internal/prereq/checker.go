package prereq

import (
	"fmt"
	"os/exec"
	"strings"
)

// PrereqResult contains the result of a prerequisite check.
type PrereqResult struct {
	Name       string `json:"name"`
	Required   bool   `json:"required"`
	Found      bool   `json:"found"`
	Version    string `json:"version,omitempty"`
	Path       string `json:"path,omitempty"`
	Message    string `json:"message,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Checker performs prerequisite checks for planning and for running the
// emitted Makefile. git and make are always required; the base tools the
// graph points at ($(AUTOPLAN_TOOLS)/bin) come from the host too, so they
// are checked here as well.
type Checker struct {
	autom4teRequired bool
	help2manRequired bool
	results          []PrereqResult
}

// NewChecker creates a new prerequisite Checker.
func NewChecker() *Checker {
	return &Checker{
		results: make([]PrereqResult, 0),
	}
}

// RequireAutom4te marks autom4te as required (tracer = "autom4te").
func (c *Checker) RequireAutom4te() *Checker {
	c.autom4teRequired = true
	return c
}

// RequireHelp2man marks help2man as required (manifest lists it as a base tool).
func (c *Checker) RequireHelp2man() *Checker {
	c.help2manRequired = true
	return c
}

// Check performs all prerequisite checks and returns the results.
func (c *Checker) Check() ([]PrereqResult, error) {
	c.results = make([]PrereqResult, 0)

	c.checkGit()
	c.checkMake()
	c.checkBaseTool("m4", true)
	c.checkBaseTool("makeinfo", true)
	c.checkBaseTool("help2man", c.help2manRequired)

	if c.autom4teRequired {
		c.checkAutom4te()
	}

	// The first version of each tool bootstraps with whatever the host
	// carries, so report those too, informationally.
	c.checkHostTool("autoconf")
	c.checkHostTool("automake")
	c.checkHostTool("libtool")

	for _, result := range c.results {
		if result.Required && !result.Found {
			return c.results, fmt.Errorf("prerequisite not met: %s - %s", result.Name, result.Message)
		}
	}

	return c.results, nil
}

// Results returns the check results.
func (c *Checker) Results() []PrereqResult {
	return c.results
}

// checkGit checks if git is installed.
func (c *Checker) checkGit() {
	result := PrereqResult{
		Name:     "git",
		Required: true,
	}

	path, err := exec.LookPath("git")
	if err != nil {
		result.Found = false
		result.Message = "git is not installed"
		result.Suggestion = "Install git with your package manager"
		c.results = append(c.results, result)
		return
	}
	result.Path = path

	// Parse version (e.g., "git version 2.43.0")
	output, err := exec.Command("git", "version").Output()
	if err == nil {
		parts := strings.Fields(string(output))
		if len(parts) >= 3 {
			result.Version = parts[2]
		}
	}

	result.Found = true
	result.Message = fmt.Sprintf("git %s is available", result.Version)
	c.results = append(c.results, result)
}

// checkMake checks if make is installed.
func (c *Checker) checkMake() {
	result := PrereqResult{
		Name:     "make",
		Required: true,
	}

	path, err := exec.LookPath("make")
	if err != nil {
		result.Found = false
		result.Message = "make is not installed"
		result.Suggestion = "Install GNU make with your package manager"
		c.results = append(c.results, result)
		return
	}

	result.Found = true
	result.Path = path
	result.Version = firstLineVersion("make")
	result.Message = "make is available"
	c.results = append(c.results, result)
}

// checkBaseTool checks one of the base tools the emitted plan expects the
// host to provide.
func (c *Checker) checkBaseTool(name string, required bool) {
	result := PrereqResult{
		Name:     name,
		Required: required,
	}

	path, err := exec.LookPath(name)
	if err != nil {
		result.Found = false
		result.Message = fmt.Sprintf("%s is not installed", name)
		result.Suggestion = fmt.Sprintf("Install %s with your package manager", name)
		c.results = append(c.results, result)
		return
	}

	result.Found = true
	result.Path = path
	result.Version = firstLineVersion(name)
	result.Message = fmt.Sprintf("%s is available", name)
	c.results = append(c.results, result)
}

// checkAutom4te checks if autom4te is installed.
func (c *Checker) checkAutom4te() {
	result := PrereqResult{
		Name:     "autom4te",
		Required: true,
	}

	path, err := exec.LookPath("autom4te")
	if err != nil {
		result.Found = false
		result.Message = "autom4te is not installed"
		result.Suggestion = "Install autoconf, or switch to tracer = \"scan\""
		c.results = append(c.results, result)
		return
	}

	result.Found = true
	result.Path = path
	result.Version = firstLineVersion("autom4te")
	result.Message = "autom4te is available"
	c.results = append(c.results, result)
}

// checkHostTool records whether the host carries a bootstrap-capable tool.
// Never required: the plan builds these, the host copy only seeds the
// first version.
func (c *Checker) checkHostTool(name string) {
	result := PrereqResult{
		Name:     "host " + name,
		Required: false,
	}

	path, err := exec.LookPath(name)
	if err != nil {
		result.Found = false
		result.Message = fmt.Sprintf("no host %s; the first %s build will fail without one", name, name)
		c.results = append(c.results, result)
		return
	}

	result.Found = true
	result.Path = path
	result.Version = firstLineVersion(name)
	result.Message = fmt.Sprintf("host %s seeds the first bootstrap", name)
	c.results = append(c.results, result)
}

// firstLineVersion runs tool --version and returns the last field of the
// first output line, which is where GNU tools keep the version number.
func firstLineVersion(tool string) string {
	output, err := exec.Command(tool, "--version").Output()
	if err != nil {
		return ""
	}
	lines := strings.SplitN(string(output), "\n", 2)
	fields := strings.Fields(lines[0])
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// AllPassed returns true if all checks passed.
func (c *Checker) AllPassed() bool {
	for _, result := range c.results {
		if result.Required && !result.Found {
			return false
		}
	}
	return true
}

// FailedChecks returns only the failed required checks.
func (c *Checker) FailedChecks() []PrereqResult {
	failed := make([]PrereqResult, 0)
	for _, result := range c.results {
		if result.Required && !result.Found {
			failed = append(failed, result)
		}
	}
	return failed
}
