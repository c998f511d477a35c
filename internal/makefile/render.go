// Package makefile renders a build graph as a POSIX Makefile, or as YAML
// for inspection.
package makefile

import (
	"fmt"
	"io"
	"strings"

	"github.com/buildplane/autoplan/internal/planner"
)

// Vars is the variable block of the rendered Makefile. Root is required;
// the other directories default to locations under it. Every assignment
// uses ?= so the make-time environment can still relocate a run.
type Vars struct {
	Root    string
	Mirrors string
	Build   string
	Tools   string
	Gnulib  string
}

const banner = `# Bootstrap toolchain build plan.
# Written by autoplan; edits are overwritten on the next plan run.`

// Render writes the graph as a Makefile. Output depends only on the graph
// and vars, never on the clock or the host, so the same plan renders to
// identical bytes every time.
func Render(g *planner.BuildGraph, vars Vars, w io.Writer) error {
	var b strings.Builder

	b.WriteString(banner)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "AUTOPLAN_ROOT ?= %s\n", vars.Root)
	fmt.Fprintf(&b, "AUTOPLAN_MIRRORS ?= %s\n", orDerived(vars.Mirrors, "$(AUTOPLAN_ROOT)/mirrors"))
	fmt.Fprintf(&b, "AUTOPLAN_BUILD ?= %s\n", orDerived(vars.Build, "$(AUTOPLAN_ROOT)/build"))
	fmt.Fprintf(&b, "AUTOPLAN_TOOLS ?= %s\n", orDerived(vars.Tools, "$(AUTOPLAN_ROOT)/tools"))
	fmt.Fprintf(&b, "AUTOPLAN_GNULIB ?= %s\n", orDerived(vars.Gnulib, "$(AUTOPLAN_MIRRORS)/gnulib"))
	b.WriteString("\n")

	if phonies := g.Phonies(); len(phonies) > 0 {
		fmt.Fprintf(&b, ".PHONY: %s\n\n", strings.Join(phonies, " "))
	}

	for i, target := range g.Targets {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(target.Name)
		b.WriteString(":")
		for _, prereq := range target.Prereqs {
			b.WriteString(" ")
			b.WriteString(prereq)
		}
		b.WriteString("\n")
		for _, cmd := range target.Commands {
			b.WriteString("\t")
			b.WriteString(cmd)
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func orDerived(override, derived string) string {
	if override != "" {
		return override
	}
	return derived
}
