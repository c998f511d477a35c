// Package planner turns an ordered list of package versions into a build
// graph for a bootstrap toolchain: every version is pinned to a VCS tag,
// inspected for its bootstrap strategy and declared toolchain floors, and
// wired into Makefile targets whose ordering keeps destructive checkouts
// serialized and tool requirements satisfied by earlier builds.
package planner

import (
	goversion "github.com/hashicorp/go-version"
)

// Tool names with planner-level meaning. Packages may be named anything;
// these three get floor tracing and self-bootstrap handling.
const (
	ToolAutoconf = "autoconf"
	ToolAutomake = "automake"
	ToolLibtool  = "libtool"
)

// Macros traced for declared version floors.
const (
	MacroAutoconfPrereq = "AC_PREREQ"
	MacroAutomakeInit   = "AM_INIT_AUTOMAKE"
	MacroLibtoolPrereq  = "LT_PREREQ"
)

// Fallback floors applied when a tree declares nothing, or declares less.
// Libtool has no fallback: its floor exists only when declared.
var (
	DefaultAutoconfFloor = goversion.Must(goversion.NewVersion("2.59"))
	DefaultAutomakeFloor = goversion.Must(goversion.NewVersion("1.9.6"))
)

// DefaultBaseTools are the host-provided targets every install depends on.
// help2man is added per manifest, not by default.
var DefaultBaseTools = []string{"m4", "makeinfo"}

// PackageSpec is the planner's input: one package as declared in the
// manifest, versions in build order.
type PackageSpec struct {
	Name       string
	Repository string
	Versions   []string
}

// MirrorName returns the mirror directory name, defaulting to the package
// name when the manifest does not override it.
func (s PackageSpec) MirrorName() string {
	if s.Repository != "" {
		return s.Repository
	}
	return s.Name
}

// Package is one tool with its resolved versions, in build order. Earlier
// versions bootstrap later ones within the same package.
type Package struct {
	Name       string
	Repository string
	Versions   []*Version
}

// Version is one buildable release, fully resolved: tag pinned, strategy
// selected, floors computed. Instances live for a single planner run.
// Commit is the hash the tag resolved to, recorded for the logs; the
// emitted graph pins tags, not commits, so mirrors stay relocatable.
type Version struct {
	Package       string
	Version       string
	Tag           string
	Commit        string
	SourceDir     string
	Strategy      Strategy
	AutoheaderBug bool
	Requirements  Requirements
}

// Requirements holds the per-tool minimum version floors computed for one
// version. A nil entry means the tool is not required.
type Requirements struct {
	Autoconf *goversion.Version
	Automake *goversion.Version
	Libtool  *goversion.Version
}

// Floor is one (tool, minimum version) requirement.
type Floor struct {
	Tool string
	Min  *goversion.Version
}

// Floors returns the non-nil requirements in fixed tool order, which is
// also the order their dependency edges are emitted in.
func (r Requirements) Floors() []Floor {
	var floors []Floor
	if r.Autoconf != nil {
		floors = append(floors, Floor{Tool: ToolAutoconf, Min: r.Autoconf})
	}
	if r.Automake != nil {
		floors = append(floors, Floor{Tool: ToolAutomake, Min: r.Automake})
	}
	if r.Libtool != nil {
		floors = append(floors, Floor{Tool: ToolLibtool, Min: r.Libtool})
	}
	return floors
}

// Strategy is how a checked-out tree gets its build system regenerated
// before configure runs.
type Strategy int

const (
	// StrategyNone: a generated configure script ships in the tree.
	StrategyNone Strategy = iota
	// StrategyGnulib: the tree bootstraps through gnulib.
	StrategyGnulib
	// StrategyBootstrapSh: the tree ships a bootstrap.sh script.
	StrategyBootstrapSh
	// StrategyBootstrap: the tree ships a bootstrap script.
	StrategyBootstrap
	// StrategyAutoreconf: nothing shipped, regenerate with autoreconf.
	StrategyAutoreconf
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyGnulib:
		return "gnulib"
	case StrategyBootstrapSh:
		return "bootstrap.sh"
	case StrategyBootstrap:
		return "bootstrap"
	case StrategyAutoreconf:
		return "autoreconf"
	default:
		return "unknown"
	}
}

// Target is one rule of the emitted build graph.
type Target struct {
	Name     string   `yaml:"name"`
	Prereqs  []string `yaml:"prereqs,omitempty"`
	Commands []string `yaml:"commands,omitempty"`
	Phony    bool     `yaml:"phony,omitempty"`
}

// BuildGraph is the ordered rule list produced by graph emission. Order is
// deterministic and meaningful: the first target is the default goal.
type BuildGraph struct {
	Targets []*Target `yaml:"targets"`
}

// Phonies returns the names of all phony targets, in graph order.
func (g *BuildGraph) Phonies() []string {
	var names []string
	for _, t := range g.Targets {
		if t.Phony {
			names = append(names, t.Name)
		}
	}
	return names
}

// Lookup returns the target with the given name, or nil.
func (g *BuildGraph) Lookup(name string) *Target {
	for _, t := range g.Targets {
		if t.Name == name {
			return t
		}
	}
	return nil
}
