package planner

import (
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// EmitOptions tunes graph emission.
type EmitOptions struct {
	// BaseTools are the host-provided prerequisites of every install.
	// Empty means DefaultBaseTools.
	BaseTools []string
}

func (o EmitOptions) baseTools() []string {
	if len(o.BaseTools) == 0 {
		return DefaultBaseTools
	}
	return o.BaseTools
}

// DroppedFloor records a requirement floor that produced no dependency
// edge because no already-planned build satisfies it, leaving the tool to
// the host. Self is true when the floor named the version's own package,
// the normal situation for the first version of a tool.
type DroppedFloor struct {
	Package string
	Version string
	Floor   Floor
	Self    bool
}

// EmitGraph turns fully resolved packages into the build graph. It is a
// pure function of its inputs: no I/O, no clock, no randomness, so the
// same packages always produce byte-identical output downstream.
//
// Per package, versions are emitted in declared order. Extraction targets
// chain onto the previous version's extraction because all versions of a
// package share one mirror working tree and checkouts are destructive.
// Install targets depend on the own extraction, the base tools, the
// previous version of the same package, and one build per requirement
// floor. A version never depends on a later version of any package:
// floors resolve against already-planned builds only, taking the earliest
// planned version that satisfies the floor. A floor no planned build can
// cover is dropped and reported, and the host toolchain covers it at
// build time.
func EmitGraph(pkgs []*Package, opts EmitOptions) (*BuildGraph, []DroppedFloor) {
	base := opts.baseTools()

	type plannedVersion struct {
		raw    string
		parsed *goversion.Version
	}
	planned := map[string][]plannedVersion{}

	g := &BuildGraph{}
	var dropped []DroppedFloor

	all := &Target{Name: "all", Phony: true}
	for _, p := range pkgs {
		all.Prereqs = append(all.Prereqs, p.Name)
	}
	g.Targets = append(g.Targets, all)

	for _, tool := range base {
		g.Targets = append(g.Targets, &Target{
			Name:     baseToolTarget(tool),
			Commands: baseToolCommands(tool),
		})
	}

	for _, p := range pkgs {
		umbrella := &Target{Name: p.Name, Phony: true}

		for i, v := range p.Versions {
			extract := &Target{
				Name:     extractMarker(p.Name, v.Version),
				Commands: extractCommands(p, v),
			}
			if i > 0 {
				extract.Prereqs = []string{extractMarker(p.Name, p.Versions[i-1].Version)}
			}
			g.Targets = append(g.Targets, extract)

			prereqs := []string{extract.Name}
			for _, tool := range base {
				prereqs = append(prereqs, baseToolTarget(tool))
			}
			if i > 0 {
				prereqs = append(prereqs, installMarker(p.Name, p.Versions[i-1].Version))
			}

			var pathDirs []string
			for _, floor := range v.Requirements.Floors() {
				var chosen string
				for _, cand := range planned[floor.Tool] {
					if cand.parsed != nil && cand.parsed.GreaterThanOrEqual(floor.Min) {
						chosen = cand.raw
						break
					}
				}
				if chosen == "" {
					dropped = append(dropped, DroppedFloor{
						Package: p.Name,
						Version: v.Version,
						Floor:   floor,
						Self:    floor.Tool == p.Name,
					})
					continue
				}
				prereqs = append(prereqs, installMarker(floor.Tool, chosen))
				pathDirs = append(pathDirs, toolBinDir(floor.Tool, chosen))
			}

			install := &Target{
				Name:     installMarker(p.Name, v.Version),
				Prereqs:  dedupe(prereqs),
				Commands: installCommands(p, v, dedupe(pathDirs)),
			}
			g.Targets = append(g.Targets, install)

			alias := aliasName(p.Name, v.Version)
			g.Targets = append(g.Targets, &Target{
				Name:    alias,
				Prereqs: []string{install.Name},
				Phony:   true,
			})
			umbrella.Prereqs = append(umbrella.Prereqs, alias)

			parsed, err := goversion.NewVersion(v.Version)
			if err != nil {
				parsed = nil
			}
			planned[p.Name] = append(planned[p.Name], plannedVersion{raw: v.Version, parsed: parsed})
		}

		g.Targets = append(g.Targets, umbrella)
	}

	return g, dropped
}

func extractMarker(pkg, version string) string {
	return fmt.Sprintf("$(AUTOPLAN_BUILD)/%s-%s/.extracted", pkg, version)
}

func installMarker(pkg, version string) string {
	return fmt.Sprintf("$(AUTOPLAN_TOOLS)/%s-%s/.installed", pkg, version)
}

func baseToolTarget(tool string) string {
	return "$(AUTOPLAN_TOOLS)/bin/" + tool
}

// baseToolCommands pins a host-provided tool into the shared bin dir, so
// every build resolves the same binary even if PATH changes between make
// invocations.
func baseToolCommands(tool string) []string {
	return []string{
		fmt.Sprintf("command -v %s >/dev/null || { echo \"%s not found on PATH\" >&2; exit 1; }", tool, tool),
		"mkdir -p $(AUTOPLAN_TOOLS)/bin",
		fmt.Sprintf("ln -sf \"$$(command -v %s)\" $@", tool),
	}
}

func toolBinDir(pkg, version string) string {
	return fmt.Sprintf("$(AUTOPLAN_TOOLS)/%s-%s/bin", pkg, version)
}

func aliasName(pkg, version string) string {
	return pkg + "-" + version
}

func buildDir(pkg, version string) string {
	return fmt.Sprintf("$(AUTOPLAN_BUILD)/%s-%s", pkg, version)
}

func mirrorDir(p *Package) string {
	repo := p.Repository
	if repo == "" {
		repo = p.Name
	}
	return "$(AUTOPLAN_MIRRORS)/" + repo
}

// extractCommands checks the shared mirror tree out at the pinned tag and
// copies it into a fresh per-version build directory.
func extractCommands(p *Package, v *Version) []string {
	dir := buildDir(p.Name, v.Version)
	return []string{
		"mkdir -p $(AUTOPLAN_BUILD)",
		fmt.Sprintf("cd %s && git checkout -f -q %s && git clean -d -f -x -q", mirrorDir(p), v.Tag),
		"rm -rf " + dir,
		fmt.Sprintf("cp -pR %s %s", mirrorDir(p), dir),
		"touch $@",
	}
}

// installCommands bootstraps, configures, builds and installs one version.
// The PATH prefix puts every required toolchain build and the shared bin
// dir ahead of the host tools.
func installCommands(p *Package, v *Version, pathDirs []string) []string {
	parts := []string{"cd " + buildDir(p.Name, v.Version)}

	bins := append(append([]string{}, pathDirs...), "$(AUTOPLAN_TOOLS)/bin")
	parts = append(parts, fmt.Sprintf("export PATH=\"%s:$$PATH\"", strings.Join(bins, ":")))

	if v.AutoheaderBug {
		parts = append(parts, "touch stamp-h.in")
	}
	parts = append(parts, bootstrapParts(v.Strategy)...)

	parts = append(parts,
		fmt.Sprintf("./configure --prefix=$(AUTOPLAN_TOOLS)/%s-%s", p.Name, v.Version),
		"$(MAKE)",
		"$(MAKE) install",
	)

	return []string{
		strings.Join(parts, " && "),
		"touch $@",
	}
}

func bootstrapParts(s Strategy) []string {
	switch s {
	case StrategyGnulib:
		return []string{"./bootstrap --skip-po --no-git --gnulib-srcdir=$(AUTOPLAN_GNULIB)"}
	case StrategyBootstrapSh:
		return []string{"set -e", ". ./bootstrap.sh"}
	case StrategyBootstrap:
		return []string{"set -e", ". ./bootstrap"}
	case StrategyAutoreconf:
		return []string{"autoreconf -i -I m4"}
	default:
		return nil
	}
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
