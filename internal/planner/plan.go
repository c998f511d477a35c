package planner

import (
	"context"
	"path/filepath"

	"cosmossdk.io/log"
	goversion "github.com/hashicorp/go-version"
	"github.com/google/uuid"

	"github.com/buildplane/autoplan/internal/executor"
	"github.com/buildplane/autoplan/internal/paths"
	"github.com/buildplane/autoplan/internal/trace"
	"github.com/buildplane/autoplan/internal/vcs"
)

// Config is the resolved run context for one planning pass.
type Config struct {
	// Root is the toolchain root directory. Mirrors, build scratch and
	// install prefixes all default to locations under it. Required; its
	// absence is the one error detected before any planning work.
	Root string

	// MirrorsDir overrides Root/mirrors as the location of the local
	// package mirrors consulted during planning.
	MirrorsDir string

	// BaseTools overrides DefaultBaseTools as the host-provided targets
	// every install depends on.
	BaseTools []string
}

func (c Config) mirrorsDir() string {
	if c.MirrorsDir != "" {
		return c.MirrorsDir
	}
	return paths.MirrorsPath(c.Root)
}

// Planner runs the pipeline: resolve tags, inspect trees, emit the graph.
// It is single-threaded on purpose; versions of a package share a mirror
// working tree and checkouts are destructive, so there is nothing safe to
// parallelize.
type Planner struct {
	cfg    Config
	tracer trace.Tracer
	logger log.Logger
	runID  string
	open   func(dir string) (vcs.Repo, error)
}

// New creates a Planner. Every log line of the run carries a fresh run id.
func New(cfg Config, runner executor.CommandRunner, tracer trace.Tracer, logger log.Logger) *Planner {
	runID := uuid.NewString()
	p := &Planner{
		cfg:    cfg,
		tracer: tracer,
		logger: logger.With("run_id", runID),
		runID:  runID,
	}
	p.open = func(dir string) (vcs.Repo, error) {
		return vcs.Open(dir, runner)
	}
	return p
}

// RunID returns the id tagged onto this run's log lines.
func (p *Planner) RunID() string {
	return p.runID
}

// SetRepoOpener replaces how mirrors are opened. Tests use it to inject
// fake repositories.
func (p *Planner) SetRepoOpener(open func(dir string) (vcs.Repo, error)) {
	p.open = open
}

// Plan runs the full pipeline over the manifest's package specs. Any
// failure aborts the whole run; a graph is returned only when every
// version resolved, checked out and inspected cleanly.
func (p *Planner) Plan(ctx context.Context, specs []PackageSpec) (*BuildGraph, error) {
	if p.cfg.Root == "" {
		return nil, &EnvironmentError{
			Missing: "toolchain root",
			Hint:    "set AUTOPLAN_ROOT, pass --root, or set root in autoplan.toml",
		}
	}

	pkgs, err := p.Resolve(ctx, specs)
	if err != nil {
		return nil, err
	}

	graph, dropped := EmitGraph(pkgs, EmitOptions{BaseTools: p.cfg.BaseTools})
	for _, d := range dropped {
		// The first version of a tool bootstrapping from the host is
		// routine; anything else deserves a visible warning.
		if d.Self {
			p.logger.Debug("self requirement left to the host",
				"package", d.Package, "version", d.Version,
				"tool", d.Floor.Tool, "min", d.Floor.Min.Original())
			continue
		}
		p.logger.Warn("requirement left to the host",
			"package", d.Package, "version", d.Version,
			"tool", d.Floor.Tool, "min", d.Floor.Min.Original())
	}

	p.logger.Info("planning complete", "packages", len(pkgs), "targets", len(graph.Targets))
	return graph, nil
}

// Resolve pins every version to a tag and inspects its tree, in declared
// order. The checkout sequence is the same one the emitted extraction
// rules will replay at build time.
func (p *Planner) Resolve(ctx context.Context, specs []PackageSpec) ([]*Package, error) {
	mirrors := p.cfg.mirrorsDir()

	var pkgs []*Package
	for _, spec := range specs {
		repo, err := p.open(filepath.Join(mirrors, spec.MirrorName()))
		if err != nil {
			return nil, err
		}

		tags, err := repo.Tags(ctx)
		if err != nil {
			return nil, err
		}
		p.logger.Debug("listed tags", "package", spec.Name, "count", len(tags))

		pkg := &Package{Name: spec.Name, Repository: spec.MirrorName()}
		for _, ver := range spec.Versions {
			tag, err := ResolveTag(tags, spec.Name, ver)
			if err != nil {
				return nil, err
			}
			if err := repo.Checkout(ctx, tag); err != nil {
				return nil, err
			}
			commit, err := repo.Head(ctx)
			if err != nil {
				return nil, err
			}

			strategy, autoheaderBug := SelectStrategy(repo.Dir())
			reqs, err := ComputeRequirements(ctx, repo.Dir(), spec.Name, p.tracer, p.logger)
			if err != nil {
				return nil, err
			}

			p.logger.Debug("inspected version",
				"package", spec.Name,
				"version", ver,
				"tag", tag,
				"commit", commit,
				"strategy", strategy.String(),
				"autoconf_floor", floorString(reqs.Autoconf),
				"automake_floor", floorString(reqs.Automake),
				"libtool_floor", floorString(reqs.Libtool),
			)

			pkg.Versions = append(pkg.Versions, &Version{
				Package:       spec.Name,
				Version:       ver,
				Tag:           tag,
				Commit:        commit,
				SourceDir:     repo.Dir(),
				Strategy:      strategy,
				AutoheaderBug: autoheaderBug,
				Requirements:  reqs,
			})
		}

		p.logger.Info("planned package", "package", spec.Name, "versions", len(pkg.Versions))
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

func floorString(v *goversion.Version) string {
	if v == nil {
		return "-"
	}
	return v.Original()
}
