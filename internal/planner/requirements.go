package planner

import (
	"context"
	"path/filepath"
	"strings"

	"cosmossdk.io/log"
	goversion "github.com/hashicorp/go-version"

	"github.com/buildplane/autoplan/internal/trace"
)

// ComputeRequirements inspects the checked-out tree at dir and returns the
// toolchain floors for one version of pkg.
//
// The autoconf floor is always computed: even trees that ship a configure
// script re-check it when their bootstrap ever reruns. The automake floor
// is skipped when a configure script is present, except for automake
// itself, whose self-floor drives its own bootstrap chain and is always
// recomputed. The libtool floor exists only when the tree declares one.
//
// Every floor is the maximum of the hardcoded fallback and all parseable
// declared values. Declarations that do not parse as versions (m4
// indirections, option words) are skipped with a debug log; only a failure
// of the tracer itself is an error.
func ComputeRequirements(ctx context.Context, dir, pkg string, tracer trace.Tracer, logger log.Logger) (Requirements, error) {
	var reqs Requirements

	src := configSource(dir)
	hasConfigure := fileExists(filepath.Join(dir, "configure"))

	autoconf, err := traceFloor(ctx, tracer, src, MacroAutoconfPrereq, DefaultAutoconfFloor, logger)
	if err != nil {
		return Requirements{}, err
	}
	reqs.Autoconf = autoconf

	if !hasConfigure || pkg == ToolAutomake {
		automake, err := traceFloor(ctx, tracer, src, MacroAutomakeInit, DefaultAutomakeFloor, logger)
		if err != nil {
			return Requirements{}, err
		}
		reqs.Automake = automake
	}

	libtool, err := traceFloor(ctx, tracer, src, MacroLibtoolPrereq, nil, logger)
	if err != nil {
		return Requirements{}, err
	}
	reqs.Libtool = libtool

	return reqs, nil
}

// configSource returns the tree's autoconf input file, preferring
// configure.ac over the older configure.in spelling. Empty when the tree
// has neither.
func configSource(dir string) string {
	for _, name := range []string{"configure.ac", "configure.in"} {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func traceFloor(ctx context.Context, tracer trace.Tracer, src, macro string, fallback *goversion.Version, logger log.Logger) (*goversion.Version, error) {
	floor := fallback
	if src == "" {
		return floor, nil
	}

	declared, err := tracer.Trace(ctx, src, macro)
	if err != nil {
		return nil, err
	}

	for _, raw := range declared {
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			continue
		}
		// AM_INIT_AUTOMAKE mixes the version with option words; only the
		// leading token can be a version.
		v, err := goversion.NewVersion(fields[0])
		if err != nil {
			logger.Debug("skipping unparseable version declaration", "macro", macro, "value", raw)
			continue
		}
		if floor == nil || v.GreaterThan(floor) {
			floor = v
		}
	}
	return floor, nil
}
