package main

import (
	"bytes"
	"fmt"
	"os"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/buildplane/autoplan/internal/config"
	"github.com/buildplane/autoplan/internal/executor"
	"github.com/buildplane/autoplan/internal/makefile"
	"github.com/buildplane/autoplan/internal/output"
	"github.com/buildplane/autoplan/internal/planner"
	"github.com/buildplane/autoplan/internal/trace"
)

// Output formats accepted by plan --format.
const (
	formatMake = "make"
	formatYAML = "yaml"
)

var (
	planManifest string
	planOutput   string
	planFormat   string
	planTracer   string
	planMirrors  string
	planBuildDir string
	planToolsDir string
	planGnulib   string
)

// newPlanCmd creates the plan command.
func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Resolve a build manifest into a Makefile",
		Long: `Plan resolves every package version in the manifest to a tag in its local
mirror, inspects the tagged tree to pick a bootstrap strategy and tool
requirements, and emits the build plan.

The run is all-or-nothing: one unresolvable version, failed checkout or
failed trace aborts it and nothing is written.

Examples:
  # Plan into a Makefile
  autoplan plan -f autoplan.yaml -o Makefile

  # Print the Makefile to stdout
  autoplan plan

  # Inspect the resolved plan as YAML
  autoplan plan --format yaml

  # Use the autom4te tracer instead of the built-in scanner
  autoplan plan --tracer autom4te`,
		RunE: runPlan,
	}

	cmd.Flags().StringVarP(&planManifest, "file", "f", config.DefaultManifestFile,
		"Path to the build manifest")
	cmd.Flags().StringVarP(&planOutput, "output", "o", "",
		"Write the rendered plan to this file instead of stdout")
	cmd.Flags().StringVar(&planFormat, "format", formatMake,
		"Output format (make, yaml)")
	cmd.Flags().StringVar(&planTracer, "tracer", config.TracerScan,
		"Requirement tracer (scan, autom4te)")
	cmd.Flags().StringVar(&planMirrors, "mirrors", "",
		"Mirrors directory (default <root>/mirrors)")
	cmd.Flags().StringVar(&planBuildDir, "build-dir", "",
		"Build scratch directory baked into the Makefile (default <root>/build)")
	cmd.Flags().StringVar(&planToolsDir, "tools-dir", "",
		"Install prefix directory baked into the Makefile (default <root>/tools)")
	cmd.Flags().StringVar(&planGnulib, "gnulib", "",
		"Gnulib checkout baked into the Makefile (default <mirrors>/gnulib)")

	return cmd
}

func runPlan(cmd *cobra.Command, args []string) error {
	if planFormat != formatMake && planFormat != formatYAML {
		return fmt.Errorf("unknown format %q (must be %q or %q)", planFormat, formatMake, formatYAML)
	}

	progress := output.NewProgress(3)
	progress.SetJSONMode(cfg.JSON.Value)

	progress.Stage("Loading " + planManifest)
	manifest, err := config.NewManifestLoader().LoadFile(planManifest)
	if err != nil {
		return fatal(cmd, err)
	}

	runner := executor.NewOSRunner()
	tracer, err := tracerFor(cfg.Tracer.Value, runner)
	if err != nil {
		return err
	}

	progress.Stage(fmt.Sprintf("Planning %d package(s)", len(manifest.Spec.Packages)))

	pcfg := planner.Config{
		Root:       cfg.Root.Value,
		MirrorsDir: cfg.Mirrors.Value,
		BaseTools:  manifest.Spec.BaseTools,
	}

	p := planner.New(pcfg, runner, tracer, engineLogger())
	graph, err := p.Plan(cmd.Context(), manifest.ToSpecs())
	if err != nil {
		return fatal(cmd, err)
	}

	progress.Stage("Rendering plan")

	var buf bytes.Buffer
	switch planFormat {
	case formatMake:
		vars := makefile.Vars{
			Root:    cfg.Root.Value,
			Mirrors: cfg.Mirrors.Value,
			Build:   cfg.BuildDir.Value,
			Tools:   cfg.ToolsDir.Value,
			Gnulib:  cfg.Gnulib.Value,
		}
		err = makefile.Render(graph, vars, &buf)
	case formatYAML:
		err = makefile.WriteGraphYAML(graph, &buf)
	}
	if err != nil {
		return fatal(cmd, err)
	}

	if planOutput == "" || planOutput == "-" {
		if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
			return err
		}
		progress.Done(fmt.Sprintf("Planned %d target(s)", len(graph.Targets)))
		return nil
	}

	if err := os.WriteFile(planOutput, buf.Bytes(), 0o644); err != nil {
		return fatal(cmd, fmt.Errorf("failed to write %s: %w", planOutput, err))
	}

	output.Success("Wrote %s (%d targets)", planOutput, len(graph.Targets))
	return nil
}

// tracerFor selects the requirement tracer by name.
func tracerFor(name string, runner executor.CommandRunner) (trace.Tracer, error) {
	switch name {
	case config.TracerScan:
		return trace.NewScanTracer(), nil
	case config.TracerAutom4te:
		return trace.NewAutom4teTracer(runner), nil
	default:
		return nil, fmt.Errorf("invalid tracer %q (must be %q or %q)",
			name, config.TracerScan, config.TracerAutom4te)
	}
}

// engineLogger builds the structured logger handed to the planner. It
// writes to stderr so a plan printed on stdout stays clean.
func engineLogger() log.Logger {
	level := zerolog.InfoLevel
	if cfg.Verbose.Value {
		level = zerolog.DebugLevel
	}

	opts := []log.Option{log.LevelOption(level)}
	if cfg.JSON.Value {
		opts = append(opts, log.OutputJSONOption())
	} else if cfg.NoColor.Value {
		opts = append(opts, log.ColorOption(false))
	}

	return log.NewLogger(os.Stderr, opts...)
}
