package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/buildplane/autoplan/internal/config"
	"github.com/buildplane/autoplan/internal/executor"
	"github.com/buildplane/autoplan/internal/trace"
)

func TestTracerFor(t *testing.T) {
	runner := executor.NewOSRunner()

	tr, err := tracerFor(config.TracerScan, runner)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if _, ok := tr.(*trace.ScanTracer); !ok {
		t.Errorf("scan tracer has type %T", tr)
	}

	tr, err = tracerFor(config.TracerAutom4te, runner)
	if err != nil {
		t.Fatalf("autom4te: %v", err)
	}
	if _, ok := tr.(*trace.Autom4teTracer); !ok {
		t.Errorf("autom4te tracer has type %T", tr)
	}

	if _, err := tracerFor("perl", runner); err == nil {
		t.Error("expected error for unknown tracer")
	}
}

func TestRunPlanRejectsUnknownFormat(t *testing.T) {
	resetGlobals()
	defer func() {
		planFormat = formatMake
		resetGlobals()
	}()

	planFormat = "xml"
	err := runPlan(&cobra.Command{Use: "plan"}, nil)
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("error = %q", err)
	}
}

func TestRunPlanMissingManifest(t *testing.T) {
	resetGlobals()
	defer func() {
		planManifest = config.DefaultManifestFile
		planFormat = formatMake
		resetGlobals()
	}()
	clearEnv(t)

	cfg = buildEffective(testFlagsCmd(), &config.FileConfig{}, "")
	planFormat = formatMake
	planManifest = t.TempDir() + "/absent.yaml"
	err := runPlan(&cobra.Command{Use: "plan"}, nil)
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
}
