package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buildplane/autoplan/internal/config"
	"github.com/buildplane/autoplan/internal/output"
	"github.com/buildplane/autoplan/internal/prereq"
)

var checkManifest string

// newCheckCmd creates the check command.
func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check host prerequisites for planning and building",
		Long: `Check verifies the host carries the tools planning needs (git, and
autom4te when that tracer is selected) and the base tools the emitted
Makefile expects on PATH.

Host autotools are reported informationally: the first version of each
tool in the chain bootstraps with whatever the host provides.

Examples:
  # Check with settings from the config file
  autoplan check

  # Machine-readable results
  autoplan check --json`,
		RunE: runCheck,
	}

	cmd.Flags().StringVarP(&checkManifest, "file", "f", config.DefaultManifestFile,
		"Manifest consulted for extra base tools")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	checker := prereq.NewChecker()
	if cfg.Tracer.Value == config.TracerAutom4te {
		checker.RequireAutom4te()
	}

	// A manifest that lists help2man as a base tool makes it required.
	if _, err := os.Stat(checkManifest); err == nil {
		if manifest, err := config.NewManifestLoader().LoadFile(checkManifest); err == nil {
			for _, tool := range manifest.Spec.BaseTools {
				if tool == "help2man" {
					checker.RequireHelp2man()
				}
			}
		}
	}

	results, err := checker.Check()

	if cfg.JSON.Value {
		data, jsonErr := json.MarshalIndent(results, "", "  ")
		if jsonErr != nil {
			return jsonErr
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return fatal(cmd, err)
	}

	output.Bold("Checking prerequisites")
	for _, r := range results {
		switch {
		case r.Found:
			if r.Required {
				output.Success("%s", r.Message)
			} else {
				output.Info("  %s", r.Message)
			}
		case r.Required:
			output.Error("%s", r.Message)
			if r.Suggestion != "" {
				output.Info("  %s", r.Suggestion)
			}
		default:
			output.Warn("%s", r.Message)
		}
	}

	if err != nil {
		return fatal(cmd, err)
	}

	output.Success("All prerequisites satisfied")
	return nil
}
