package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buildplane/autoplan/internal/config"
	"github.com/buildplane/autoplan/internal/output"
)

var (
	initForce bool
	initYes   bool
)

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up the config file and a starter manifest",
		Long: `Init writes the user-level autoplan.toml and a starter build manifest in
the current directory.

By default this runs interactively; existing values are offered as
defaults when a config file is already present. With --yes, or when not
attached to a terminal, defaults are written without prompting.

Examples:
  # Interactive setup
  autoplan init

  # Accept defaults, overwrite existing files
  autoplan init --yes --force`,
		RunE: runInit,
	}

	cmd.Flags().BoolVar(&initForce, "force", false,
		"Overwrite existing config and manifest")
	cmd.Flags().BoolVarP(&initYes, "yes", "y", false,
		"Accept defaults without prompting")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	setup := config.NewInteractiveSetup(homeDir)
	interactive := !initYes && config.IsInteractive()

	if setup.ConfigExists() && !initForce && !interactive {
		return fmt.Errorf("configuration already exists at %s (use --force to overwrite)",
			config.NewWriter(homeDir).Path())
	}

	var fileCfg *config.FileConfig
	var err error
	if interactive {
		fileCfg, err = setup.Run()
		if err != nil {
			return fatal(cmd, err)
		}
	} else {
		fileCfg = setup.RunWithDefaults()
	}

	if err := setup.WriteConfig(fileCfg); err != nil {
		return fatal(cmd, err)
	}
	output.Success("Wrote %s", config.NewWriter(homeDir).Path())

	if _, err := os.Stat(config.DefaultManifestFile); err == nil && !initForce {
		if !interactive {
			output.Info("Keeping existing %s", config.DefaultManifestFile)
			return nil
		}
		overwrite, err := output.ConfirmPrompt(fmt.Sprintf("Overwrite existing %s?", config.DefaultManifestFile))
		if err != nil {
			return fatal(cmd, err)
		}
		if !overwrite {
			output.Info("Keeping existing %s", config.DefaultManifestFile)
			return nil
		}
	}

	preset := config.PresetChain
	if interactive {
		preset, err = setup.PromptManifestPreset()
		if err != nil {
			return fatal(cmd, err)
		}
	}

	manifest := config.DefaultManifest("bootstrap")
	if preset == config.PresetSkeleton {
		manifest = skeletonManifest()
	}

	if err := config.WriteManifest(config.DefaultManifestFile, manifest); err != nil {
		return fatal(cmd, err)
	}
	output.Success("Wrote %s", config.DefaultManifestFile)
	output.Info("Next: autoplan plan -f %s -o Makefile", config.DefaultManifestFile)

	return nil
}

// skeletonManifest is the minimal valid manifest, with one placeholder
// package for the user to replace.
func skeletonManifest() *config.BuildManifest {
	return &config.BuildManifest{
		APIVersion: config.SupportedAPIVersion,
		Kind:       config.SupportedKind,
		Metadata:   config.Metadata{Name: "bootstrap"},
		Spec: config.ManifestSpec{
			Packages: []config.PackageEntry{
				{Name: "hello", Versions: []string{"2.12"}},
			},
		},
	}
}
