package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buildplane/autoplan/internal/config"
	"github.com/buildplane/autoplan/internal/output"
	"github.com/buildplane/autoplan/internal/paths"
	"github.com/buildplane/autoplan/internal/version"
)

// Command group IDs for organized help output.
const (
	GroupPlanning   = "planning"
	GroupInspection = "inspection"
)

// Local variables for flag binding (Cobra requires pointers to local vars)
var (
	homeDir    string
	configPath string
	rootDir    string
	verbose    bool
	jsonMode   bool
	noColor    bool

	// cfg is the merged configuration built in persistentPreRunE. Commands
	// that skip config loading leave it nil.
	cfg *config.EffectiveConfig
)

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autoplan",
		Short: "Plan reproducible bootstrap builds of the GNU autotools chain",
		Long: `autoplan resolves a build manifest against local git mirrors and emits a
Makefile that builds the requested tool versions from source, oldest first,
each version bootstrapped with the tools built before it.

Planning only reads the mirrors; all building happens later, under make.

Examples:
  # Set up the config file and a starter manifest
  autoplan init

  # Plan the manifest into a Makefile
  autoplan plan -f autoplan.yaml -o Makefile

  # Inspect the plan without writing anything
  autoplan plan --format yaml

  # Check the host has the tools planning and building need
  autoplan check`,
		PersistentPreRunE: persistentPreRunE,
	}

	// Global flags available on all commands
	cmd.PersistentFlags().StringVarP(&homeDir, "home", "H", paths.DefaultHomeDir(),
		"Directory holding the user-level config file")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to autoplan.toml file")
	cmd.PersistentFlags().StringVar(&rootDir, "root", "",
		"Toolchain root directory (mirrors, build scratch and installs live under it)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&jsonMode, "json", false,
		"Output in JSON format")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")

	cmd.AddGroup(&cobra.Group{ID: GroupPlanning, Title: "Planning Commands:"})
	cmd.AddGroup(&cobra.Group{ID: GroupInspection, Title: "Inspection Commands:"})

	registerCommands(cmd)

	return cmd
}

// persistentPreRunE handles configuration loading and global state setup.
func persistentPreRunE(cmd *cobra.Command, args []string) error {
	// init and the config subcommands manage the config file themselves;
	// a broken file must not lock the user out of repairing it.
	if skipsConfigLoad(cmd) {
		output.DefaultLogger.SetNoColor(noColor)
		output.DefaultLogger.SetVerbose(verbose)
		output.DefaultLogger.SetJSONMode(jsonMode)
		return nil
	}

	loader := config.NewLoader(homeDir, configPath, output.DefaultLogger)
	fileCfg, configFilePath, err := loader.Load()
	if err != nil {
		return err
	}

	cfg = buildEffective(cmd, fileCfg, configFilePath)

	output.DefaultLogger.SetNoColor(cfg.NoColor.Value)
	output.DefaultLogger.SetVerbose(cfg.Verbose.Value)
	output.DefaultLogger.SetJSONMode(cfg.JSON.Value)

	if configFilePath != "" {
		output.Debug("Using config file: %s", configFilePath)
	}

	return nil
}

func skipsConfigLoad(cmd *cobra.Command) bool {
	if cmd.Name() == "init" || cmd.Name() == "config" {
		return true
	}
	return cmd.Parent() != nil && cmd.Parent().Name() == "config"
}

// buildEffective merges the priority chain for every key:
// default < autoplan.toml < environment < flag.
func buildEffective(cmd *cobra.Command, fileCfg *config.FileConfig, configFilePath string) *config.EffectiveConfig {
	if fileCfg == nil {
		fileCfg = &config.FileConfig{}
	}

	eff := config.NewEffectiveConfig()
	eff.ConfigFilePath = configFilePath

	root, src := config.ApplyStringConfig(cmd, "root", rootDir, fileCfg.Root)
	root, src = config.ApplyEnvString(cmd, "root", root, os.Getenv(config.EnvRoot), src)
	eff.Root = config.StringValue{Value: root, Source: src}

	mirrors, src := config.ApplyStringConfig(cmd, "mirrors", flagString(cmd, "mirrors"), fileCfg.Mirrors)
	eff.Mirrors = config.StringValue{Value: mirrors, Source: src}

	buildDir, src := config.ApplyStringConfig(cmd, "build-dir", flagString(cmd, "build-dir"), fileCfg.BuildDir)
	eff.BuildDir = config.StringValue{Value: buildDir, Source: src}

	toolsDir, src := config.ApplyStringConfig(cmd, "tools-dir", flagString(cmd, "tools-dir"), fileCfg.ToolsDir)
	eff.ToolsDir = config.StringValue{Value: toolsDir, Source: src}

	gnulib, src := config.ApplyStringConfig(cmd, "gnulib", flagString(cmd, "gnulib"), fileCfg.Gnulib)
	eff.Gnulib = config.StringValue{Value: gnulib, Source: src}

	tracer, src := config.ApplyStringConfig(cmd, "tracer", flagStringOr(cmd, "tracer", config.TracerScan), fileCfg.Tracer)
	eff.Tracer = config.StringValue{Value: tracer, Source: src}

	verboseVal, src := config.ApplyBoolConfig(cmd, "verbose", verbose, fileCfg.Verbose)
	eff.Verbose = config.BoolValue{Value: verboseVal, Source: src}

	jsonVal, src := config.ApplyBoolConfig(cmd, "json", jsonMode, fileCfg.JSON)
	eff.JSON = config.BoolValue{Value: jsonVal, Source: src}

	noColorVal, src := config.ApplyBoolConfig(cmd, "no-color", noColor, fileCfg.NoColor)
	noColorVal, src = config.ApplyEnvBool(cmd, "no-color", noColorVal, os.Getenv("NO_COLOR") != "", src)
	eff.NoColor = config.BoolValue{Value: noColorVal, Source: src}

	return eff
}

// flagString returns the current value of a string flag, or empty when the
// running command does not define it.
func flagString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return v
}

// flagStringOr is flagString with a fallback for commands that do not
// define the flag.
func flagStringOr(cmd *cobra.Command, name, fallback string) string {
	if cmd.Flags().Lookup(name) == nil {
		return fallback
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return fallback
	}
	return v
}

// registerCommands registers all subcommands with appropriate group
// assignments.
func registerCommands(rootCmd *cobra.Command) {
	planCmd := newPlanCmd()
	planCmd.GroupID = GroupPlanning
	initCmd := newInitCmd()
	initCmd.GroupID = GroupPlanning

	tagsCmd := newTagsCmd()
	tagsCmd.GroupID = GroupInspection
	checkCmd := newCheckCmd()
	checkCmd.GroupID = GroupInspection
	configCmd := newConfigCmd()
	configCmd.GroupID = GroupInspection

	rootCmd.AddCommand(
		planCmd,
		initCmd,
		tagsCmd,
		checkCmd,
		configCmd,
		version.NewCmd(),
	)
}
