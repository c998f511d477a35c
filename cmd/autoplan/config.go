package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/buildplane/autoplan/internal/config"
	"github.com/buildplane/autoplan/internal/output"
)

// keyAliases maps alternative key names to the canonical names used in
// autoplan.toml.
var keyAliases = map[string]string{
	"build-dir": "build_dir",
	"tools-dir": "tools_dir",
	"no-color":  "no_color",
}

func normalizeKey(key string) string {
	if canonical, ok := keyAliases[key]; ok {
		return canonical
	}
	return key
}

// newConfigCmd creates the config parent command with all subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage the autoplan configuration file.

Subcommands:
  show    Display current effective configuration with sources
  set     Set a value in the user-level config file

Examples:
  # Show current configuration
  autoplan config show

  # Set the toolchain root
  autoplan config set root /opt/autoplan

  # Switch to the autom4te tracer
  autoplan config set tracer autom4te`,
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigSetCmd(),
	)

	return cmd
}

// newConfigShowCmd creates the config show subcommand.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current effective configuration",
		Long: `Display the current effective configuration with sources.

Shows all configuration values and where they came from:
  - default:       Built-in default value
  - autoplan.toml: Value from a config file
  - environment:   Value from an environment variable
  - flag:          Value from a command-line flag`,
		RunE: runConfigShow,
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader := config.NewLoader(homeDir, configPath, output.DefaultLogger)
	fileCfg, configFilePath, err := loader.Load()
	if err != nil {
		return fatal(cmd, err)
	}

	eff := buildEffective(cmd, fileCfg, configFilePath)

	if eff.JSON.Value {
		return showJSON(cmd, eff)
	}

	eff.ToTable(os.Stdout)

	if eff.ConfigFilePath != "" {
		fmt.Printf("\nConfig file: %s\n", eff.ConfigFilePath)
	} else {
		fmt.Println("\nNo config file loaded")
	}

	return nil
}

func showJSON(cmd *cobra.Command, eff *config.EffectiveConfig) error {
	result := map[string]interface{}{
		"root":        eff.Root.Value,
		"mirrors":     eff.Mirrors.Value,
		"build_dir":   eff.BuildDir.Value,
		"tools_dir":   eff.ToolsDir.Value,
		"gnulib":      eff.Gnulib.Value,
		"tracer":      eff.Tracer.Value,
		"verbose":     eff.Verbose.Value,
		"json":        eff.JSON.Value,
		"no_color":    eff.NoColor.Value,
		"config_file": eff.ConfigFilePath,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// newConfigSetCmd creates the config set subcommand.
func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a value in the user-level config file.

Available keys:
  root       Toolchain root directory (absolute path)
  mirrors    Mirrors directory override
  build_dir  Build scratch directory override
  tools_dir  Install prefix directory override
  gnulib     Gnulib checkout override
  tracer     Requirement tracer ("scan" or "autom4te")
  verbose    Enable verbose logging (true/false)
  json       Output in JSON format (true/false)
  no_color   Disable colored output (true/false)

Examples:
  # Set the toolchain root
  autoplan config set root /opt/autoplan

  # Keep mirrors on a faster disk
  autoplan config set mirrors /srv/mirrors`,
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := normalizeKey(args[0])
	value := args[1]

	writer := config.NewWriter(homeDir)

	// Mutate only the user-level file; merged values from other locations
	// stay where they are.
	fileCfg := &config.FileConfig{}
	if data, err := os.ReadFile(writer.Path()); err == nil {
		if err := toml.Unmarshal(data, fileCfg); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	switch key {
	case "root":
		if !filepath.IsAbs(value) {
			return fmt.Errorf("invalid root: %s (must be an absolute path)", value)
		}
		fileCfg.Root = &value

	case "mirrors":
		fileCfg.Mirrors = &value

	case "build_dir":
		fileCfg.BuildDir = &value

	case "tools_dir":
		fileCfg.ToolsDir = &value

	case "gnulib":
		fileCfg.Gnulib = &value

	case "tracer":
		if value != config.TracerScan && value != config.TracerAutom4te {
			return fmt.Errorf("invalid tracer: %s (must be %q or %q)",
				value, config.TracerScan, config.TracerAutom4te)
		}
		fileCfg.Tracer = &value

	case "verbose", "json", "no_color":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %s (must be true or false)", key, value)
		}
		switch key {
		case "verbose":
			fileCfg.Verbose = &b
		case "json":
			fileCfg.JSON = &b
		case "no_color":
			fileCfg.NoColor = &b
		}

	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := writer.Write(fileCfg); err != nil {
		return fatal(cmd, err)
	}

	output.Success("Set %s = %s", key, value)
	output.Info("Config saved to: %s", writer.Path())

	return nil
}
