package config

import "github.com/spf13/cobra"

// ApplyStringConfig applies a config file string value if the flag was not
// explicitly set and the config value is present. Returns the effective
// value and its source. Flags the running command does not define count as
// not set.
func ApplyStringConfig(cmd *cobra.Command, flagName string, currentValue string, configValue *string) (string, ConfigSource) {
	if cmd.Flags().Changed(flagName) {
		return currentValue, SourceFlag
	}

	if configValue != nil {
		return *configValue, SourceConfigFile
	}

	return currentValue, SourceDefault
}

// ApplyBoolConfig applies a config file bool value if the flag was not
// explicitly set and the config value is present. Keeps a config file's
// true from being clobbered by an unset flag's false.
func ApplyBoolConfig(cmd *cobra.Command, flagName string, currentValue bool, configValue *bool) (bool, ConfigSource) {
	if cmd.Flags().Changed(flagName) {
		return currentValue, SourceFlag
	}

	if configValue != nil {
		return *configValue, SourceConfigFile
	}

	return currentValue, SourceDefault
}

// ApplyEnvString applies an environment variable string value if set and
// the flag was not changed. This handles the priority:
// autoplan.toml < env < flag.
func ApplyEnvString(cmd *cobra.Command, flagName string, currentValue string, envValue string, currentSource ConfigSource) (string, ConfigSource) {
	if cmd.Flags().Changed(flagName) {
		return currentValue, SourceFlag
	}

	if envValue != "" {
		return envValue, SourceEnvironment
	}

	return currentValue, currentSource
}

// ApplyEnvBool applies an environment variable bool value if set and the
// flag was not changed. A set variable means "enable", matching the
// NO_COLOR convention.
func ApplyEnvBool(cmd *cobra.Command, flagName string, currentValue bool, envSet bool, currentSource ConfigSource) (bool, ConfigSource) {
	if cmd.Flags().Changed(flagName) {
		return currentValue, SourceFlag
	}

	if envSet {
		return true, SourceEnvironment
	}

	return currentValue, currentSource
}
