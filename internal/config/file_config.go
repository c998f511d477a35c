package config

import "fmt"

// Tracer names accepted by the tracer config key.
const (
	TracerScan     = "scan"
	TracerAutom4te = "autom4te"
)

// FileConfig represents the raw autoplan.toml file contents.
// All fields are pointers to distinguish "not set" from "set to zero/false".
type FileConfig struct {
	// Toolchain layout
	Root     *string `toml:"root"`
	Mirrors  *string `toml:"mirrors"`
	BuildDir *string `toml:"build_dir"`
	ToolsDir *string `toml:"tools_dir"`
	Gnulib   *string `toml:"gnulib"`

	// Planning settings
	Tracer *string `toml:"tracer"` // "scan" or "autom4te"

	// Output settings
	Verbose *bool `toml:"verbose"`
	JSON    *bool `toml:"json"`
	NoColor *bool `toml:"no_color"`
}

// IsEmpty returns true if no configuration values are set.
func (f *FileConfig) IsEmpty() bool {
	return f.Root == nil &&
		f.Mirrors == nil &&
		f.BuildDir == nil &&
		f.ToolsDir == nil &&
		f.Gnulib == nil &&
		f.Tracer == nil &&
		f.Verbose == nil &&
		f.JSON == nil &&
		f.NoColor == nil
}

// ValidateFileConfig validates the FileConfig values before merging.
// This is called when loading the config file to provide early error messages.
func ValidateFileConfig(cfg *FileConfig) error {
	if cfg == nil {
		return nil
	}

	if cfg.Tracer != nil {
		if *cfg.Tracer != TracerScan && *cfg.Tracer != TracerAutom4te {
			return fmt.Errorf("invalid tracer in config file: %s (must be %q or %q)", *cfg.Tracer, TracerScan, TracerAutom4te)
		}
	}

	return nil
}
