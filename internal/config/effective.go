package config

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// EnvRoot is the environment variable consulted for the toolchain root.
// It sits between autoplan.toml and the --root flag in the priority chain.
const EnvRoot = "AUTOPLAN_ROOT"

// EffectiveConfig represents the final merged configuration after applying
// the priority chain: default < autoplan.toml < environment < flag.
type EffectiveConfig struct {
	// Toolchain layout
	Root     StringValue
	Mirrors  StringValue
	BuildDir StringValue
	ToolsDir StringValue
	Gnulib   StringValue

	// Planning settings
	Tracer StringValue

	// Output settings
	Verbose BoolValue
	JSON    BoolValue
	NoColor BoolValue

	// ConfigFilePath is the path of the loaded config file, empty if none.
	ConfigFilePath string
}

// NewEffectiveConfig creates a new EffectiveConfig with default values.
// Directory values default to empty, meaning derived from the root.
func NewEffectiveConfig() *EffectiveConfig {
	return &EffectiveConfig{
		Root:     NewStringValue(""),
		Mirrors:  NewStringValue(""),
		BuildDir: NewStringValue(""),
		ToolsDir: NewStringValue(""),
		Gnulib:   NewStringValue(""),
		Tracer:   NewStringValue(TracerScan),
		Verbose:  NewBoolValue(false),
		JSON:     NewBoolValue(false),
		NoColor:  NewBoolValue(false),
	}
}

// ToTable writes the configuration as a formatted table.
func (c *EffectiveConfig) ToTable(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
	fmt.Fprintf(tw, "root\t%s\t%s\n", orNotSet(c.Root.Value), c.Root.Source)
	fmt.Fprintf(tw, "mirrors\t%s\t%s\n", orNotSet(c.Mirrors.Value), c.Mirrors.Source)
	fmt.Fprintf(tw, "build_dir\t%s\t%s\n", orNotSet(c.BuildDir.Value), c.BuildDir.Source)
	fmt.Fprintf(tw, "tools_dir\t%s\t%s\n", orNotSet(c.ToolsDir.Value), c.ToolsDir.Source)
	fmt.Fprintf(tw, "gnulib\t%s\t%s\n", orNotSet(c.Gnulib.Value), c.Gnulib.Source)
	fmt.Fprintf(tw, "tracer\t%s\t%s\n", c.Tracer.Value, c.Tracer.Source)
	fmt.Fprintf(tw, "verbose\t%t\t%s\n", c.Verbose.Value, c.Verbose.Source)
	fmt.Fprintf(tw, "json\t%t\t%s\n", c.JSON.Value, c.JSON.Source)
	fmt.Fprintf(tw, "no_color\t%t\t%s\n", c.NoColor.Value, c.NoColor.Source)
	tw.Flush()
}

// orNotSet keeps empty directory values readable in the table. Empty
// means the value is derived from the root at plan time.
func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
