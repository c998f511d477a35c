// Package version provides version information and CLI command support for autoplan.
package version

import (
	"encoding/json"
	"fmt"

	goversion "github.com/caarlos0/go-version"
	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags
// These are set by GoReleaser or Makefile during the build process:
//
//	-X github.com/buildplane/autoplan/internal/version.version={{.Version}}
//	-X github.com/buildplane/autoplan/internal/version.commit={{.FullCommit}}
//	-X github.com/buildplane/autoplan/internal/version.date={{.Date}}
var (
	version = ""
	commit  = ""
	date    = ""
	builtBy = ""
)

// Info returns the build information of the running binary. Values set at
// build time win; otherwise whatever runtime/debug can recover is used.
func Info() goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails(
			"autoplan",
			"Plan reproducible bootstrap builds of the GNU autotools chain.",
			"https://github.com/buildplane/autoplan",
		),
		func(i *goversion.Info) {
			if commit != "" {
				i.GitCommit = commit
			}
			if version != "" {
				i.GitVersion = version
			}
			if date != "" {
				i.BuildDate = date
			}
			if builtBy != "" {
				i.BuiltBy = builtBy
			}
		},
	)
}

// NewCmd creates the version command.
func NewCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := Info()

			if jsonOutput {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info in JSON format")

	return cmd
}
