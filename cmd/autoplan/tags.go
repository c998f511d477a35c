package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/buildplane/autoplan/internal/config"
	"github.com/buildplane/autoplan/internal/executor"
	"github.com/buildplane/autoplan/internal/output"
	"github.com/buildplane/autoplan/internal/paths"
	"github.com/buildplane/autoplan/internal/planner"
	"github.com/buildplane/autoplan/internal/vcs"
)

var (
	tagsManifest string
	tagsResolve  string
	tagsMirrors  string
)

// newTagsCmd creates the tags command.
func newTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags <package>",
		Short: "List tags in a package mirror",
		Long: `Tags lists every tag in a package's local mirror, or resolves one version
to its tag the same way plan does.

The manifest is consulted for a repository override when present; the
package name is used as the mirror directory otherwise.

Examples:
  # List all tags in the autoconf mirror
  autoplan tags autoconf

  # Resolve a version the way plan would
  autoplan tags autoconf --resolve 2.69`,
		Args: cobra.ExactArgs(1),
		RunE: runTags,
	}

	cmd.Flags().StringVarP(&tagsManifest, "file", "f", config.DefaultManifestFile,
		"Manifest consulted for repository overrides")
	cmd.Flags().StringVar(&tagsResolve, "resolve", "",
		"Resolve this version to its tag instead of listing")
	cmd.Flags().StringVar(&tagsMirrors, "mirrors", "",
		"Mirrors directory (default <root>/mirrors)")

	return cmd
}

func runTags(cmd *cobra.Command, args []string) error {
	name := args[0]

	mirrors := cfg.Mirrors.Value
	if mirrors == "" {
		if cfg.Root.Value == "" {
			return fatal(cmd, &planner.EnvironmentError{
				Missing: "toolchain root",
				Hint:    "set AUTOPLAN_ROOT, pass --root, or set root in autoplan.toml",
			})
		}
		mirrors = paths.MirrorsPath(cfg.Root.Value)
	}

	// The manifest is optional here; without one the package name doubles
	// as the mirror directory.
	spec := planner.PackageSpec{Name: name}
	if _, err := os.Stat(tagsManifest); err == nil {
		manifest, err := config.NewManifestLoader().LoadFile(tagsManifest)
		if err != nil {
			return fatal(cmd, err)
		}
		for _, s := range manifest.ToSpecs() {
			if s.Name == name {
				spec = s
			}
		}
	}

	repo, err := vcs.Open(filepath.Join(mirrors, spec.MirrorName()), executor.NewOSRunner())
	if err != nil {
		return fatal(cmd, err)
	}

	tags, err := repo.Tags(cmd.Context())
	if err != nil {
		return fatal(cmd, err)
	}

	if tagsResolve != "" {
		tag, err := planner.ResolveTag(tags, name, tagsResolve)
		if err != nil {
			return fatal(cmd, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), tag)
		return nil
	}

	if len(tags) == 0 {
		output.Warn("No tags in %s", repo.Dir())
		return nil
	}
	for _, tag := range tags {
		fmt.Fprintln(cmd.OutOrStdout(), tag)
	}
	return nil
}
