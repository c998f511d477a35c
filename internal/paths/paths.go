// Package paths provides centralized path management for autoplan.
package paths

import (
	"os"
	"path/filepath"
)

// Directory constants relative to the toolchain root.
const (
	MirrorsDirName = "mirrors"
	BuildDirName   = "build"
	ToolsDirName   = "tools"
	GnulibDirName  = "gnulib"
)

const DefaultHomeDirName = ".autoplan"

// DefaultHomeDir returns $HOME/.autoplan or falls back to the current
// directory.
func DefaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultHomeDirName
	}
	return filepath.Join(home, DefaultHomeDirName)
}

// Toolchain layout under the root directory.

// MirrorsPath returns the directory holding the local git mirrors.
func MirrorsPath(root string) string {
	return filepath.Join(root, MirrorsDirName)
}

// BuildPath returns the scratch directory builds extract into.
func BuildPath(root string) string {
	return filepath.Join(root, BuildDirName)
}

// ToolsPath returns the directory built tools install under.
func ToolsPath(root string) string {
	return filepath.Join(root, ToolsDirName)
}

// GnulibPath returns the gnulib checkout consulted by gnulib-style
// bootstraps. It lives beside the other mirrors.
func GnulibPath(root string) string {
	return filepath.Join(MirrorsPath(root), GnulibDirName)
}

// MirrorPath returns the working tree of one package mirror.
func MirrorPath(root, repo string) string {
	return filepath.Join(MirrorsPath(root), repo)
}
