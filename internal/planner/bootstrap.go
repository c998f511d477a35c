package planner

import (
	"os"
	"path/filepath"
)

// SelectStrategy decides how a checked-out tree regenerates its build
// system. First match wins, and every tree gets an answer:
//
//  1. a generated configure script ships in the tree: nothing to do
//  2. a gnulib directory: gnulib bootstrap
//  3. bootstrap.sh: run it
//  4. bootstrap: run it
//  5. otherwise: plain autoreconf
//
// The second return is true when the tree carries an autoheader.sh
// artifact, whose regeneration loop needs a stale-stamp workaround before
// any bootstrap runs.
func SelectStrategy(dir string) (Strategy, bool) {
	autoheaderBug := fileExists(filepath.Join(dir, "autoheader.sh"))

	switch {
	case fileExists(filepath.Join(dir, "configure")):
		return StrategyNone, autoheaderBug
	case dirExists(filepath.Join(dir, "gnulib")):
		return StrategyGnulib, autoheaderBug
	case fileExists(filepath.Join(dir, "bootstrap.sh")):
		return StrategyBootstrapSh, autoheaderBug
	case fileExists(filepath.Join(dir, "bootstrap")):
		return StrategyBootstrap, autoheaderBug
	default:
		return StrategyAutoreconf, autoheaderBug
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
