package planner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTree materializes a source tree: entries ending in "/" become
// directories, everything else an empty file.
func makeTree(t *testing.T, entries ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, entry := range entries {
		path := filepath.Join(dir, entry)
		if strings.HasSuffix(entry, "/") {
			require.NoError(t, os.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}
	return dir
}

func TestSelectStrategy(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		want    Strategy
	}{
		{"configure ships", []string{"configure", "configure.ac"}, StrategyNone},
		{"gnulib tree", []string{"gnulib/", "configure.ac"}, StrategyGnulib},
		{"bootstrap.sh", []string{"bootstrap.sh", "configure.ac"}, StrategyBootstrapSh},
		{"bootstrap", []string{"bootstrap", "configure.ac"}, StrategyBootstrap},
		{"bare tree", []string{"configure.ac"}, StrategyAutoreconf},
		{"empty tree", nil, StrategyAutoreconf},

		// Priority order: the first hit wins even when later markers exist.
		{"configure beats everything", []string{"configure", "gnulib/", "bootstrap.sh", "bootstrap"}, StrategyNone},
		{"gnulib beats bootstrap scripts", []string{"gnulib/", "bootstrap.sh", "bootstrap"}, StrategyGnulib},
		{"bootstrap.sh beats bootstrap", []string{"bootstrap.sh", "bootstrap"}, StrategyBootstrapSh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := makeTree(t, tt.entries...)
			got, _ := SelectStrategy(dir)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectStrategyGnulibMustBeDirectory(t *testing.T) {
	// A stray file named gnulib does not make this a gnulib tree.
	dir := makeTree(t, "gnulib", "bootstrap.sh")
	got, _ := SelectStrategy(dir)
	assert.Equal(t, StrategyBootstrapSh, got)
}

func TestSelectStrategyConfigureMustBeFile(t *testing.T) {
	dir := makeTree(t, "configure/", "bootstrap")
	got, _ := SelectStrategy(dir)
	assert.Equal(t, StrategyBootstrap, got)
}

func TestSelectStrategyAutoheaderWorkaround(t *testing.T) {
	dir := makeTree(t, "autoheader.sh", "bootstrap.sh")
	strategy, workaround := SelectStrategy(dir)
	assert.Equal(t, StrategyBootstrapSh, strategy)
	assert.True(t, workaround)

	// The workaround flag is independent of the chosen strategy.
	dir = makeTree(t, "autoheader.sh", "configure")
	strategy, workaround = SelectStrategy(dir)
	assert.Equal(t, StrategyNone, strategy)
	assert.True(t, workaround)

	dir = makeTree(t, "bootstrap.sh")
	_, workaround = SelectStrategy(dir)
	assert.False(t, workaround)
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "none", StrategyNone.String())
	assert.Equal(t, "gnulib", StrategyGnulib.String())
	assert.Equal(t, "bootstrap.sh", StrategyBootstrapSh.String())
	assert.Equal(t, "bootstrap", StrategyBootstrap.String())
	assert.Equal(t, "autoreconf", StrategyAutoreconf.String())
}
