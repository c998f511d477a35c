package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildplane/autoplan/internal/output"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoaderNoFiles(t *testing.T) {
	loader := NewLoader(t.TempDir(), "", nil)

	cfg, primary, err := loader.Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsEmpty())
	assert.Empty(t, primary)
}

func TestLoaderHomeConfig(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, "root = \"/opt/chain\"\nverbose = true\n")

	cfg, primary, err := NewLoader(home, "", nil).Load()
	require.NoError(t, err)
	assert.Equal(t, path, primary)
	require.NotNil(t, cfg.Root)
	assert.Equal(t, "/opt/chain", *cfg.Root)
	require.NotNil(t, cfg.Verbose)
	assert.True(t, *cfg.Verbose)
	assert.Nil(t, cfg.Tracer)
}

func TestLoaderExplicitOverridesHome(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "root = \"/from-home\"\nverbose = true\n")

	other := t.TempDir()
	explicit := filepath.Join(other, "special.toml")
	require.NoError(t, os.WriteFile(explicit, []byte("root = \"/from-flag\"\n"), 0644))

	cfg, primary, err := NewLoader(home, explicit, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, explicit, primary)
	assert.Equal(t, "/from-flag", *cfg.Root)
	// Values the explicit file leaves out still come from home.
	require.NotNil(t, cfg.Verbose)
	assert.True(t, *cfg.Verbose)
}

func TestLoaderExplicitMissing(t *testing.T) {
	_, _, err := NewLoader(t.TempDir(), "/does/not/exist.toml", nil).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoaderRejectsBadTracer(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "tracer = \"guess\"\n")

	_, _, err := NewLoader(home, "", nil).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid tracer")
}

func TestLoaderRejectsMalformedTOML(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "root = \n")

	_, _, err := NewLoader(home, "", nil).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoaderWarnsUnknownKeys(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "root = \"/opt/chain\"\nmirros = \"/typo\"\n")

	var buf bytes.Buffer
	logger := output.NewLogger()
	logger.SetOutput(&buf)
	logger.SetNoColor(true)

	_, _, err := NewLoader(home, "", logger).Load()
	require.NoError(t, err, "unknown keys warn, they do not fail")
	assert.Contains(t, buf.String(), "Unknown config key: mirros")
}

func TestMergeFileConfig(t *testing.T) {
	root := "/opt/chain"
	tracer := TracerAutom4te
	verbose := false

	dst := FileConfig{Root: &root}
	src := FileConfig{Tracer: &tracer, Verbose: &verbose}
	mergeFileConfig(&dst, &src)

	assert.Equal(t, "/opt/chain", *dst.Root)
	assert.Equal(t, TracerAutom4te, *dst.Tracer)
	require.NotNil(t, dst.Verbose, "explicit false still merges")
	assert.False(t, *dst.Verbose)
}
