package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer handles writing configuration to homeDir/autoplan.toml.
type Writer struct {
	homeDir string
}

// NewWriter creates a new Writer for the given home directory.
func NewWriter(homeDir string) *Writer {
	return &Writer{
		homeDir: homeDir,
	}
}

// Path returns the full path to autoplan.toml in homeDir.
func (w *Writer) Path() string {
	return filepath.Join(w.homeDir, FileName)
}

// Exists returns true if autoplan.toml already exists in homeDir.
func (w *Writer) Exists() bool {
	_, err := os.Stat(w.Path())
	return err == nil
}

// Write saves the FileConfig to homeDir/autoplan.toml.
// Creates homeDir if it doesn't exist.
func (w *Writer) Write(cfg *FileConfig) error {
	if err := os.MkdirAll(w.homeDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", w.homeDir, err)
	}

	content := w.generateTOMLWithComments(cfg)

	if err := os.WriteFile(w.Path(), []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// generateTOMLWithComments creates TOML content with section comments.
func (w *Writer) generateTOMLWithComments(cfg *FileConfig) string {
	var content string

	content += "# autoplan configuration file\n"
	content += "# Priority: default < autoplan.toml < environment < CLI flag\n"
	content += "#\n"
	content += fmt.Sprintf("# Location: %s\n", w.Path())
	content += "# Override with: --config /path/to/autoplan.toml\n"
	content += "\n"

	content += "# =============================================================================\n"
	content += "# Toolchain Layout\n"
	content += "# =============================================================================\n\n"

	if cfg.Root != nil {
		content += fmt.Sprintf("root = %q\n", *cfg.Root)
	} else {
		content += "# root = \"/opt/autoplan\"\n"
	}

	if cfg.Mirrors != nil {
		content += fmt.Sprintf("mirrors = %q\n", *cfg.Mirrors)
	} else {
		content += "# mirrors = \"<root>/mirrors\"\n"
	}

	if cfg.BuildDir != nil {
		content += fmt.Sprintf("build_dir = %q\n", *cfg.BuildDir)
	} else {
		content += "# build_dir = \"<root>/build\"\n"
	}

	if cfg.ToolsDir != nil {
		content += fmt.Sprintf("tools_dir = %q\n", *cfg.ToolsDir)
	} else {
		content += "# tools_dir = \"<root>/tools\"\n"
	}

	if cfg.Gnulib != nil {
		content += fmt.Sprintf("gnulib = %q\n", *cfg.Gnulib)
	} else {
		content += "# gnulib = \"<mirrors>/gnulib\"\n"
	}

	content += "\n"

	content += "# =============================================================================\n"
	content += "# Planning Settings\n"
	content += "# =============================================================================\n\n"

	if cfg.Tracer != nil {
		content += fmt.Sprintf("tracer = %q\n", *cfg.Tracer)
	} else {
		content += "# tracer = \"scan\"\n"
	}

	content += "\n"

	content += "# =============================================================================\n"
	content += "# Output Settings (apply to all commands)\n"
	content += "# =============================================================================\n\n"

	if cfg.Verbose != nil && *cfg.Verbose {
		content += "verbose = true\n"
	} else {
		content += "# verbose = false\n"
	}

	if cfg.JSON != nil && *cfg.JSON {
		content += "json = true\n"
	} else {
		content += "# json = false\n"
	}

	if cfg.NoColor != nil && *cfg.NoColor {
		content += "no_color = true\n"
	} else {
		content += "# no_color = false\n"
	}

	return content
}
