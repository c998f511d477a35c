package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Manifest presets offered by the init flow.
const (
	PresetChain    = "gnu bootstrap chain (autoconf, automake, libtool)"
	PresetSkeleton = "empty skeleton"
)

// InteractiveSetup handles interactive configuration prompts.
type InteractiveSetup struct {
	homeDir  string
	writer   *Writer
	defaults *FileConfig
}

// NewInteractiveSetup creates a new InteractiveSetup for the given home directory.
func NewInteractiveSetup(homeDir string) *InteractiveSetup {
	return &InteractiveSetup{
		homeDir:  homeDir,
		writer:   NewWriter(homeDir),
		defaults: &FileConfig{},
	}
}

// IsInteractive returns true if the terminal supports interactive input.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ShouldPrompt returns true if interactive prompts should be shown.
// Returns true if: terminal is interactive AND config doesn't exist.
func (s *InteractiveSetup) ShouldPrompt() bool {
	return IsInteractive() && !s.writer.Exists()
}

// ConfigExists returns true if autoplan.toml exists in homeDir.
func (s *InteractiveSetup) ConfigExists() bool {
	return s.writer.Exists()
}

// LoadDefaults loads existing config values to use as defaults in prompts.
func (s *InteractiveSetup) LoadDefaults() *FileConfig {
	if !s.writer.Exists() {
		return s.defaults
	}

	loader := NewLoader(s.homeDir, "", nil)
	cfg, _, err := loader.Load()
	if err != nil {
		return s.defaults
	}

	s.defaults = cfg
	return cfg
}

// Run executes the interactive configuration flow.
// Returns the configured FileConfig or error if cancelled.
func (s *InteractiveSetup) Run() (*FileConfig, error) {
	cfg := s.LoadDefaults()

	fmt.Println()
	fmt.Println("Welcome to autoplan configuration!")
	fmt.Println("Press Ctrl+C at any time to cancel.")
	fmt.Println()

	root, err := s.promptRoot(cfg)
	if err != nil {
		return nil, err
	}
	cfg.Root = &root

	tracer, err := s.promptTracer(cfg)
	if err != nil {
		return nil, err
	}
	cfg.Tracer = &tracer

	return cfg, nil
}

// RunWithDefaults returns a FileConfig with default values.
// Used when terminal is non-interactive.
func (s *InteractiveSetup) RunWithDefaults() *FileConfig {
	root := "/opt/autoplan"
	tracer := TracerScan

	return &FileConfig{
		Root:   &root,
		Tracer: &tracer,
	}
}

// WriteConfig writes the configuration to homeDir/autoplan.toml.
func (s *InteractiveSetup) WriteConfig(cfg *FileConfig) error {
	return s.writer.Write(cfg)
}

// PromptManifestPreset asks which starter manifest to write.
func (s *InteractiveSetup) PromptManifestPreset() (string, error) {
	prompt := promptui.Select{
		Label: "Select starter manifest",
		Items: []string{PresetChain, PresetSkeleton},
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "▸ {{ . | cyan }}",
			Inactive: "  {{ . }}",
			Selected: "✓ Manifest: {{ . | green }}",
		},
	}

	_, result, err := prompt.Run()
	if err != nil {
		return "", handlePromptError(err)
	}

	return result, nil
}

// WriteManifest writes a starter manifest to path.
func WriteManifest(path string, manifest *BuildManifest) error {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// promptRoot prompts the user for the toolchain root directory.
func (s *InteractiveSetup) promptRoot(cfg *FileConfig) (string, error) {
	defaultValue := "/opt/autoplan"
	if cfg.Root != nil && *cfg.Root != "" {
		defaultValue = *cfg.Root
	}

	validate := func(input string) error {
		if input == "" {
			return fmt.Errorf("root cannot be empty")
		}
		if !filepath.IsAbs(input) {
			return fmt.Errorf("root must be an absolute path")
		}
		return nil
	}

	prompt := promptui.Prompt{
		Label:    "Toolchain root directory",
		Default:  defaultValue,
		Validate: validate,
		Templates: &promptui.PromptTemplates{
			Prompt:  "{{ . }}: ",
			Valid:   "{{ . | green }}: ",
			Invalid: "{{ . | red }}: ",
			Success: "✓ Root: ",
		},
	}

	result, err := prompt.Run()
	if err != nil {
		return "", handlePromptError(err)
	}

	return result, nil
}

// promptTracer prompts the user to select how configure.ac gets inspected.
func (s *InteractiveSetup) promptTracer(cfg *FileConfig) (string, error) {
	options := []string{TracerScan, TracerAutom4te}

	defaultIdx := 0
	if cfg.Tracer != nil && *cfg.Tracer == TracerAutom4te {
		defaultIdx = 1
	}

	prompt := promptui.Select{
		Label:     "Select macro tracer",
		Items:     options,
		CursorPos: defaultIdx,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "▸ {{ . | cyan }}",
			Inactive: "  {{ . }}",
			Selected: "✓ Tracer: {{ . | green }}",
		},
	}

	_, result, err := prompt.Run()
	if err != nil {
		return "", handlePromptError(err)
	}

	return result, nil
}

// handlePromptError converts promptui errors to user-friendly messages.
func handlePromptError(err error) error {
	if err == promptui.ErrInterrupt {
		return fmt.Errorf("configuration cancelled")
	}
	if err == promptui.ErrEOF {
		return fmt.Errorf("configuration cancelled (EOF)")
	}
	return err
}
