package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/buildplane/autoplan/internal/output"
)

// FileName is the config file looked up in the current and home directories.
const FileName = "autoplan.toml"

// Loader is responsible for loading and merging configuration.
type Loader struct {
	homeDir    string
	configPath string // Explicit --config path
	logger     *output.Logger
}

// NewLoader creates a new Loader.
func NewLoader(homeDir, configPath string, logger *output.Logger) *Loader {
	return &Loader{
		homeDir:    homeDir,
		configPath: configPath,
		logger:     logger,
	}
}

// Load loads and parses config files, merging them in priority order.
// Priority: explicit path > ./autoplan.toml > ~/.autoplan/autoplan.toml.
// All config files are merged, with higher priority values overwriting
// lower ones. Returns the merged FileConfig and the primary (highest
// priority) config file path.
func (l *Loader) Load() (*FileConfig, string, error) {
	// Collect config files in order of increasing priority.
	var configFiles []string

	homePath := filepath.Join(l.homeDir, FileName)
	if _, err := os.Stat(homePath); err == nil {
		configFiles = append(configFiles, homePath)
	}

	localPath := "./" + FileName
	if _, err := os.Stat(localPath); err == nil {
		if absPath, _ := filepath.Abs(localPath); absPath != homePath {
			configFiles = append(configFiles, localPath)
		}
	}

	if l.configPath != "" {
		if _, err := os.Stat(l.configPath); err != nil {
			return nil, "", fmt.Errorf("config file not found: %s", l.configPath)
		}
		absPath, _ := filepath.Abs(l.configPath)
		duplicate := false
		for _, cf := range configFiles {
			if abs, _ := filepath.Abs(cf); abs == absPath {
				duplicate = true
				break
			}
		}
		if !duplicate {
			configFiles = append(configFiles, l.configPath)
		}
	}

	if len(configFiles) == 0 {
		return &FileConfig{}, "", nil
	}

	// Load and merge all configs (later files override earlier ones).
	var merged FileConfig
	var primaryFile string
	for _, configFile := range configFiles {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}

		var cfg FileConfig
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, "", fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}

		mergeFileConfig(&merged, &cfg)
		primaryFile = configFile

		l.warnUnknownKeys(data)

		if l.logger != nil {
			l.logger.Debug("Loaded config file: %s", configFile)
		}
	}

	if err := ValidateFileConfig(&merged); err != nil {
		return nil, "", fmt.Errorf("config validation failed: %w", err)
	}

	return &merged, primaryFile, nil
}

// mergeFileConfig merges src into dst. Non-nil values in src overwrite dst.
func mergeFileConfig(dst, src *FileConfig) {
	if src.Root != nil {
		dst.Root = src.Root
	}
	if src.Mirrors != nil {
		dst.Mirrors = src.Mirrors
	}
	if src.BuildDir != nil {
		dst.BuildDir = src.BuildDir
	}
	if src.ToolsDir != nil {
		dst.ToolsDir = src.ToolsDir
	}
	if src.Gnulib != nil {
		dst.Gnulib = src.Gnulib
	}
	if src.Tracer != nil {
		dst.Tracer = src.Tracer
	}
	if src.Verbose != nil {
		dst.Verbose = src.Verbose
	}
	if src.JSON != nil {
		dst.JSON = src.JSON
	}
	if src.NoColor != nil {
		dst.NoColor = src.NoColor
	}
}

// warnUnknownKeys checks for unknown keys in the config file and logs warnings.
func (l *Loader) warnUnknownKeys(data []byte) {
	if l.logger == nil {
		return
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return // Ignore errors here - main parsing will catch them
	}

	knownKeys := map[string]bool{
		"root":      true,
		"mirrors":   true,
		"build_dir": true,
		"tools_dir": true,
		"gnulib":    true,
		"tracer":    true,
		"verbose":   true,
		"json":      true,
		"no_color":  true,
	}

	for key := range raw {
		if !knownKeys[key] {
			l.logger.Warn("Unknown config key: %s", key)
		}
	}
}
