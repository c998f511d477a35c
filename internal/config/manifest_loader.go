package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ManifestLoader loads and validates YAML build manifests
type ManifestLoader struct {
	validator *ManifestValidator
}

// NewManifestLoader creates a new manifest loader
func NewManifestLoader() *ManifestLoader {
	return &ManifestLoader{
		validator: NewManifestValidator(),
	}
}

// LoadFile loads a build manifest from a YAML file
func (l *ManifestLoader) LoadFile(path string) (*BuildManifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	return l.LoadReader(f, path)
}

// LoadReader loads a build manifest from a reader. A manifest file holds
// exactly one document; extra documents are an error rather than a silent
// skip.
func (l *ManifestLoader) LoadReader(r io.Reader, source string) (*BuildManifest, error) {
	decoder := yaml.NewDecoder(r)

	var manifest BuildManifest
	if err := decoder.Decode(&manifest); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("no build manifest found in %s", source)
		}
		return nil, fmt.Errorf("failed to decode manifest %s: %w", source, err)
	}

	var extra BuildManifest
	if err := decoder.Decode(&extra); err != io.EOF {
		return nil, fmt.Errorf("%s contains more than one document; a manifest holds exactly one", source)
	}

	result := l.validator.Validate(&manifest)
	if !result.Valid {
		return nil, fmt.Errorf("%s", FormatValidationErrors(result, source))
	}

	return &manifest, nil
}
