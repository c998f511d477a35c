package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult contains the result of validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// Error returns a formatted string of all validation errors
func (r *ValidationResult) Error() string {
	if r.Valid || len(r.Errors) == 0 {
		return ""
	}
	var errStrs []string
	for _, e := range r.Errors {
		errStrs = append(errStrs, e.Error())
	}
	return strings.Join(errStrs, "; ")
}

// ManifestValidator validates BuildManifest documents
type ManifestValidator struct{}

// NewManifestValidator creates a new validator
func NewManifestValidator() *ManifestValidator {
	return &ManifestValidator{}
}

// Validate validates a BuildManifest and returns a ValidationResult
func (v *ManifestValidator) Validate(manifest *BuildManifest) *ValidationResult {
	if manifest == nil {
		return &ValidationResult{
			Valid:  false,
			Errors: []ValidationError{{Field: "manifest", Message: "cannot be nil"}},
		}
	}

	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	fail := func(field, message string) {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{Field: field, Message: message})
	}

	if manifest.APIVersion != SupportedAPIVersion {
		fail("apiVersion", fmt.Sprintf("unsupported apiVersion %q, expected %q", manifest.APIVersion, SupportedAPIVersion))
	}

	if manifest.Kind != SupportedKind {
		fail("kind", fmt.Sprintf("unsupported kind %q, expected %q", manifest.Kind, SupportedKind))
	}

	if manifest.Metadata.Name == "" {
		fail("metadata.name", "is required")
	}

	if len(manifest.Spec.Packages) == 0 {
		fail("spec.packages", "at least one package is required")
	}

	seen := map[string]bool{}
	for i, pkg := range manifest.Spec.Packages {
		field := fmt.Sprintf("spec.packages[%d]", i)

		if pkg.Name == "" {
			fail(field+".name", "is required")
			continue
		}
		if seen[pkg.Name] {
			fail(field+".name", fmt.Sprintf("duplicate package %q", pkg.Name))
		}
		seen[pkg.Name] = true

		if len(pkg.Versions) == 0 {
			fail(field+".versions", "at least one version is required")
		}
		for j, version := range pkg.Versions {
			if strings.TrimSpace(version) == "" {
				fail(fmt.Sprintf("%s.versions[%d]", field, j), "cannot be empty")
			}
		}
	}

	return result
}

// ValidateInvariants performs validation and returns a simple error
func (v *ManifestValidator) ValidateInvariants(manifest *BuildManifest) error {
	result := v.Validate(manifest)
	if !result.Valid {
		return fmt.Errorf("validation errors: %s", result.Error())
	}
	return nil
}

// FormatValidationErrors returns a kubectl-style error message.
func FormatValidationErrors(result *ValidationResult, filename string) string {
	if result.Valid {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("error: error validating %q:\n", filename))

	for _, err := range result.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}

	return sb.String()
}
