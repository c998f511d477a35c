package config

import "github.com/buildplane/autoplan/internal/planner"

// Manifest envelope values accepted by this build.
const (
	SupportedAPIVersion = "autoplan/v1"
	SupportedKind       = "BuildManifest"
)

// DefaultManifestFile is the manifest path commands use when -f is not
// given.
const DefaultManifestFile = "autoplan.yaml"

// BuildManifest represents a Kubernetes-style build manifest: the package
// list one planning run turns into a Makefile.
type BuildManifest struct {
	APIVersion string       `yaml:"apiVersion"`
	Kind       string       `yaml:"kind"`
	Metadata   Metadata     `yaml:"metadata"`
	Spec       ManifestSpec `yaml:"spec"`
}

// Metadata contains resource identification
type Metadata struct {
	Name        string            `yaml:"name"`
	Labels      map[string]string `yaml:"labels,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
}

// ManifestSpec defines the packages to plan and the base tools the host
// must already provide.
type ManifestSpec struct {
	BaseTools []string       `yaml:"baseTools,omitempty"`
	Packages  []PackageEntry `yaml:"packages"`
}

// PackageEntry is one package of the manifest. Repository defaults to the
// package name when empty.
type PackageEntry struct {
	Name       string   `yaml:"name"`
	Repository string   `yaml:"repository,omitempty"`
	Versions   []string `yaml:"versions"`
}

// ToSpecs converts the manifest's package list into planner specs, in
// manifest order.
func (m *BuildManifest) ToSpecs() []planner.PackageSpec {
	specs := make([]planner.PackageSpec, 0, len(m.Spec.Packages))
	for _, entry := range m.Spec.Packages {
		specs = append(specs, planner.PackageSpec{
			Name:       entry.Name,
			Repository: entry.Repository,
			Versions:   append([]string{}, entry.Versions...),
		})
	}
	return specs
}

// DefaultManifest returns the classic three-package chain used as the
// starter manifest by autoplan init.
func DefaultManifest(name string) *BuildManifest {
	return &BuildManifest{
		APIVersion: SupportedAPIVersion,
		Kind:       SupportedKind,
		Metadata:   Metadata{Name: name},
		Spec: ManifestSpec{
			Packages: []PackageEntry{
				{Name: "autoconf", Versions: []string{"2.69"}},
				{Name: "automake", Versions: []string{"1.15"}},
				{Name: "libtool", Versions: []string{"2.4.6"}},
			},
		},
	}
}
