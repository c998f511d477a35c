package makefile

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/buildplane/autoplan/internal/planner"
)

// yamlPlan wraps the graph in the same envelope the manifest uses, so the
// two documents read alike.
type yamlPlan struct {
	APIVersion string            `yaml:"apiVersion"`
	Kind       string            `yaml:"kind"`
	Targets    []*planner.Target `yaml:"targets"`
}

// WriteGraphYAML writes the graph as YAML. It is an inspection view of the
// plan; the Makefile stays the canonical output.
func WriteGraphYAML(g *planner.BuildGraph, w io.Writer) error {
	data, err := yaml.Marshal(yamlPlan{
		APIVersion: "autoplan/v1",
		Kind:       "BuildPlan",
		Targets:    g.Targets,
	})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
