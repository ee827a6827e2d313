// Package builtin ships the file-based plugin set the CLI registers out of
// the box. Host-specific scene plugins live with their host integrations;
// these cover workspaces described by a manifest on disk.
package builtin

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"publishkit.dev/cli/internal/core/domain"
	"publishkit.dev/cli/internal/core/ports"
)

// Manifest is the workspace manifest the built-in selector reads.
type Manifest struct {
	Instances []ManifestInstance `yaml:"instances"`
}

// ManifestInstance declares one publishable unit in the manifest.
type ManifestInstance struct {
	// Name identifies the instance within the workspace
	Name string `yaml:"name"`

	// Family routes the instance through stage plugins
	Family string `yaml:"family"`

	// Source is the file or directory the instance publishes
	Source string `yaml:"source"`

	// Config carries additional per-instance settings
	Config map[string]any `yaml:"config"`
}

// manifestSelector appends one Instance per manifest entry.
type manifestSelector struct {
	path string
}

// Process implements ports.Behavior.
func (s *manifestSelector) Process(ctx *domain.Context, _ *domain.Instance) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("manifest-selector: reading %s: %w", s.path, err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("manifest-selector: parsing %s: %w", s.path, err)
	}

	for _, entry := range manifest.Instances {
		if entry.Name == "" {
			return fmt.Errorf("manifest-selector: %s: instance without a name", s.path)
		}

		config := map[string]any{
			"name":   entry.Name,
			"source": entry.Source,
		}
		for key, value := range entry.Config {
			config[key] = value
		}
		// An entry without a family stays unroutable, matching nothing.
		if entry.Family != "" {
			config[domain.ConfigKeyFamily] = entry.Family
		}

		ctx.Append(domain.NewInstance(entry.Name, config))
	}
	return nil
}

// ManifestSelector describes the selector reading the workspace manifest
// at path.
func ManifestSelector(path string) ports.PluginDescriptor {
	return ports.PluginDescriptor{
		Name:  "manifest-selector",
		Hosts: domain.KnownHosts(),
		New: func() ports.Behavior {
			return &manifestSelector{path: path}
		},
	}
}
