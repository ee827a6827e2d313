package builtin

import (
	"publishkit.dev/cli/internal/core/domain"
	"publishkit.dev/cli/internal/infrastructure/config"
	"publishkit.dev/cli/internal/infrastructure/registry"
)

// Families returns the instance families the built-in file plugins apply
// to.
func Families() []string {
	return []string{"model", "rig", "look", "cache", "file"}
}

// Register wires the built-in plugin set into the registry using paths
// from the configuration. Registration order is invocation order.
func Register(reg *registry.Registry, cfg config.Config) {
	reg.MustRegister(domain.StageSelectors, ManifestSelector(cfg.Manifest))
	reg.MustRegister(domain.StageValidators, SourceValidator())
	reg.MustRegister(domain.StageValidators, NameValidator())
	reg.MustRegister(domain.StageExtractors, CopyExtractor(cfg.Output))
}
