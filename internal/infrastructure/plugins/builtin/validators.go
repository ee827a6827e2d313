package builtin

import (
	"fmt"
	"os"
	"regexp"

	"publishkit.dev/cli/internal/core/domain"
	"publishkit.dev/cli/internal/core/ports"
)

// defaultNamePattern is the naming convention instances follow unless their
// config overrides it with a "pattern" entry.
const defaultNamePattern = `^[A-Za-z][A-Za-z0-9_]*$`

// sourceValidator fails instances whose declared source is missing on disk.
type sourceValidator struct{}

// Process implements ports.Behavior.
func (v *sourceValidator) Process(_ *domain.Context, inst *domain.Instance) error {
	source, ok := inst.Config()["source"].(string)
	if !ok || source == "" {
		return fmt.Errorf("source-validator: %s declares no source", inst)
	}
	if _, err := os.Stat(source); err != nil {
		return fmt.Errorf("source-validator: %s: source %s not accessible: %w", inst, source, err)
	}
	return nil
}

// SourceValidator describes the validator checking that every instance's
// source exists.
func SourceValidator() ports.PluginDescriptor {
	return ports.PluginDescriptor{
		Name:     "source-validator",
		Hosts:    domain.KnownHosts(),
		Families: Families(),
		New: func() ports.Behavior {
			return &sourceValidator{}
		},
	}
}

// nameValidator enforces the instance naming convention.
type nameValidator struct{}

// Process implements ports.Behavior.
func (v *nameValidator) Process(_ *domain.Context, inst *domain.Instance) error {
	pattern := defaultNamePattern
	if override, ok := inst.Config()["pattern"].(string); ok && override != "" {
		pattern = override
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("name-validator: invalid pattern %q for %s: %w", pattern, inst, err)
	}

	name, _ := inst.Config()["name"].(string)
	if name == "" {
		name = inst.Path()
	}
	if !re.MatchString(name) {
		return fmt.Errorf("name-validator: %q does not match %q", name, pattern)
	}
	return nil
}

// NameValidator describes the validator enforcing instance naming.
func NameValidator() ports.PluginDescriptor {
	return ports.PluginDescriptor{
		Name:     "name-validator",
		Hosts:    domain.KnownHosts(),
		Families: Families(),
		New: func() ports.Behavior {
			return &nameValidator{}
		},
	}
}
