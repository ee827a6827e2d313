package host

import (
	"os"
	"path/filepath"
	"strings"

	"publishkit.dev/cli/internal/core/domain"
	"publishkit.dev/cli/internal/core/ports"
)

// executablePrefixes maps executable name prefixes to the host they
// identify. Maya ships as maya/mayapy/maya.exe, Houdini as houdini* and
// hython, Nuke as Nuke<version>.
var executablePrefixes = []struct {
	prefix string
	host   domain.HostID
}{
	{"maya", domain.HostMaya},
	{"houdini", domain.HostHoudini},
	{"hython", domain.HostHoudini},
	{"nuke", domain.HostNuke},
}

// ExecutableResolver identifies the current host from the name of the
// running executable, the way a plugin embedded in an authoring
// application observes its surroundings.
type ExecutableResolver struct {
	// Executable overrides how the current executable path is obtained.
	// Nil uses os.Executable; tests inject a fixed value.
	Executable func() (string, error)
}

// CurrentHost implements ports.HostResolver.
func (r *ExecutableResolver) CurrentHost() (domain.HostID, error) {
	executable := os.Executable
	if r.Executable != nil {
		executable = r.Executable
	}

	path, err := executable()
	if err != nil {
		return "", domain.ErrHostUndetermined
	}

	name := strings.ToLower(filepath.Base(path))
	for _, entry := range executablePrefixes {
		if strings.HasPrefix(name, entry.prefix) {
			return entry.host, nil
		}
	}
	return "", domain.ErrHostUndetermined
}

// StaticResolver always resolves to a fixed host. The CLI uses it for the
// --host override; tests use it to pin the environment.
type StaticResolver struct {
	Host domain.HostID
}

// CurrentHost implements ports.HostResolver.
func (r *StaticResolver) CurrentHost() (domain.HostID, error) {
	if r.Host == "" {
		return "", domain.ErrHostUndetermined
	}
	return r.Host, nil
}

// EnvResolver consults an environment variable before falling back to
// another resolver. A standalone binary cannot be identified by its own
// executable name, so PK_HOST fills that gap.
type EnvResolver struct {
	// Var is the environment variable to consult, e.g. "PK_HOST"
	Var string

	// Fallback is consulted when the variable is unset. Nil means the
	// variable is the only source.
	Fallback ports.HostResolver
}

// CurrentHost implements ports.HostResolver.
func (r *EnvResolver) CurrentHost() (domain.HostID, error) {
	if value := os.Getenv(r.Var); value != "" {
		return domain.HostID(value), nil
	}
	if r.Fallback != nil {
		return r.Fallback.CurrentHost()
	}
	return "", domain.ErrHostUndetermined
}
