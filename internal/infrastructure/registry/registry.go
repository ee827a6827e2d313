package registry

import (
	"fmt"
	"sort"
	"sync"

	"publishkit.dev/cli/internal/core/ports"
)

// Registry is the in-memory plugin registry backing discovery. Plugins are
// keyed by stage name and kept in registration order, which is the order
// the pipeline invokes them in.
type Registry struct {
	mu     sync.RWMutex
	stages map[string][]ports.PluginDescriptor
}

// New creates an empty registry
func New() *Registry {
	return &Registry{stages: map[string][]ports.PluginDescriptor{}}
}

// Register adds a plugin descriptor under the given stage. Descriptors are
// appended in call order. A duplicate name within a stage or a descriptor
// without a behavior factory is rejected.
func (r *Registry) Register(stage string, desc ports.PluginDescriptor) error {
	if stage == "" {
		return fmt.Errorf("registry: stage is required")
	}
	if desc.Name == "" {
		return fmt.Errorf("registry: plugin name is required")
	}
	if desc.New == nil {
		return fmt.Errorf("registry: plugin %s has no behavior factory", desc.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.stages[stage] {
		if existing.Name == desc.Name {
			return fmt.Errorf("registry: plugin %s already registered for stage %s", desc.Name, stage)
		}
	}
	r.stages[stage] = append(r.stages[stage], desc)
	return nil
}

// MustRegister panics if registration fails. Intended for wiring built-in
// plugins at startup.
func (r *Registry) MustRegister(stage string, desc ports.PluginDescriptor) {
	if err := r.Register(stage, desc); err != nil {
		panic(err)
	}
}

// Discover implements ports.Discovery. It returns the descriptors
// registered under stage in registration order. The slice is a copy, so
// callers cannot disturb the registry; an unknown stage yields nil.
func (r *Registry) Discover(stage string) []ports.PluginDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descs := r.stages[stage]
	if len(descs) == 0 {
		return nil
	}
	out := make([]ports.PluginDescriptor, len(descs))
	copy(out, descs)
	return out
}

// Stages returns the sorted list of stage names with registered plugins.
func (r *Registry) Stages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stages := make([]string, 0, len(r.stages))
	for stage := range r.stages {
		stages = append(stages, stage)
	}
	sort.Strings(stages)
	return stages
}
