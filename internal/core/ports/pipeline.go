package ports

import (
	"publishkit.dev/cli/internal/core/domain"
)

// Behavior is the executable capability of a plugin. Selector behaviors
// receive a nil instance and append new Instances to the context; stage
// behaviors inspect or mutate the given instance. A non-nil error marks the
// invocation as failed; the pipeline owns what happens to that error.
type Behavior interface {
	Process(ctx *domain.Context, inst *domain.Instance) error
}

// BehaviorFunc adapts a plain function to the Behavior interface.
type BehaviorFunc func(ctx *domain.Context, inst *domain.Instance) error

// Process implements Behavior.
func (f BehaviorFunc) Process(ctx *domain.Context, inst *domain.Instance) error {
	return f(ctx, inst)
}

// PluginDescriptor describes one discovered plugin: where it applies and
// how to construct its behavior. Descriptors are stateless; the factory is
// invoked once per (plugin, instance) pair so plugin-local state never
// leaks across instances.
type PluginDescriptor struct {
	// Name is the logical plugin name, used for logging and diagnostics
	Name string

	// Hosts lists the authoring applications the plugin supports
	Hosts []domain.HostID

	// Families lists the instance families the plugin applies to.
	// Ignored for selector plugins.
	Families []string

	// New constructs a fresh behavior for a single invocation
	New func() Behavior
}

// SupportsHost reports whether the plugin declares support for host.
func (d PluginDescriptor) SupportsHost(host domain.HostID) bool {
	for _, h := range d.Hosts {
		if h == host {
			return true
		}
	}
	return false
}

// SupportsFamily reports whether the plugin declares applicability to family.
func (d PluginDescriptor) SupportsFamily(family string) bool {
	for _, f := range d.Families {
		if f == family {
			return true
		}
	}
	return false
}

// Discovery locates plugins registered under a stage name. Implementations
// must be deterministic per call and return descriptors in registration
// order; the pipeline performs no reordering of its own.
type Discovery interface {
	Discover(stage string) []PluginDescriptor
}

// HostResolver identifies the authoring application the process runs
// inside of. It fails with domain.ErrHostUndetermined when no recognized
// host can be identified. Repeated calls within one process are cheap and
// idempotent.
type HostResolver interface {
	CurrentHost() (domain.HostID, error)
}
