package testfixtures

import (
	"sync"

	"publishkit.dev/cli/internal/core/domain"
	"publishkit.dev/cli/internal/core/ports"
)

// InstanceBuilder provides a builder pattern for creating test instances
type InstanceBuilder struct {
	path   string
	config map[string]any
}

// NewInstanceBuilder creates a new InstanceBuilder with sensible defaults
func NewInstanceBuilder() *InstanceBuilder {
	return &InstanceBuilder{
		path:   "|test|instance",
		config: map[string]any{},
	}
}

// WithPath sets the instance path
func (b *InstanceBuilder) WithPath(path string) *InstanceBuilder {
	b.path = path
	return b
}

// WithFamily sets the family config entry
func (b *InstanceBuilder) WithFamily(family string) *InstanceBuilder {
	b.config[domain.ConfigKeyFamily] = family
	return b
}

// WithConfig sets an arbitrary config entry
func (b *InstanceBuilder) WithConfig(key string, value any) *InstanceBuilder {
	b.config[key] = value
	return b
}

// Build creates the instance
func (b *InstanceBuilder) Build() *domain.Instance {
	config := map[string]any{}
	for key, value := range b.config {
		config[key] = value
	}
	return domain.NewInstance(b.path, config)
}

// ContextBuilder provides a builder pattern for creating test contexts
type ContextBuilder struct {
	instances []*domain.Instance
}

// NewContextBuilder creates a new ContextBuilder
func NewContextBuilder() *ContextBuilder {
	return &ContextBuilder{}
}

// WithInstance appends an instance to the context under construction
func (b *ContextBuilder) WithInstance(inst *domain.Instance) *ContextBuilder {
	b.instances = append(b.instances, inst)
	return b
}

// Build creates the context
func (b *ContextBuilder) Build() *domain.Context {
	ctx := domain.NewContext()
	for _, inst := range b.instances {
		ctx.Append(inst)
	}
	return ctx
}

// SpyPlugin builds plugin descriptors that record how they were invoked,
// for verifying the pipeline's filtering and isolation contracts.
type SpyPlugin struct {
	mu sync.Mutex

	name     string
	hosts    []domain.HostID
	families []string

	// Fail makes every invocation return this error
	Fail error

	// Panic makes every invocation panic with this value when non-nil
	Panic any

	// OnProcess, when set, is called for each invocation
	OnProcess func(ctx *domain.Context, inst *domain.Instance) error

	invocations []*domain.Instance
	constructed int
}

// NewSpyPlugin creates a spy with the given identity and applicability.
func NewSpyPlugin(name string, hosts []domain.HostID, families []string) *SpyPlugin {
	return &SpyPlugin{name: name, hosts: hosts, families: families}
}

// Descriptor returns the descriptor to register or discover the spy under.
func (s *SpyPlugin) Descriptor() ports.PluginDescriptor {
	return ports.PluginDescriptor{
		Name:     s.name,
		Hosts:    s.hosts,
		Families: s.families,
		New: func() ports.Behavior {
			s.mu.Lock()
			s.constructed++
			s.mu.Unlock()
			return ports.BehaviorFunc(s.process)
		},
	}
}

func (s *SpyPlugin) process(ctx *domain.Context, inst *domain.Instance) error {
	s.mu.Lock()
	s.invocations = append(s.invocations, inst)
	s.mu.Unlock()

	if s.Panic != nil {
		panic(s.Panic)
	}
	if s.OnProcess != nil {
		return s.OnProcess(ctx, inst)
	}
	return s.Fail
}

// Invocations returns the instances the spy was invoked with, in order.
// Selector invocations record a nil instance.
func (s *SpyPlugin) Invocations() []*domain.Instance {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Instance, len(s.invocations))
	copy(out, s.invocations)
	return out
}

// CallCount returns how many times the spy was invoked.
func (s *SpyPlugin) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.invocations)
}

// Constructed returns how many behavior instances were built.
func (s *SpyPlugin) Constructed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.constructed
}

// StaticDiscovery implements ports.Discovery over a fixed stage table.
type StaticDiscovery map[string][]ports.PluginDescriptor

// Discover implements ports.Discovery.
func (d StaticDiscovery) Discover(stage string) []ports.PluginDescriptor {
	return d[stage]
}

// HostResolverFunc adapts a function to ports.HostResolver.
type HostResolverFunc func() (domain.HostID, error)

// CurrentHost implements ports.HostResolver.
func (f HostResolverFunc) CurrentHost() (domain.HostID, error) {
	return f()
}

// FixedHost returns a resolver that always yields host.
func FixedHost(host domain.HostID) ports.HostResolver {
	return HostResolverFunc(func() (domain.HostID, error) {
		return host, nil
	})
}
