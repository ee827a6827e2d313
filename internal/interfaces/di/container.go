package di

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"publishkit.dev/cli/internal/core/domain"
	"publishkit.dev/cli/internal/core/pipeline"
	"publishkit.dev/cli/internal/core/ports"
	"publishkit.dev/cli/internal/infrastructure/config"
	"publishkit.dev/cli/internal/infrastructure/host"
	"publishkit.dev/cli/internal/infrastructure/logging"
	"publishkit.dev/cli/internal/infrastructure/plugins/builtin"
	"publishkit.dev/cli/internal/infrastructure/registry"
)

// Options carries command-line overrides into container assembly. Empty
// fields defer to the configuration file or its defaults.
type Options struct {
	ConfigPath string
	Host       string
	Manifest   string
	Output     string
	LogLevel   string
	LogFormat  string
}

// Container holds the assembled application dependencies.
type Container struct {
	Config     config.Config
	ConfigPath string
	Registry   *registry.Registry
	Resolver   ports.HostResolver
	Runner     *pipeline.Runner
	Logger     *logrus.Entry
}

// NewContainer resolves configuration, applies overrides, and wires the
// registry, host resolution, and pipeline runner.
func NewContainer(opts Options) (*Container, error) {
	cfg, path, err := config.Resolve(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("di: %w", err)
	}

	if opts.Host != "" {
		cfg.Host = opts.Host
	}
	if opts.Manifest != "" {
		cfg.Manifest = opts.Manifest
	}
	if opts.Output != "" {
		cfg.Output = opts.Output
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.LogFormat != "" {
		cfg.LogFormat = opts.LogFormat
	}

	if err := logging.Init(cfg.LogLevel, cfg.LogFormat, nil); err != nil {
		return nil, fmt.Errorf("di: %w", err)
	}

	container := &Container{
		Config:     cfg,
		ConfigPath: path,
		Registry:   registry.New(),
		Resolver:   newResolver(cfg),
		Logger:     logging.New("publish"),
	}
	builtin.Register(container.Registry, cfg)
	container.Runner = pipeline.NewRunner(container.Registry, container.Resolver, logging.New("pipeline"))

	return container, nil
}

// newResolver builds the host resolution chain: explicit configuration
// wins, then the PK_HOST variable, then executable-name detection.
func newResolver(cfg config.Config) ports.HostResolver {
	if cfg.Host != "" {
		return &host.StaticResolver{Host: domain.HostID(cfg.Host)}
	}
	return &host.EnvResolver{
		Var:      "PK_HOST",
		Fallback: &host.ExecutableResolver{},
	}
}
