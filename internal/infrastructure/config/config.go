package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"publishkit.dev/cli/internal/core/domain"
)

// Config holds the settings a publish run starts from. Flags override
// whatever the file provides.
type Config struct {
	// Stages is the processing stage order for a full run, after selection
	Stages []string `yaml:"stages"`

	// Manifest is the workspace manifest the built-in selector reads
	Manifest string `yaml:"manifest"`

	// Output is the directory extractors write into
	Output string `yaml:"output"`

	// Host pins the authoring host instead of resolving it
	Host string `yaml:"host"`

	// ContinueOnError keeps running later stages when a stage left errors
	ContinueOnError bool `yaml:"continue_on_error"`

	// LogLevel is a logrus level name (debug, info, warning, error)
	LogLevel string `yaml:"log_level"`

	// LogFormat is "text" or "json"
	LogFormat string `yaml:"log_format"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Stages:    domain.DefaultStageOrder(),
		Manifest:  "publish.yaml",
		Output:    "published",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads and parses the config file at path, layered over defaults.
// The file must exist; use Resolve for the optional search-path behavior.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if len(cfg.Stages) == 0 {
		cfg.Stages = domain.DefaultStageOrder()
	}
	return cfg, nil
}

// Resolve locates and loads the effective configuration. An explicit path
// must exist; otherwise ./pk.yaml and $HOME/.pk/config.yaml are tried in
// order, and defaults apply when neither is present. The second return
// value is the path actually loaded, empty for defaults.
func Resolve(explicit string) (Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}

	candidates := []string{"pk.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".pk", "config.yaml"))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		cfg, err := Load(candidate)
		return cfg, candidate, err
	}

	return Default(), "", nil
}
