package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"publishkit.dev/cli/internal/core/domain"
	"publishkit.dev/cli/internal/infrastructure/plugins/builtin"
)

// NewValidateCommand creates the validate command
func NewValidateCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration, manifest, and host resolution",
		Long: `Validate the local setup before publishing.

This command will:
- Check configuration file validity
- Check the workspace manifest parses and names every instance
- Check host resolution
- Check that every stage in the configured order has plugins`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(container)
		},
	}
}

// runValidate handles the validation process
func runValidate(container *CLIContainer) error {
	rt := container.Runtime

	fmt.Println(titleStyle.Render("Publishkit Validation"))
	fmt.Println()

	// 1. Configuration was already resolved during wiring.
	fmt.Print("Checking configuration... ")
	if rt.ConfigPath != "" {
		fmt.Println(okStyle.Render(fmt.Sprintf("ok (%s)", rt.ConfigPath)))
	} else {
		fmt.Println(okStyle.Render("ok (built-in defaults)"))
	}

	// 2. Manifest parses.
	fmt.Print("Checking manifest... ")
	if err := checkManifest(rt.Config.Manifest); err != nil {
		fmt.Println(failStyle.Render("failed"))
		return err
	}
	fmt.Println(okStyle.Render(fmt.Sprintf("ok (%s)", rt.Config.Manifest)))

	// 3. Host resolution.
	fmt.Print("Checking host resolution... ")
	host, err := rt.Resolver.CurrentHost()
	if errors.Is(err, domain.ErrHostUndetermined) {
		fmt.Println(failStyle.Render("undetermined"))
		return fmt.Errorf("%w; pass --host or set PK_HOST", err)
	}
	if err != nil {
		fmt.Println(failStyle.Render("failed"))
		return err
	}
	fmt.Println(okStyle.Render(host.String()))

	// 4. Every configured stage has plugins to run.
	fmt.Print("Checking stage coverage... ")
	var empty []string
	for _, stage := range rt.Config.Stages {
		if len(rt.Registry.Discover(stage)) == 0 {
			empty = append(empty, stage)
		}
	}
	if len(empty) > 0 {
		// An empty stage is a no-op pass, not an error.
		fmt.Println(dimStyle.Render(fmt.Sprintf("stages with no plugins: %v", empty)))
	} else {
		fmt.Println(okStyle.Render("ok"))
	}

	fmt.Println()
	fmt.Println(okStyle.Render("Setup looks good."))
	return nil
}

// checkManifest verifies the manifest file parses and every instance is
// named, without building a context.
func checkManifest(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("manifest %s: %w", path, err)
	}
	var manifest builtin.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("manifest %s: %w", path, err)
	}
	for i, entry := range manifest.Instances {
		if entry.Name == "" {
			return fmt.Errorf("manifest %s: instance %d has no name", path, i)
		}
	}
	return nil
}
