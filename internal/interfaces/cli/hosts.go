package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"publishkit.dev/cli/internal/core/domain"
)

// NewHostsCommand creates the hosts command
func NewHostsCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "hosts",
		Short: "Show the resolved authoring host",
		Long: `Show which authoring host the tool resolves to, along with the hosts
it ships first-class support for. Resolution order: --host flag or config,
then the PK_HOST environment variable, then executable-name detection.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHosts(container)
		},
	}
}

// runHosts reports host resolution state.
func runHosts(container *CLIContainer) error {
	host, err := container.Runtime.Resolver.CurrentHost()
	switch {
	case errors.Is(err, domain.ErrHostUndetermined):
		fmt.Println(failStyle.Render("Current host: undetermined"))
		fmt.Println(dimStyle.Render("Pass --host or set PK_HOST to pin one."))
	case err != nil:
		return err
	default:
		fmt.Printf("Current host: %s\n", okStyle.Render(host.String()))
	}

	fmt.Println("\nKnown hosts:")
	for _, known := range domain.KnownHosts() {
		fmt.Printf("  %s\n", known)
	}
	return nil
}
