package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewPluginsCommand creates the plugins command
func NewPluginsCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List registered plugins by stage",
		Long: `List every registered plugin, grouped by stage, with the hosts and
instance families each one applies to. The listed order within a stage is
the order the pipeline invokes plugins in.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlugins(container)
		},
	}
}

// runPlugins prints the registry contents.
func runPlugins(container *CLIContainer) error {
	reg := container.Runtime.Registry

	stages := reg.Stages()
	if len(stages) == 0 {
		fmt.Println("No plugins registered.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	for _, stage := range stages {
		fmt.Fprintln(w, headerStyle.Render(stage))
		for _, desc := range reg.Discover(stage) {
			hosts := make([]string, len(desc.Hosts))
			for i, h := range desc.Hosts {
				hosts[i] = h.String()
			}

			families := strings.Join(desc.Families, ", ")
			if families == "" {
				families = "-"
			}

			fmt.Fprintf(w, "  %s\thosts: %s\tfamilies: %s\n",
				desc.Name, strings.Join(hosts, ", "), families)
		}
	}
	return nil
}
