package cli

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"publishkit.dev/cli/internal/interfaces/di"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// CLIContainer carries the runtime dependencies into commands. The runtime
// is assembled once per invocation in PersistentPreRunE so every flag
// override is visible before any command runs.
type CLIContainer struct {
	Runtime *di.Container
}

// NewRootCommand builds the base command all subcommands hang off of.
func NewRootCommand(container *CLIContainer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pk",
		Short: "Publishkit - staged publish pipeline for content production",
		Long: `Publishkit (pk) runs publishable units from an authoring environment
through named processing stages (validation, extraction, conform) using a
set of registered plugins.

Selector plugins build the publish context; each subsequent stage processes
every matching instance, accumulating failures per instance instead of
aborting the run.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts := di.Options{}
			opts.ConfigPath, _ = cmd.Flags().GetString("config")
			opts.Host, _ = cmd.Flags().GetString("host")
			opts.Manifest, _ = cmd.Flags().GetString("manifest")
			opts.Output, _ = cmd.Flags().GetString("output")
			opts.LogLevel, _ = cmd.Flags().GetString("log-level")
			opts.LogFormat, _ = cmd.Flags().GetString("log-format")

			rt, err := di.NewContainer(opts)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			container.Runtime = rt
			return nil
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	rootCmd.PersistentFlags().String("config", "", "Config file path (default ./pk.yaml, then $HOME/.pk/config.yaml)")
	rootCmd.PersistentFlags().String("host", "", "Authoring host to run as (maya, houdini, nuke, standalone)")
	rootCmd.PersistentFlags().String("manifest", "", "Workspace manifest for the built-in selector")
	rootCmd.PersistentFlags().String("output", "", "Directory extractors write into")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warning, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text, json)")

	rootCmd.AddCommand(NewRunCommand(container))
	rootCmd.AddCommand(NewValidateCommand(container))
	rootCmd.AddCommand(NewPluginsCommand(container))
	rootCmd.AddCommand(NewHostsCommand(container))
	rootCmd.AddCommand(NewDashboardCommand(container))

	return rootCmd
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(container *CLIContainer) {
	rootCmd := NewRootCommand(container)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
