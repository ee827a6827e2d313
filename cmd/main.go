package main

import (
	"publishkit.dev/cli/internal/interfaces/cli"
)

// Build information set by ldflags
var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cli.Version = version
	cli.BuildTime = buildTime

	// The runtime container is assembled by the root command once flags
	// are parsed, so overrides like --host are visible during wiring.
	cli.Execute(&cli.CLIContainer{})
}
