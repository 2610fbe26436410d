// sacpflow - SACP pipeline automation CLI.
package main

import (
	"os"

	"github.com/zangef1/SACPWorkflow/internal/cli"
	"github.com/zangef1/SACPWorkflow/internal/version"
)

// Version information, injected via -ldflags at release builds.
var (
	Version   = "v1.2.0"
	BuildTime = "unknown"
)

func main() {
	// The version package is the canonical source for every package
	// that displays version information.
	version.Version = Version
	version.BuildTime = BuildTime

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
