package main

import (
	"github.com/joelvaneenwyk/web-extension-crx-viewer/internal/cli"
)

// Version information (set via ldflags during build)
var (
	version   = ""
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	// Set version info from build-time variables
	if version != "" {
		cli.Version = version
	}
	cli.GitCommit = gitCommit
	cli.BuildDate = buildDate

	cli.Execute()
}
