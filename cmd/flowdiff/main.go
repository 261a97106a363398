// SPDX-License-Identifier: MIT

// Command flowdiff computes diffusion maps and flow neighbourhoods of CSV
// point sets.
package main

import (
	"os"

	"github.com/katalvlaran/flowdiff/internal/cli"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cli.Version, cli.GitCommit = version, commit
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
