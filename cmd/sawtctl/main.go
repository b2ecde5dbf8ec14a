package main

import (
	"os"

	"github.com/IslamGh2004/sawtlib/internal/cli"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := cli.NewRootCommand(Version).Execute(); err != nil {
		os.Exit(1)
	}
}
