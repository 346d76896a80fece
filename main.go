package main

import (
	"fmt"
	"os"

	"github.com/mindwell-app/mindwell-engine/pkg/cli"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	rootCommand := cli.NewRootCommand(Version)
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mindwell: %v\n", err)
		os.Exit(1)
	}
}
