package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/docdex/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Bootstrap(context.Background(), ""); err != nil {
		fmt.Fprintf(os.Stderr, "docdex: %v\n", err)
		os.Exit(1)
	}
	cli.SetVersion(version)
	cli.Execute()
}
