package main

import (
	"os"

	"github.com/rlam13/tio/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
