package main

import (
	"os"

	"svw.info/sumgrid/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
