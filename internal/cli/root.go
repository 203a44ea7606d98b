// Package cli implements the sumgrid CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "sumgrid",
	Short: "3x3 digit-sum puzzle server",
	Long:  "Serves the SumGrid puzzle core over a JSON API: fill the grid with 1-9 so every row and column hits its target sum before the clock runs out.",
}
