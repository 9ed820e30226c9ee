package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/carte/internal/platform"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the catalog stores as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		state, err := platform.Status(dataDir(), catalogOptions()...)
		if err != nil {
			fatal("Failed to read catalog", err)
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(state); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
