package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/carte"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of carte",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("carte version %s\n", strings.TrimSpace(carte.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
