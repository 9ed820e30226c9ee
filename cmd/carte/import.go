package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/carte/internal/shell"
)

var importCmd = &cobra.Command{
	Use:   "import [dish|category] [file|glob]",
	Short: "Import records from another store file",
	Long: `Add every record of the given file, or of every file matching a glob
such as 'menus/**/dishes.yaml'. Records already present are skipped and
imported dishes create their categories.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		catalog, err := openCatalog()
		if err != nil {
			fatal("Failed to open catalog", err)
		}
		h, err := handlerFor(catalog, args[0])
		if err != nil {
			fatal("Invalid kind", err)
		}

		ctx := context.Background()
		var n int
		if shell.IsGlob(args[1]) {
			n, err = catalog.ImportGlob(ctx, h.Kind(), args[1])
		} else {
			n, err = catalog.ImportFile(ctx, h.Kind(), args[1])
		}
		if err != nil {
			fatal("Import failed", err)
		}
		fmt.Printf("Imported %d %s records.\n", n, h.Kind())
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
