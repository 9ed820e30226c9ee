package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/carte/internal/platform"
)

var (
	listJSON    bool
	listAttr    string
	listPattern string
)

var listCmd = &cobra.Command{
	Use:   "list [dish|category]",
	Short: "List records of a kind",
	Long: `List every record of a kind, or those whose --attr matches --pattern.
Patterns use '*' for any run of characters and '?' for exactly one.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		catalog, err := platform.New(dataDir(), catalogOptions(platform.WithReadOnly(true), platform.WithMustExist(true))...)
		if err != nil {
			fatal("Failed to open catalog", err)
		}
		h, err := handlerFor(catalog, args[0])
		if err != nil {
			fatal("Invalid kind", err)
		}

		attr := listAttr
		if attr == "" {
			attr = h.DefaultAttribute()
		}
		records := h.FindByAttribute(context.Background(), attr, listPattern)

		if !listJSON && len(records) == 0 {
			fmt.Printf("No %s found.\n", h.Kind())
			return
		}
		if err := printModels(os.Stdout, h.Kind(), records, listJSON); err != nil {
			fatal("Failed to print records", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listAttr, "attr", "", "Attribute to match (default: the kind's first attribute)")
	listCmd.Flags().StringVar(&listPattern, "pattern", "*", "Pattern the attribute must match")
}
