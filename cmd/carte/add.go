package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var addAssignments []string

var addCmd = &cobra.Command{
	Use:   "add [dish|category]",
	Short: "Add a record unless an equal one exists",
	Long: `Add a record built from --set name=value pairs. Every attribute of the
kind is required. Adding a dish also adds its category when missing.`,
	Example: `  carte add dish --set name=Borscht --set category=Soup --set price=4.5
  carte add category --set name=Desserts`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		catalog, err := openCatalog()
		if err != nil {
			fatal("Failed to open catalog", err)
		}
		h, err := handlerFor(catalog, args[0])
		if err != nil {
			fatal("Invalid kind", err)
		}

		attrs, err := parseAssignments(h, addAssignments)
		if err != nil {
			fatal("Invalid attributes", err)
		}
		record, err := buildRecord(h, attrs)
		if err != nil {
			fatal("Invalid record", err)
		}

		added, err := h.Add(context.Background(), record)
		if err != nil {
			fatal("Failed to add "+h.Kind(), err)
		}
		if !added {
			fmt.Printf("%s already exists.\n", h.Kind())
			return
		}
		fmt.Printf("%s has been added.\n", h.Kind())
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringArrayVar(&addAssignments, "set", nil, "Attribute as name=value (repeatable)")
}
