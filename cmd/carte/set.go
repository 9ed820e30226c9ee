package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/carte/pkg/core"
)

var (
	setMatch       []string
	setAssignments []string
)

var setCmd = &cobra.Command{
	Use:   "set [dish|category]",
	Short: "Change attributes of a record",
	Long: `Find the first record equal to the --match pairs and apply each --set pair
in order. Renaming a category may carry over to its dishes, as --cascade
decides.`,
	Example: `  carte set dish --match name=Borscht --set price=5
  carte set category --match name=Soup --set name=Starters --cascade yes`,
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

		match, err := parseAssignments(h, setMatch)
		if err != nil {
			fatal("Invalid --match", err)
		}
		changes, err := parseAssignments(h, setAssignments)
		if err != nil {
			fatal("Invalid --set", err)
		}
		if len(changes) == 0 {
			fatal("Nothing to change", fmt.Errorf("--set is required"))
		}

		ctx := context.Background()
		current, ok := h.FindExact(ctx, core.NewModel(h.Kind(), match...))
		if !ok {
			fatal("Not found", fmt.Errorf("no %s matches %v", h.Kind(), setMatch))
		}

		for _, attr := range changes {
			modified, err := h.ModifyAttribute(ctx, current, attr)
			if !modified {
				if err == nil {
					err = fmt.Errorf("record is gone")
				}
				fatal("Failed to modify "+h.Kind(), err)
			}
			reportCascade(err)
			current.Set(attr.Name, attr.Value)
		}

		fmt.Printf("%s has been modified:\n%s", h.Kind(), current)
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().StringArrayVar(&setMatch, "match", nil, "Attribute the record must have, as name=value (repeatable)")
	setCmd.Flags().StringArrayVar(&setAssignments, "set", nil, "Attribute to change, as name=value (repeatable)")
	setCmd.MarkFlagRequired("match")
}
