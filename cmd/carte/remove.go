package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/carte/pkg/core"
)

var (
	removeMatch   []string
	removeAttr    string
	removePattern string
)

var removeCmd = &cobra.Command{
	Use:   "remove [dish|category]",
	Short: "Remove records",
	Long: `Remove the first record equal to the --match pairs, or every record whose
--attr matches --pattern. Removing a category may remove its dishes, as
--cascade decides.`,
	Example: `  carte remove dish --match name=Borscht
  carte remove category --pattern 'S*' --cascade no`,
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

		ctx := context.Background()
		var targets []core.Model
		switch {
		case removePattern != "":
			attr := removeAttr
			if attr == "" {
				attr = h.DefaultAttribute()
			}
			targets = h.FindByAttribute(ctx, attr, removePattern)
		case len(removeMatch) > 0:
			match, err := parseAssignments(h, removeMatch)
			if err != nil {
				fatal("Invalid --match", err)
			}
			if found, ok := h.FindExact(ctx, core.NewModel(h.Kind(), match...)); ok {
				targets = append(targets, found)
			}
		default:
			fatal("Nothing to remove", fmt.Errorf("--match or --pattern is required"))
		}

		removed := 0
		for _, m := range targets {
			ok, err := h.Remove(ctx, m)
			if !ok {
				if err != nil {
					fatal("Failed to remove "+h.Kind(), err)
				}
				continue
			}
			reportCascade(err)
			removed++
		}
		fmt.Printf("%d %s removed.\n", removed, h.Kind())
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().StringArrayVar(&removeMatch, "match", nil, "Attribute the record must have, as name=value (repeatable)")
	removeCmd.Flags().StringVar(&removeAttr, "attr", "", "Attribute tested by --pattern (default: the kind's first attribute)")
	removeCmd.Flags().StringVar(&removePattern, "pattern", "", "Remove every record whose attribute matches")
}
