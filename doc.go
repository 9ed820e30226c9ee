// Package carte is the composition root for carte, a small file-backed
// record store for a restaurant menu.
//
// It connects the record model and store contract (pkg/core) with the
// file adapter (pkg/adapters/fs) and the category and dish handlers
// (pkg/restaurant).
//
// Records are ordered attribute lists. Each kind lives in its own file
// (JSON by default; YAML, XML and CSV are also supported), which is
// rewritten after every mutation. Records are found by exact match on any
// subset of their attributes, or by a '*'/'?' wildcard on one attribute.
//
// Dishes reference categories by name. Adding a dish creates its category
// when missing. Renaming or removing a category asks a Decider whether the
// change should carry over to its dishes.
//
// Usage:
//
//	catalog, err := carte.Open("./menu",
//		carte.WithFormat(".yaml"),
//		carte.WithDecider(carte.Always(true)),
//	)
//
//	// Adds the dish and the "Soup" category
//	_, err = catalog.Dishes().Add(ctx, carte.Model{Kind: "dish", Attributes: []carte.Attribute{
//		{Name: "name", Value: "Borscht"},
//		{Name: "category", Value: "Soup"},
//		{Name: "price", Value: "4.5"},
//	}})
package carte
