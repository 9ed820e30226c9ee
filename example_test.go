package carte_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/carte"
)

// Example_cascade adds a dish, then renames its category and lets the
// rename carry over to the dish.
func Example_cascade() {
	tmpDir, err := os.MkdirTemp("", "carte-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	catalog, err := carte.Open(tmpDir, carte.WithDecider(carte.Always(true)))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// 1. Add a dish; its category is created on the fly
	_, err = catalog.Dishes().Add(ctx, carte.Model{Kind: "dish", Attributes: []carte.Attribute{
		{Name: "name", Value: "Borscht"},
		{Name: "category", Value: "Soup"},
		{Name: "price", Value: "4.5"},
	}})
	if err != nil {
		log.Fatal(err)
	}

	// 2. Rename the category
	soup := carte.Model{Kind: "category", Attributes: []carte.Attribute{{Name: "name", Value: "Soup"}}}
	if _, err := catalog.Categories().ModifyAttribute(ctx, soup, carte.Attribute{Name: "name", Value: "Starters"}); err != nil {
		log.Fatal(err)
	}

	for _, d := range catalog.Dishes().FindByAttribute(ctx, "name", "B*") {
		fmt.Print(d)
	}
	// Output:
	// name: Borscht
	// category: Starters
	// price: 4.5
}
