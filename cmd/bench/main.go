package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aretw0/carte/internal/platform"
	"github.com/aretw0/carte/pkg/adapters/fs"
	"github.com/aretw0/carte/pkg/core"
	"github.com/aretw0/carte/pkg/restaurant"
)

func main() {
	count := flag.Int("count", 1000, "Number of dishes to generate")
	categories := flag.Int("categories", 10, "Number of categories the dishes spread over")
	format := flag.String("format", ".json", "File format to benchmark")
	keep := flag.Bool("keep", false, "Keep the benchmark directory after running")
	flag.Parse()

	// 1. Setup Namespace
	benchDir, err := os.MkdirTemp("", "carte_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	fmt.Printf("Generating %d dishes in %s...\n", *count, benchDir)
	startGen := time.Now()

	// Writing the documents directly is faster than one rewrite per Add.
	serializers := fs.DefaultSerializers()
	ser, ok := serializers[*format]
	if !ok {
		panic(fmt.Errorf("unknown format %q", *format))
	}
	cats := fs.Document{Kind: restaurant.KindCategory}
	for c := 0; c < *categories; c++ {
		cats.Records = append(cats.Records, core.NewModel(restaurant.KindCategory,
			core.Attribute{Name: restaurant.AttrName, Value: categoryName(c)}))
	}
	dishes := fs.Document{Kind: restaurant.KindDish}
	for i := 0; i < *count; i++ {
		dishes.Records = append(dishes.Records, core.NewModel(restaurant.KindDish,
			core.Attribute{Name: restaurant.AttrName, Value: fmt.Sprintf("Dish %d", i)},
			core.Attribute{Name: restaurant.AttrCategory, Value: categoryName(i % *categories)},
			core.Attribute{Name: restaurant.AttrPrice, Value: strconv.Itoa(1 + i%50)},
		))
	}
	for name, doc := range map[string]fs.Document{platform.DefaultCategoriesName: cats, platform.DefaultDishesName: dishes} {
		data, err := ser.Serialize(doc)
		if err != nil {
			panic(err)
		}
		if err := os.WriteFile(filepath.Join(benchDir, name+*format), data, 0644); err != nil {
			panic(err)
		}
	}
	fmt.Printf("Generation took: %v\n", time.Since(startGen))

	// 2. Open (parses both files)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	startOpen := time.Now()
	catalog, err := platform.New(benchDir,
		platform.WithLogger(logger),
		platform.WithFormat(*format),
		platform.WithMustExist(true),
		platform.WithDecider(restaurant.Always(true)),
	)
	if err != nil {
		panic(err)
	}
	open := time.Since(startOpen)

	ctx := context.TODO()

	// 3. Wildcard scan
	startFind := time.Now()
	found := catalog.Dishes().FindByAttribute(ctx, restaurant.AttrName, "Dish *7")
	find := time.Since(startFind)

	// 4. One add rewrites the whole file
	startAdd := time.Now()
	if _, err := catalog.Dishes().Add(ctx, core.NewModel(restaurant.KindDish,
		core.Attribute{Name: restaurant.AttrName, Value: "Bench Special"},
		core.Attribute{Name: restaurant.AttrCategory, Value: categoryName(0)},
		core.Attribute{Name: restaurant.AttrPrice, Value: "9.99"},
	)); err != nil {
		panic(err)
	}
	add := time.Since(startAdd)

	// 5. Rename cascade touches every dish of the category
	affected := len(catalog.Dishes().FindByAttribute(ctx, restaurant.AttrCategory, categoryName(0)))
	startRename := time.Now()
	if _, err := catalog.Categories().ModifyAttribute(ctx,
		core.NewModel(restaurant.KindCategory, core.Attribute{Name: restaurant.AttrName, Value: categoryName(0)}),
		core.Attribute{Name: restaurant.AttrName, Value: "Renamed"},
	); err != nil {
		panic(err)
	}
	rename := time.Since(startRename)

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d dishes, %s):\n", *count, *format)
	fmt.Printf("  Open:   %v\n", open)
	fmt.Printf("  Find:   %v (matches: %d)\n", find, len(found))
	fmt.Printf("  Add:    %v\n", add)
	fmt.Printf("  Rename: %v (dishes moved: %d)\n", rename, affected)
	fmt.Printf("--------------------------------------------------\n")
}

func categoryName(i int) string {
	return fmt.Sprintf("Category %d", i)
}
