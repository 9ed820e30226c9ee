package restaurant

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/aretw0/introspection"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/carte/pkg/adapters/fs"
	"github.com/aretw0/carte/pkg/core"
	"github.com/aretw0/carte/pkg/handler"
)

// SourceOpener opens the store an import reads from.
type SourceOpener func(kind, path string) (core.Store, error)

// Config configures a Catalog.
type Config struct {
	Logger *slog.Logger
	// Decider answers category cascades. Nil declines them all.
	Decider Decider
	// OpenSource overrides how import files are opened. The default opens
	// an existing file read-only with the fs adapter.
	OpenSource SourceOpener
}

// Catalog owns the category and dish handlers and links them to each other.
type Catalog struct {
	categories *Categories
	dishes     *Dishes
	openSource SourceOpener
	logger     *slog.Logger
}

// NewCatalog wires handlers over the two stores.
func NewCatalog(categoryStore, dishStore core.Store, cfg Config) (*Catalog, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	categories, err := NewCategories(categoryStore, cfg.Decider, logger)
	if err != nil {
		return nil, fmt.Errorf("category handler: %w", err)
	}
	dishes, err := NewDishes(dishStore, logger)
	if err != nil {
		return nil, fmt.Errorf("dish handler: %w", err)
	}
	categories.LinkDishes(dishes)
	dishes.LinkCategories(categories)

	open := cfg.OpenSource
	if open == nil {
		open = func(kind, path string) (core.Store, error) {
			return fs.Open(kind, path, fs.Config{Logger: logger, MustExist: true, ReadOnly: true})
		}
	}

	return &Catalog{
		categories: categories,
		dishes:     dishes,
		openSource: open,
		logger:     logger,
	}, nil
}

// Categories returns the category handler.
func (c *Catalog) Categories() *Categories { return c.categories }

// Dishes returns the dish handler.
func (c *Catalog) Dishes() *Dishes { return c.dishes }

// Kinds lists the managed kinds in menu order.
func (c *Catalog) Kinds() []string {
	return []string{KindDish, KindCategory}
}

// Handler returns the handler for kind.
func (c *Catalog) Handler(kind string) (handler.Handler, bool) {
	switch kind {
	case KindDish:
		return c.dishes, true
	case KindCategory:
		return c.categories, true
	default:
		return nil, false
	}
}

// SetDecider replaces the decider used for category cascades.
func (c *Catalog) SetDecider(d Decider) {
	c.categories.SetDecider(d)
}

// ImportFile imports every record of the file at path into the kind's store.
func (c *Catalog) ImportFile(ctx context.Context, kind, path string) (int, error) {
	h, ok := c.Handler(kind)
	if !ok {
		return 0, fmt.Errorf("import %s: unknown kind %q", path, kind)
	}
	src, err := c.openSource(kind, path)
	if err != nil {
		return 0, fmt.Errorf("import %s: %w", path, err)
	}

	n, err := h.Import(ctx, src)
	if err != nil {
		return n, fmt.Errorf("import %s: %w", path, err)
	}
	c.logger.InfoContext(ctx, "import complete", "kind", kind, "path", path, "added", n)
	return n, nil
}

// ImportGlob imports every file matching pattern, which may use "**".
// Files are imported in lexical order and the first failure stops the run.
func (c *Catalog) ImportGlob(ctx context.Context, kind, pattern string) (int, error) {
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return 0, fmt.Errorf("glob %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return 0, fmt.Errorf("glob %q: %w", pattern, os.ErrNotExist)
	}
	sort.Strings(paths)

	total := 0
	for _, path := range paths {
		n, err := c.ImportFile(ctx, kind, path)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// CatalogState is the introspection view of a catalog.
type CatalogState struct {
	Categories core.ComponentState `json:"categories"`
	Dishes     core.ComponentState `json:"dishes"`
	Linked     bool                `json:"linked"`
}

// State implements introspection.Introspectable.
func (c *Catalog) State() any {
	return CatalogState{
		Categories: core.Describe(c.categories.Store()),
		Dishes:     core.Describe(c.dishes.Store()),
		Linked:     c.categories.dishes != nil && c.dishes.categories != nil,
	}
}

// ComponentType implements introspection.Component.
func (c *Catalog) ComponentType() string {
	return "catalog"
}

var _ introspection.Introspectable = (*Catalog)(nil)
var _ introspection.Component = (*Catalog)(nil)
