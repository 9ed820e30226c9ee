package platform

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/carte/pkg/adapters/fs"
	"github.com/aretw0/carte/pkg/core"
	"github.com/aretw0/carte/pkg/restaurant"
)

// Paths are the resolved locations of a data directory and its backing files.
type Paths struct {
	Dir        string `json:"dir"`
	Categories string `json:"categories"`
	Dishes     string `json:"dishes"`
}

// ResolvePaths computes where the catalog in dir keeps its files, after
// sandboxing and file name options are applied. Nothing is touched on disk.
func ResolvePaths(dir string, opts ...Option) Paths {
	return defaultOptions().apply(opts).paths(dir)
}

func (o *options) paths(dir string) Paths {
	sandboxed := o.forceTemp || (IsDevRun() && o.devSafety && !o.readOnly)
	root := ResolveDataPath(dir, sandboxed)

	categories := o.categoriesFile
	if categories == "" {
		categories = DefaultCategoriesName
	}
	dishes := o.dishesFile
	if dishes == "" {
		dishes = DefaultDishesName
	}

	return Paths{
		Dir:        root,
		Categories: filepath.Join(root, o.withFormat(categories)),
		Dishes:     filepath.Join(root, o.withFormat(dishes)),
	}
}

func (o *options) withFormat(name string) string {
	if filepath.Ext(name) != "" {
		return name
	}
	return name + o.format
}

// registry merges custom serializers over the defaults. Nil means defaults only.
func (o *options) registry() map[string]fs.Serializer {
	if len(o.serializers) == 0 {
		return nil
	}
	reg := fs.DefaultSerializers()
	for ext, s := range o.serializers {
		reg[ext] = s
	}
	return reg
}

func (o *options) storeConfig(logger *slog.Logger) fs.Config {
	return fs.Config{
		Logger:      logger,
		Serializers: o.registry(),
		MustExist:   o.mustExist,
		ReadOnly:    o.readOnly,
	}
}

// New opens (creating when allowed) the category and dish stores of dir and
// wires them into a catalog.
//
//	catalog, err := platform.New("./menu", platform.WithFormat(".yaml"))
func New(dir string, opts ...Option) (*restaurant.Catalog, error) {
	o := defaultOptions().apply(opts)
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	categories, dishes := o.categoryStore, o.dishStore
	if categories == nil || dishes == nil {
		p := o.paths(dir)
		cfg := o.storeConfig(logger)
		logger.Debug("opening catalog", "dir", p.Dir, "format", o.format, "read_only", o.readOnly)

		var err error
		if categories, err = fs.Open(restaurant.KindCategory, p.Categories, cfg); err != nil {
			return nil, fmt.Errorf("open categories: %w", err)
		}
		if dishes, err = fs.Open(restaurant.KindDish, p.Dishes, cfg); err != nil {
			return nil, fmt.Errorf("open dishes: %w", err)
		}
	}

	sourceCfg := fs.Config{
		Logger:      logger,
		Serializers: o.registry(),
		MustExist:   true,
		ReadOnly:    true,
	}
	return restaurant.NewCatalog(categories, dishes, restaurant.Config{
		Logger:  logger,
		Decider: o.decider,
		OpenSource: func(kind, path string) (core.Store, error) {
			return fs.Open(kind, path, sourceCfg)
		},
	})
}
