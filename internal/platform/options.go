package platform

import (
	"log/slog"

	"github.com/aretw0/carte/pkg/adapters/fs"
	"github.com/aretw0/carte/pkg/core"
	"github.com/aretw0/carte/pkg/restaurant"
)

// Default backing file names, without extension.
const (
	DefaultCategoriesName = "categories"
	DefaultDishesName     = "dishes"
	DefaultFormat         = ".json"
)

// options holds the internal configuration for opening a catalog.
type options struct {
	logger         *slog.Logger
	format         string
	categoriesFile string
	dishesFile     string
	decider        restaurant.Decider
	readOnly       bool
	mustExist      bool
	forceTemp      bool
	devSafety      bool
	serializers    map[string]fs.Serializer
	categoryStore  core.Store
	dishStore      core.Store
}

// Option defines a functional option for configuring a catalog.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		format:      DefaultFormat,
		devSafety:   true,
		serializers: make(map[string]fs.Serializer),
	}
}

func (o *options) apply(opts []Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger shared by stores and handlers.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFormat picks the file format by extension (".json", ".yaml", ".xml", ".csv").
// A missing leading dot is added.
func WithFormat(ext string) Option {
	return func(o *options) {
		if ext == "" {
			return
		}
		if ext[0] != '.' {
			ext = "." + ext
		}
		o.format = ext
	}
}

// WithFileNames overrides the backing file names. Names without an extension
// get the configured format's; empty names keep the defaults.
func WithFileNames(categories, dishes string) Option {
	return func(o *options) {
		if categories != "" {
			o.categoriesFile = categories
		}
		if dishes != "" {
			o.dishesFile = dishes
		}
	}
}

// WithDecider sets who answers category cascades. Defaults to declining.
func WithDecider(d restaurant.Decider) Option {
	return func(o *options) {
		o.decider = d
	}
}

// WithReadOnly opens both stores read-only: mutations fail with
// core.ErrReadOnly and nothing is created on disk.
// Read-only mode also bypasses the dev sandbox.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithMustExist fails instead of creating missing backing files.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithSerializer registers a serializer for an extension, replacing the
// built-in one if any.
func WithSerializer(ext string, s fs.Serializer) Option {
	return func(o *options) {
		o.serializers[ext] = s
	}
}

// WithStores injects ready-made stores, skipping the filesystem adapter.
func WithStores(categories, dishes core.Store) Option {
	return func(o *options) {
		o.categoryStore = categories
		o.dishStore = dishes
	}
}

// WithForceTemp forces the data directory into the temp sandbox.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true) data goes to a temporary directory so a dev run never
// touches real menus.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}
