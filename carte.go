package carte

import (
	"log/slog"

	"github.com/aretw0/carte/internal/platform"
	"github.com/aretw0/carte/pkg/adapters/fs"
	"github.com/aretw0/carte/pkg/core"
	"github.com/aretw0/carte/pkg/restaurant"
)

// --- Types ---

// Catalog owns the linked category and dish handlers.
type Catalog = restaurant.Catalog

// Model is a record made of ordered attributes.
type Model = core.Model

// Attribute is a named string value of a model.
type Attribute = core.Attribute

// Decider answers category cascades.
type Decider = restaurant.Decider

// Decision describes a pending cascade.
type Decision = restaurant.Decision

// Paths are the resolved locations of a data directory.
type Paths = platform.Paths

// --- Configuration ---

// Option defines a functional option for opening a catalog.
type Option = platform.Option

// WithLogger sets the logger shared by stores and handlers.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithFormat picks the file format by extension.
func WithFormat(ext string) Option {
	return platform.WithFormat(ext)
}

// WithFileNames overrides the backing file names.
func WithFileNames(categories, dishes string) Option {
	return platform.WithFileNames(categories, dishes)
}

// WithDecider sets who answers category cascades.
func WithDecider(d Decider) Option {
	return platform.WithDecider(d)
}

// WithReadOnly opens both stores read-only.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithMustExist fails instead of creating missing files.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithSerializer registers a serializer for a file extension.
func WithSerializer(ext string, s fs.Serializer) Option {
	return platform.WithSerializer(ext, s)
}

// WithStores injects ready-made stores.
func WithStores(categories, dishes core.Store) Option {
	return platform.WithStores(categories, dishes)
}

// WithForceTemp forces the data directory into the temp sandbox.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the sandbox used during `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// Open opens the catalog kept in dir.
func Open(dir string, opts ...Option) (*Catalog, error) {
	return platform.New(dir, opts...)
}

// Init creates the data directory and its backing files.
func Init(dir string, opts ...Option) (Paths, error) {
	return platform.Init(dir, opts...)
}

// --- Cascade deciders ---

// Always returns a Decider giving the same answer to every cascade.
func Always(accept bool) Decider {
	return restaurant.Always(accept)
}

// --- Safety & Utils ---

// ResolvePaths computes the backing file locations for dir.
func ResolvePaths(dir string, opts ...Option) Paths {
	return platform.ResolvePaths(dir, opts...)
}

// IsDevRun reports whether the process runs via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot walks up from startDir to the nearest carte data directory.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
