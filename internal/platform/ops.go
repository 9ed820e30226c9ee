package platform

import (
	"fmt"
	"os"

	"github.com/aretw0/carte/pkg/restaurant"
)

// Init creates the data directory and both backing files if missing and
// returns their paths. Existing files are loaded and left as they are.
func Init(dir string, opts ...Option) (Paths, error) {
	opts = append(opts, WithReadOnly(false), WithMustExist(false))
	o := defaultOptions().apply(opts)
	p := o.paths(dir)

	if err := os.MkdirAll(p.Dir, 0755); err != nil {
		return p, fmt.Errorf("create data directory: %w", err)
	}
	if _, err := New(dir, opts...); err != nil {
		return p, err
	}
	return p, nil
}

// Status opens dir read-only and reports the catalog state. Missing files
// are an error; nothing is created.
func Status(dir string, opts ...Option) (restaurant.CatalogState, error) {
	opts = append(opts, WithReadOnly(true), WithMustExist(true))
	catalog, err := New(dir, opts...)
	if err != nil {
		return restaurant.CatalogState{}, err
	}
	return catalog.State().(restaurant.CatalogState), nil
}
