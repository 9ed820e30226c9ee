package restaurant

import (
	"context"
	"log/slog"

	"github.com/aretw0/carte/pkg/core"
	"github.com/aretw0/carte/pkg/handler"
)

// CategoryEnsurer is the part of the category handler a dish needs to make
// sure its category exists.
type CategoryEnsurer interface {
	Ensure(ctx context.Context, name string) (bool, error)
}

// Dishes handles dish records and creates missing categories on reference.
type Dishes struct {
	*handler.Base
	categories CategoryEnsurer
}

var _ handler.Handler = (*Dishes)(nil)

// NewDishes creates a dish handler over store.
func NewDishes(store core.Store, logger *slog.Logger) (*Dishes, error) {
	base, err := handler.NewBase(KindDish, DishSchema, store, logger)
	if err != nil {
		return nil, err
	}
	return &Dishes{Base: base}, nil
}

// LinkCategories sets the category side once. Later calls return false and
// keep the first link.
func (d *Dishes) LinkCategories(c CategoryEnsurer) bool {
	if d.categories != nil || c == nil {
		return false
	}
	d.categories = c
	return true
}

// ensureCategory creates the category called name if needed. Failures are
// logged and never reach the caller.
func (d *Dishes) ensureCategory(ctx context.Context, name string) {
	if d.categories == nil {
		d.Logger().DebugContext(ctx, "no category handler linked, skipping ensure", "category", name)
		return
	}
	added, err := d.categories.Ensure(ctx, name)
	if err != nil {
		d.Logger().WarnContext(ctx, "could not create referenced category", "category", name, "error", err)
		return
	}
	if added {
		d.Logger().InfoContext(ctx, "category created from dish reference", "category", name)
	}
}

// Add writes the dish, then makes sure its category exists. The category is
// ensured for duplicates too, which repairs dangling references.
func (d *Dishes) Add(ctx context.Context, m core.Model) (bool, error) {
	added, err := d.Base.Add(ctx, m)
	if err != nil {
		return false, err
	}
	if category, ok := m.Get(AttrCategory); ok {
		d.ensureCategory(ctx, category)
	}
	return added, nil
}

// ModifyAttribute updates the dish matched by m. A successful category change
// ensures the new category exists.
func (d *Dishes) ModifyAttribute(ctx context.Context, m core.Model, attr core.Attribute) (bool, error) {
	ok, err := d.Base.ModifyAttribute(ctx, m, attr)
	if err != nil || !ok {
		return ok, err
	}
	if attr.Name == AttrCategory {
		d.ensureCategory(ctx, attr.Value)
	}
	return true, nil
}

// Modify replaces the dish matched by m with full and ensures the category
// full names.
func (d *Dishes) Modify(ctx context.Context, m, full core.Model) (bool, error) {
	ok, err := d.Base.Modify(ctx, m, full)
	if err != nil || !ok {
		return ok, err
	}
	if category, has := full.Get(AttrCategory); has {
		d.ensureCategory(ctx, category)
	}
	return true, nil
}

// Import copies every dish of src through Add, so imported dishes get their
// categories too.
func (d *Dishes) Import(ctx context.Context, src core.Store) (int, error) {
	return d.Base.Import(ctx, src, d.Add)
}
