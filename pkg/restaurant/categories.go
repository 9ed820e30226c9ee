package restaurant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/carte/pkg/core"
	"github.com/aretw0/carte/pkg/handler"
)

// ErrNotLinked is returned when a cascade needs the other handler and
// linking never happened.
var ErrNotLinked = errors.New("handlers are not linked")

// DishIndex is the part of the dish handler a category needs to find and
// update its dependents.
type DishIndex interface {
	FindByAttribute(ctx context.Context, name, pattern string) []core.Model
	ModifyAttribute(ctx context.Context, m core.Model, attr core.Attribute) (bool, error)
	Remove(ctx context.Context, m core.Model) (bool, error)
}

// Categories handles category records and cascades renames and removals
// to the dishes that reference them.
type Categories struct {
	*handler.Base
	dishes  DishIndex
	decider Decider
}

var _ handler.Handler = (*Categories)(nil)

// NewCategories creates a category handler over store. A nil decider
// declines every cascade.
func NewCategories(store core.Store, decider Decider, logger *slog.Logger) (*Categories, error) {
	base, err := handler.NewBase(KindCategory, CategorySchema, store, logger)
	if err != nil {
		return nil, err
	}
	if decider == nil {
		decider = Always(false)
	}
	return &Categories{Base: base, decider: decider}, nil
}

// LinkDishes sets the dish side once. Later calls return false and keep
// the first link.
func (c *Categories) LinkDishes(d DishIndex) bool {
	if c.dishes != nil || d == nil {
		return false
	}
	c.dishes = d
	return true
}

// SetDecider replaces the cascade decider.
func (c *Categories) SetDecider(d Decider) {
	if d == nil {
		d = Always(false)
	}
	c.decider = d
}

// Ensure adds a category called name unless it already exists.
// It reports whether a record was added.
func (c *Categories) Ensure(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, nil
	}
	m, err := c.ModelFor(name, nil)
	if err != nil {
		return false, err
	}
	return c.Add(ctx, m)
}

// dependents returns the dishes whose category is exactly name.
func (c *Categories) dependents(ctx context.Context, name string) []core.Model {
	if c.dishes == nil {
		return nil
	}
	var out []core.Model
	for _, d := range c.dishes.FindByAttribute(ctx, AttrCategory, name) {
		if d.Value(AttrCategory) == name {
			out = append(out, d)
		}
	}
	return out
}

// PlanRename computes what renaming the category current to newName
// would do to its dishes. Nothing is written.
func (c *Categories) PlanRename(ctx context.Context, current core.Model, newName string) Decision {
	name := current.Value(AttrName)
	d := Decision{Action: Rename, Category: name, NewName: newName}
	if newName != name {
		d.Affected = c.dependents(ctx, name)
	}
	return d
}

// PlanRemove computes what removing the category current would do to its
// dishes. Nothing is written.
func (c *Categories) PlanRemove(ctx context.Context, current core.Model) Decision {
	name := current.Value(AttrName)
	return Decision{Action: Remove, Category: name, Affected: c.dependents(ctx, name)}
}

// ApplyCascade carries out an accepted decision and returns how many dishes
// it changed. It stops at the first failing write; dishes handled before
// that stay changed.
func (c *Categories) ApplyCascade(ctx context.Context, d Decision) (int, error) {
	if d.Empty() {
		return 0, nil
	}
	if c.dishes == nil {
		return 0, ErrNotLinked
	}

	changed := 0
	for _, dish := range d.Affected {
		var ok bool
		var err error
		switch d.Action {
		case Rename:
			ok, err = c.dishes.ModifyAttribute(ctx, dish, core.Attribute{Name: AttrCategory, Value: d.NewName})
		case Remove:
			ok, err = c.dishes.Remove(ctx, dish)
		default:
			return changed, fmt.Errorf("unknown cascade action %d", d.Action)
		}
		if err != nil {
			return changed, fmt.Errorf("cascade %s of %q: %w", d.Action, d.Category, err)
		}
		if ok {
			changed++
		}
	}

	c.Logger().InfoContext(ctx, "cascade applied", "action", d.Action.String(), "category", d.Category, "dishes", changed)
	return changed, nil
}

// offer asks the decider about d and applies it when accepted. A decider
// failure counts as declining. Read and write failures of the menu are
// returned so the session can end, anything else is only logged.
func (c *Categories) offer(ctx context.Context, d Decision) error {
	if d.Empty() {
		return nil
	}

	accept, err := c.decider.Decide(ctx, d)
	if err != nil {
		c.Logger().WarnContext(ctx, "cascade decision failed", "action", d.Action.String(), "category", d.Category, "error", err)
		if errors.Is(err, core.ErrRead) || errors.Is(err, core.ErrWrite) {
			return err
		}
		return nil
	}
	if !accept {
		c.Logger().DebugContext(ctx, "cascade declined", "action", d.Action.String(), "category", d.Category, "dishes", len(d.Affected))
		return nil
	}

	_, err = c.ApplyCascade(ctx, d)
	return err
}

// ModifyAttribute updates the category matched by m. When the name changes
// and dishes still use the old one, the decider is asked whether to move them.
//
// The category change is committed before the cascade runs, so a non-nil
// error alongside true means the category was updated but the cascade failed.
func (c *Categories) ModifyAttribute(ctx context.Context, m core.Model, attr core.Attribute) (bool, error) {
	current, found := c.FindExact(ctx, m)
	if !found {
		return false, nil
	}

	var plan Decision
	if attr.Name == AttrName {
		plan = c.PlanRename(ctx, current, attr.Value)
	}

	ok, err := c.Base.ModifyAttribute(ctx, m, attr)
	if err != nil || !ok {
		return ok, err
	}
	return true, c.offer(ctx, plan)
}

// Modify replaces the category matched by m with full, with the same rename
// cascade as ModifyAttribute.
func (c *Categories) Modify(ctx context.Context, m, full core.Model) (bool, error) {
	current, found := c.FindExact(ctx, m)
	if !found {
		return false, nil
	}

	var plan Decision
	if newName, ok := full.Get(AttrName); ok {
		plan = c.PlanRename(ctx, current, newName)
	}

	ok, err := c.Base.Modify(ctx, m, full)
	if err != nil || !ok {
		return ok, err
	}
	return true, c.offer(ctx, plan)
}

// Remove deletes the category matched by m. When dishes still use it, the
// decider is asked whether to remove them as well.
func (c *Categories) Remove(ctx context.Context, m core.Model) (bool, error) {
	current, found := c.FindExact(ctx, m)
	if !found {
		return false, nil
	}
	plan := c.PlanRemove(ctx, current)

	ok, err := c.Base.Remove(ctx, m)
	if err != nil || !ok {
		return ok, err
	}
	return true, c.offer(ctx, plan)
}

// Import copies every category of src, skipping the ones already present.
func (c *Categories) Import(ctx context.Context, src core.Store) (int, error) {
	return c.Base.Import(ctx, src, c.Add)
}
