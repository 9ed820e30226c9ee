package core

import "context"

// Store defines the contract for durable CRUD over records of a single kind.
// Records are located by matching (see Model.Matches) rather than by key, so the
// same calls serve "the one record identical to this candidate" and
// "everything agreeing on these fields".
type Store interface {
	// Kind returns the model kind the store is bound to.
	Kind() string

	// Add appends m unless a matching record already exists.
	// It reports whether a record was written.
	Add(ctx context.Context, m Model) (bool, error)

	// FindExact returns the first record matched by m.
	FindExact(ctx context.Context, m Model) (Model, bool)

	// FindByAttribute returns every record whose attribute name matches the
	// wildcard pattern, in store order. Records without the attribute never match.
	FindByAttribute(ctx context.Context, name, pattern string) []Model

	// Modify replaces all attributes of the record matched by m with those of full.
	Modify(ctx context.Context, m, full Model) (bool, error)

	// ModifyAttribute sets (or inserts) a single attribute on the record matched by m.
	ModifyAttribute(ctx context.Context, m Model, attr Attribute) (bool, error)

	// Remove deletes the record matched by m.
	Remove(ctx context.Context, m Model) (bool, error)

	// All returns every record in store order.
	All(ctx context.Context) []Model
}
