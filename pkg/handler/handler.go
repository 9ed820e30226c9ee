// Package handler binds an entity schema to a store.
//
// A handler knows which attributes its kind supports, how to read each one
// from a core.Prompter, and how to validate values that arrive without a
// prompt. Persistence is delegated to the bound store; entity packages embed
// Base and override the mutating calls they need to hook.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/carte/pkg/core"
)

// FieldType is the value type of a schema field.
type FieldType int

const (
	// String accepts any value.
	String FieldType = iota
	// Number accepts values that parse as a finite decimal number.
	Number
)

func (t FieldType) String() string {
	switch t {
	case String:
		return "string"
	case Number:
		return "number"
	default:
		return "unknown"
	}
}

// Field is one supported attribute of an entity kind.
type Field struct {
	Name string
	Type FieldType
}

// Schema is the ordered list of fields a kind supports.
// The first field is the default (identifying) attribute.
type Schema []Field

// Names returns the field names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Field looks up a field by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RetryMessage is shown when a number field gets a value that does not parse.
const RetryMessage = "Please enter the correct value."

// AddFunc adds one record. Import takes it so entity overrides of Add apply
// to imported records too.
type AddFunc func(ctx context.Context, m core.Model) (bool, error)

// Handler is the contract shared by every entity kind.
type Handler interface {
	Kind() string
	AttributeNames() []string
	DefaultAttribute() string

	BuildAttribute(name string, p core.Prompter) (core.Attribute, error)
	Normalize(attr core.Attribute) (core.Attribute, error)
	ReadModel(p core.Prompter) (core.Model, error)
	ModelFor(value string, p core.Prompter) (core.Model, error)

	Add(ctx context.Context, m core.Model) (bool, error)
	FindExact(ctx context.Context, m core.Model) (core.Model, bool)
	FindByAttribute(ctx context.Context, name, pattern string) []core.Model
	All(ctx context.Context) []core.Model
	Modify(ctx context.Context, m, full core.Model) (bool, error)
	ModifyAttribute(ctx context.Context, m core.Model, attr core.Attribute) (bool, error)
	Remove(ctx context.Context, m core.Model) (bool, error)

	// Import copies every record of src through the handler's own Add.
	Import(ctx context.Context, src core.Store) (int, error)

	Store() core.Store
}

// Base implements the schema and delegation half of Handler.
type Base struct {
	kind   string
	schema Schema
	store  core.Store
	logger *slog.Logger
}

// NewBase binds schema to store. The store must be bound to kind.
func NewBase(kind string, schema Schema, store core.Store, logger *slog.Logger) (*Base, error) {
	if len(schema) == 0 {
		return nil, fmt.Errorf("handler %q: empty schema", kind)
	}
	if store.Kind() != kind {
		return nil, fmt.Errorf("handler %q over %q store: %w", kind, store.Kind(), core.ErrKindMismatch)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Base{
		kind:   kind,
		schema: schema,
		store:  store,
		logger: logger.With("handler", kind),
	}, nil
}

// Kind returns the model kind the handler manages.
func (b *Base) Kind() string { return b.kind }

// Schema returns the supported fields.
func (b *Base) Schema() Schema { return b.schema }

// AttributeNames returns the supported attribute names in order.
func (b *Base) AttributeNames() []string { return b.schema.Names() }

// DefaultAttribute returns the identifying attribute name.
func (b *Base) DefaultAttribute() string { return b.schema[0].Name }

// Store returns the bound store.
func (b *Base) Store() core.Store { return b.store }

// Logger returns the handler's logger.
func (b *Base) Logger() *slog.Logger { return b.logger }

// BuildAttribute reads the named attribute from p.
// Number fields are re-prompted until the input parses.
func (b *Base) BuildAttribute(name string, p core.Prompter) (core.Attribute, error) {
	field, ok := b.schema.Field(name)
	if !ok {
		return core.Attribute{}, fmt.Errorf("%s has no attribute %q: %w", b.kind, name, core.ErrUnknownAttribute)
	}

	text := "Enter " + name + ": "
	if field.Type == String {
		v, err := p.Prompt(text)
		if err != nil {
			return core.Attribute{}, err
		}
		return core.Attribute{Name: name, Value: v}, nil
	}

	for {
		f, err := p.PromptNumber(text)
		if err == nil {
			return core.Attribute{Name: name, Value: formatNumber(f)}, nil
		}
		if !errors.Is(err, core.ErrParse) {
			return core.Attribute{}, err
		}
		if err := p.NotifyError(RetryMessage); err != nil {
			return core.Attribute{}, err
		}
	}
}

// Normalize validates attr against the schema without prompting.
// Number values are returned in canonical form ("4.50" becomes "4.5").
func (b *Base) Normalize(attr core.Attribute) (core.Attribute, error) {
	field, ok := b.schema.Field(attr.Name)
	if !ok {
		return attr, fmt.Errorf("%s has no attribute %q: %w", b.kind, attr.Name, core.ErrUnknownAttribute)
	}
	if field.Type == Number {
		f, err := ParseNumber(attr.Value)
		if err != nil {
			return attr, fmt.Errorf("%s.%s: %w", b.kind, attr.Name, err)
		}
		attr.Value = formatNumber(f)
	}
	return attr, nil
}

// NormalizeModel validates every attribute of m and checks its kind.
func (b *Base) NormalizeModel(m core.Model) (core.Model, error) {
	if m.Kind != b.kind {
		return m, fmt.Errorf("%q model for %q handler: %w", m.Kind, b.kind, core.ErrKindMismatch)
	}
	out := core.Model{Kind: m.Kind, Attributes: make([]core.Attribute, 0, len(m.Attributes))}
	for _, a := range m.Attributes {
		n, err := b.Normalize(a)
		if err != nil {
			return m, err
		}
		out.Attributes = append(out.Attributes, n)
	}
	return out, nil
}

// ReadModel prompts for every field in schema order.
func (b *Base) ReadModel(p core.Prompter) (core.Model, error) {
	first, err := b.BuildAttribute(b.DefaultAttribute(), p)
	if err != nil {
		return core.Model{}, err
	}
	return b.ModelFor(first.Value, p)
}

// ModelFor builds a model whose default attribute is value and prompts for
// the remaining fields. A kind with a single field never touches p.
func (b *Base) ModelFor(value string, p core.Prompter) (core.Model, error) {
	m := core.NewModel(b.kind, core.Attribute{Name: b.DefaultAttribute(), Value: value})
	for _, f := range b.schema[1:] {
		attr, err := b.BuildAttribute(f.Name, p)
		if err != nil {
			return core.Model{}, err
		}
		m.Attributes = append(m.Attributes, attr)
	}
	return m, nil
}

func (b *Base) Add(ctx context.Context, m core.Model) (bool, error) {
	return b.store.Add(ctx, m)
}

func (b *Base) FindExact(ctx context.Context, m core.Model) (core.Model, bool) {
	return b.store.FindExact(ctx, m)
}

func (b *Base) FindByAttribute(ctx context.Context, name, pattern string) []core.Model {
	return b.store.FindByAttribute(ctx, name, pattern)
}

// All returns every record carrying the default attribute.
func (b *Base) All(ctx context.Context) []core.Model {
	return b.store.FindByAttribute(ctx, b.DefaultAttribute(), "*")
}

func (b *Base) Modify(ctx context.Context, m, full core.Model) (bool, error) {
	return b.store.Modify(ctx, m, full)
}

func (b *Base) ModifyAttribute(ctx context.Context, m core.Model, attr core.Attribute) (bool, error) {
	return b.store.ModifyAttribute(ctx, m, attr)
}

func (b *Base) Remove(ctx context.Context, m core.Model) (bool, error) {
	return b.store.Remove(ctx, m)
}

// Import passes every record of src that carries the default attribute to
// add, in src order. Records add reports as already present are skipped.
// It returns how many records were added; on error, records added before the
// failure stay added.
func (b *Base) Import(ctx context.Context, src core.Store, add AddFunc) (int, error) {
	if src.Kind() != b.kind {
		return 0, fmt.Errorf("import %q records into %q: %w", src.Kind(), b.kind, core.ErrKindMismatch)
	}
	if add == nil {
		add = b.Add
	}

	added := 0
	for _, m := range src.FindByAttribute(ctx, b.DefaultAttribute(), "*") {
		ok, err := add(ctx, m)
		if err != nil {
			return added, fmt.Errorf("import into %s: %w", b.kind, err)
		}
		if ok {
			added++
		}
	}

	b.logger.DebugContext(ctx, "import finished", "added", added)
	return added, nil
}

// ParseNumber parses a number field value. Surrounding space is ignored;
// NaN and infinities are rejected.
func ParseNumber(v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q: %w", v, core.ErrParse)
	}
	return f, nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
