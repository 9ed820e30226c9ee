// Package core holds the record model and the ports the rest of carte is built on.
package core

import (
	"strings"

	"github.com/jinzhu/copier"
)

// Attribute is a single named string value of a model.
// The name is fixed once created; the value may change.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Model is a record of a given kind ("dish", "category") made of ordered attributes.
// Attribute names are expected to be unique; lookups return the first match.
type Model struct {
	Kind       string      `json:"kind"`
	Attributes []Attribute `json:"attributes"`
}

// NewModel builds a model of the given kind from the attributes, in order.
func NewModel(kind string, attrs ...Attribute) Model {
	return Model{Kind: kind, Attributes: attrs}
}

// Get returns the value of the first attribute called name.
func (m Model) Get(name string) (string, bool) {
	for _, a := range m.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Value is Get without the presence flag.
func (m Model) Value(name string) string {
	v, _ := m.Get(name)
	return v
}

// Set assigns value to the attribute called name, appending it if missing.
func (m *Model) Set(name, value string) {
	for i := range m.Attributes {
		if m.Attributes[i].Name == name {
			m.Attributes[i].Value = value
			return
		}
	}
	m.Attributes = append(m.Attributes, Attribute{Name: name, Value: value})
}

// Names lists the attribute names in order.
func (m Model) Names() []string {
	names := make([]string, 0, len(m.Attributes))
	for _, a := range m.Attributes {
		names = append(names, a.Name)
	}
	return names
}

// Matches reports whether every attribute carried by m equals the same-named
// attribute of record. Attributes the record has and m lacks are ignored, so a
// model with no attributes matches any record.
func (m Model) Matches(record Model) bool {
	for _, a := range m.Attributes {
		v, ok := record.Get(a.Name)
		if !ok || v != a.Value {
			return false
		}
	}
	return true
}

// Clone returns a deep copy so callers never alias stored records.
func (m Model) Clone() Model {
	var out Model
	if err := copier.CopyWithOption(&out, &m, copier.Option{DeepCopy: true}); err != nil {
		out = Model{Kind: m.Kind, Attributes: append([]Attribute(nil), m.Attributes...)}
	}
	return out
}

// Equal reports whether m and other have the same kind and identical attributes in the same order.
func (m Model) Equal(other Model) bool {
	if m.Kind != other.Kind || len(m.Attributes) != len(other.Attributes) {
		return false
	}
	for i := range m.Attributes {
		if m.Attributes[i] != other.Attributes[i] {
			return false
		}
	}
	return true
}

// String renders one "name: value" line per attribute.
func (m Model) String() string {
	var b strings.Builder
	for _, a := range m.Attributes {
		b.WriteString(a.Name)
		b.WriteString(": ")
		b.WriteString(a.Value)
		b.WriteByte('\n')
	}
	return b.String()
}
