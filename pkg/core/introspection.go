package core

import (
	"github.com/aretw0/introspection"
)

// ComponentState pairs a component's type name with its exported state.
type ComponentState struct {
	Type  string `json:"type"`
	State any    `json:"state,omitempty"`
}

// Describe exposes v for observability when it implements the introspection
// interfaces. Anything else is reported as "unknown" without state.
func Describe(v any) ComponentState {
	cs := ComponentState{Type: "unknown"}
	if comp, ok := v.(introspection.Component); ok {
		cs.Type = comp.ComponentType()
	}
	if in, ok := v.(introspection.Introspectable); ok {
		cs.State = in.State()
	}
	return cs
}
