package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Kind        string     `json:"kind"`
	Path        string     `json:"path"`
	Format      string     `json:"format"`
	Records     int        `json:"records"`
	ReadOnly    bool       `json:"read_only"`
	LastPersist *time.Time `json:"last_persist,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	return StoreState{
		Kind:        s.kind,
		Path:        s.path,
		Format:      s.format,
		Records:     len(s.records),
		ReadOnly:    s.config.ReadOnly,
		LastPersist: s.lastPersist,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
