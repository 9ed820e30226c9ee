package fs

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/aretw0/carte/pkg/core"
)

// Store implements core.Store over a single backing file holding records of one kind.
// The whole document lives in memory and is rewritten after every mutation.
type Store struct {
	kind        string
	path        string
	format      string
	serializer  Serializer
	records     []core.Model
	config      Config
	logger      *slog.Logger
	lastPersist *time.Time
}

// Config holds the configuration for a file-backed store.
type Config struct {
	Logger *slog.Logger
	// Serializers overrides the format registry (keyed by extension, e.g. ".json").
	Serializers map[string]Serializer
	// MustExist fails Open when the file is missing instead of creating it.
	MustExist bool
	// ReadOnly rejects every mutation with core.ErrReadOnly and never writes.
	ReadOnly bool
	// Perm is the mode used for the backing file. Defaults to 0644.
	Perm os.FileMode
}

var _ core.Store = (*Store)(nil)

// Open loads the store bound to kind from path, creating and persisting an
// empty document when the file does not exist yet.
//
// Workflow:
//  1. Pick the serializer from the file extension.
//  2. Read and parse the file; reject data declaring another kind.
//  3. If missing (and allowed), create parent directories and write an empty document.
func Open(kind, path string, config Config) (*Store, error) {
	if kind == "" {
		return nil, errors.Wrap(core.ErrStoreInit, "store kind is empty")
	}
	if config.Perm == 0 {
		config.Perm = 0644
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	registry := config.Serializers
	if registry == nil {
		registry = DefaultSerializers()
	}
	format := FormatOf(path)
	serializer, ok := registry[format]
	if !ok {
		return nil, errors.Wrapf(core.ErrStoreInit, "unsupported format %q for %s", format, path)
	}

	s := &Store{
		kind:       kind,
		path:       path,
		format:     format,
		serializer: serializer,
		config:     config,
		logger:     logger.With("kind", kind, "path", path),
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := s.load(data); err != nil {
			return nil, err
		}
		s.logger.Debug("store loaded", "records", len(s.records))
	case os.IsNotExist(err):
		if config.MustExist {
			return nil, errors.Wrapf(core.ErrStoreInit, "%s does not exist", path)
		}
		if config.ReadOnly {
			s.logger.Debug("read-only store over missing file, starting empty")
			return s, nil
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrapf(core.ErrStoreInit, "create directory for %s: %v", path, err)
		}
		if err := s.persist(); err != nil {
			return nil, errors.Wrapf(core.ErrStoreInit, "create %s: %v", path, err)
		}
		s.logger.Debug("store created")
	default:
		return nil, errors.Wrapf(core.ErrStoreInit, "read %s: %v", path, err)
	}

	return s, nil
}

func (s *Store) load(data []byte) error {
	doc, err := s.serializer.Parse(bytes.NewReader(data), s.kind)
	if err != nil {
		return errors.Wrapf(core.ErrStoreInit, "parse %s: %v", s.path, err)
	}
	if doc.Kind != "" && doc.Kind != s.kind {
		return errors.Wrapf(core.ErrStoreInit, "%s holds %q records, store is bound to %q", s.path, doc.Kind, s.kind)
	}
	s.records = doc.Records
	return nil
}

// Kind returns the model kind the store is bound to.
func (s *Store) Kind() string { return s.kind }

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Len returns the number of stored records.
func (s *Store) Len() int { return len(s.records) }

// Add appends m unless an equal record already exists.
func (s *Store) Add(ctx context.Context, m core.Model) (bool, error) {
	if m.Kind != s.kind {
		return false, errors.Wrapf(core.ErrKindMismatch, "cannot add %q to %q store", m.Kind, s.kind)
	}
	if err := s.writable("add"); err != nil {
		return false, err
	}
	if s.indexOf(m) >= 0 {
		return false, nil
	}

	record := m.Clone()
	err := s.commit(ctx, "add", func() {
		s.records = append(s.records, record)
	})
	return err == nil, err
}

// FindExact returns a copy of the first record matched by m.
func (s *Store) FindExact(ctx context.Context, m core.Model) (core.Model, bool) {
	i := s.indexOf(m)
	if i < 0 {
		return core.Model{}, false
	}
	return s.records[i].Clone(), true
}

// FindByAttribute returns copies of every record whose attribute name matches pattern.
func (s *Store) FindByAttribute(ctx context.Context, name, pattern string) []core.Model {
	p := core.CompilePattern(pattern)
	var found []core.Model
	for _, rec := range s.records {
		v, ok := rec.Get(name)
		if ok && p.Match(v) {
			found = append(found, rec.Clone())
		}
	}
	return found
}

// All returns copies of every record in store order.
func (s *Store) All(ctx context.Context) []core.Model {
	return cloneAll(s.records)
}

// Modify replaces every attribute of the record matched by m with those of full.
func (s *Store) Modify(ctx context.Context, m, full core.Model) (bool, error) {
	if err := s.writable("modify"); err != nil {
		return false, err
	}
	i := s.indexOf(m)
	if i < 0 {
		return false, nil
	}

	attrs := full.Clone().Attributes
	err := s.commit(ctx, "modify", func() {
		s.records[i].Attributes = attrs
	})
	return err == nil, err
}

// ModifyAttribute sets or inserts attr on the record matched by m.
func (s *Store) ModifyAttribute(ctx context.Context, m core.Model, attr core.Attribute) (bool, error) {
	if err := s.writable("modify"); err != nil {
		return false, err
	}
	i := s.indexOf(m)
	if i < 0 {
		return false, nil
	}

	err := s.commit(ctx, "modify attribute", func() {
		s.records[i].Set(attr.Name, attr.Value)
	})
	return err == nil, err
}

// Remove deletes the record matched by m.
func (s *Store) Remove(ctx context.Context, m core.Model) (bool, error) {
	if err := s.writable("remove"); err != nil {
		return false, err
	}
	i := s.indexOf(m)
	if i < 0 {
		return false, nil
	}

	err := s.commit(ctx, "remove", func() {
		s.records = append(s.records[:i:i], s.records[i+1:]...)
	})
	return err == nil, err
}

func (s *Store) indexOf(m core.Model) int {
	for i, rec := range s.records {
		if m.Matches(rec) {
			return i
		}
	}
	return -1
}

func (s *Store) writable(op string) error {
	if s.config.ReadOnly {
		return errors.Wrapf(core.ErrReadOnly, "%s on %s", op, s.path)
	}
	return nil
}

// commit applies mutate and persists the document. If persisting fails the
// in-memory records are restored, so a failed call leaves nothing committed.
func (s *Store) commit(ctx context.Context, op string, mutate func()) error {
	snapshot := cloneAll(s.records)
	mutate()

	if err := s.persist(); err != nil {
		s.records = snapshot
		s.logger.WarnContext(ctx, "persist failed, mutation rolled back", "op", op, "error", err)
		return err
	}

	s.logger.DebugContext(ctx, "document persisted", "op", op, "records", len(s.records))
	return nil
}

func cloneAll(records []core.Model) []core.Model {
	out := make([]core.Model, len(records))
	for i, rec := range records {
		out[i] = rec.Clone()
	}
	return out
}

func (s *Store) persist() error {
	data, err := s.serializer.Serialize(Document{Kind: s.kind, Records: s.records})
	if err != nil {
		return errors.Wrapf(core.ErrPersist, "serialize %s: %v", s.path, err)
	}
	if err := writeFileAtomic(s.path, data, s.config.Perm); err != nil {
		return errors.Wrap(core.ErrPersist, err.Error())
	}
	now := time.Now()
	s.lastPersist = &now
	return nil
}
