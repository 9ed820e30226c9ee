package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/carte/pkg/adapters/fs"
	"github.com/aretw0/carte/pkg/core"
)

func dish(name, category, price string) core.Model {
	return core.NewModel("dish",
		core.Attribute{Name: "name", Value: name},
		core.Attribute{Name: "category", Value: category},
		core.Attribute{Name: "price", Value: price},
	)
}

func byName(kind, name string) core.Model {
	return core.NewModel(kind, core.Attribute{Name: "name", Value: name})
}

// openStore opens a dish store in a fresh temp directory.
func openStore(t *testing.T, file string, opts ...func(*fs.Config)) (*fs.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data", file)
	cfg := fs.Config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	s, err := fs.Open("dish", path, cfg)
	require.NoError(t, err)
	return s, path
}

func TestOpen(t *testing.T) {
	t.Run("Creates Empty Document if Missing", func(t *testing.T) {
		s, path := openStore(t, "dishes.json")

		_, err := os.Stat(path)
		require.NoError(t, err, "backing file should be created")
		assert.Empty(t, s.All(context.Background()))
		assert.Equal(t, "dish", s.Kind())
	})

	t.Run("Fails if MustExist and Missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dishes.json")
		_, err := fs.Open("dish", path, fs.Config{MustExist: true})
		assert.ErrorIs(t, err, core.ErrStoreInit)

		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr), "nothing should be written")
	})

	t.Run("Rejects Empty Kind", func(t *testing.T) {
		_, err := fs.Open("", filepath.Join(t.TempDir(), "x.json"), fs.Config{})
		assert.ErrorIs(t, err, core.ErrStoreInit)
	})

	t.Run("Rejects Unknown Format", func(t *testing.T) {
		_, err := fs.Open("dish", filepath.Join(t.TempDir(), "dishes.txt"), fs.Config{})
		assert.ErrorIs(t, err, core.ErrStoreInit)
	})

	t.Run("Rejects Malformed File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dishes.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		_, err := fs.Open("dish", path, fs.Config{})
		assert.ErrorIs(t, err, core.ErrStoreInit)
	})

	t.Run("Rejects File of Another Kind", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "menu.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"kind":"category","records":[{"name":"Soup"}]}`), 0644))

		_, err := fs.Open("dish", path, fs.Config{})
		assert.ErrorIs(t, err, core.ErrStoreInit)
	})

	t.Run("Loads Existing Records", func(t *testing.T) {
		s, path := openStore(t, "dishes.yaml")
		ctx := context.Background()
		_, err := s.Add(ctx, dish("Borscht", "Soup", "4.5"))
		require.NoError(t, err)

		reopened, err := fs.Open("dish", path, fs.Config{})
		require.NoError(t, err)
		all := reopened.All(ctx)
		require.Len(t, all, 1)
		assert.True(t, dish("Borscht", "Soup", "4.5").Equal(all[0]))
	})
}

func TestStore_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("Is Idempotent", func(t *testing.T) {
		s, _ := openStore(t, "dishes.json")

		added, err := s.Add(ctx, dish("Borscht", "Soup", "4.5"))
		require.NoError(t, err)
		assert.True(t, added)

		added, err = s.Add(ctx, dish("Borscht", "Soup", "4.5"))
		require.NoError(t, err)
		assert.False(t, added, "duplicate must be reported as not added")
		assert.Equal(t, 1, s.Len())
	})

	t.Run("Rejects Kind Mismatch", func(t *testing.T) {
		s, _ := openStore(t, "dishes.json")

		added, err := s.Add(ctx, byName("category", "Soup"))
		assert.ErrorIs(t, err, core.ErrKindMismatch)
		assert.False(t, added)
		assert.Zero(t, s.Len())
	})

	t.Run("Does Not Alias Caller Model", func(t *testing.T) {
		s, _ := openStore(t, "dishes.json")
		m := dish("Borscht", "Soup", "4.5")
		_, err := s.Add(ctx, m)
		require.NoError(t, err)

		m.Attributes[0].Value = "Changed"
		_, ok := s.FindExact(ctx, byName("dish", "Borscht"))
		assert.True(t, ok)
	})
}

func TestStore_Find(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t, "dishes.json")
	for _, m := range []core.Model{
		dish("Borscht", "Soup", "4.5"),
		dish("Shchi", "Soup", "3"),
		dish("Blini", "Dessert", "2.5"),
	} {
		_, err := s.Add(ctx, m)
		require.NoError(t, err)
	}

	t.Run("Exact With Partial Candidate", func(t *testing.T) {
		found, ok := s.FindExact(ctx, core.NewModel("dish", core.Attribute{Name: "category", Value: "Soup"}))
		require.True(t, ok)
		assert.Equal(t, "Borscht", found.Value("name"), "first match in store order")
	})

	t.Run("Exact Misses on Unknown Attribute", func(t *testing.T) {
		_, ok := s.FindExact(ctx, core.NewModel("dish", core.Attribute{Name: "spicy", Value: "yes"}))
		assert.False(t, ok)
	})

	t.Run("Exact Returns a Copy", func(t *testing.T) {
		found, ok := s.FindExact(ctx, byName("dish", "Blini"))
		require.True(t, ok)
		found.Set("price", "100")

		again, _ := s.FindExact(ctx, byName("dish", "Blini"))
		assert.Equal(t, "2.5", again.Value("price"))
	})

	tests := []struct {
		attr, pattern string
		want          []string
	}{
		{"category", "Soup", []string{"Borscht", "Shchi"}},
		{"name", "*i", []string{"Shchi", "Blini"}},
		{"name", "B*", []string{"Borscht", "Blini"}},
		{"name", "Sh?hi", []string{"Shchi"}},
		{"name", "*", []string{"Borscht", "Shchi", "Blini"}},
		{"name", "borscht", nil},
		{"spicy", "*", nil},
	}
	for _, tt := range tests {
		t.Run("By Attribute "+tt.attr+"="+tt.pattern, func(t *testing.T) {
			var names []string
			for _, m := range s.FindByAttribute(ctx, tt.attr, tt.pattern) {
				names = append(names, m.Value("name"))
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestStore_Modify(t *testing.T) {
	ctx := context.Background()

	t.Run("Attribute Update Persists", func(t *testing.T) {
		s, path := openStore(t, "dishes.xml")
		_, err := s.Add(ctx, dish("Borscht", "Soup", "4.5"))
		require.NoError(t, err)

		ok, err := s.ModifyAttribute(ctx, byName("dish", "Borscht"), core.Attribute{Name: "price", Value: "5"})
		require.NoError(t, err)
		assert.True(t, ok)

		reopened, err := fs.Open("dish", path, fs.Config{})
		require.NoError(t, err)
		got, _ := reopened.FindExact(ctx, byName("dish", "Borscht"))
		assert.Equal(t, "5", got.Value("price"))
	})

	t.Run("Attribute Insert Appends", func(t *testing.T) {
		s, _ := openStore(t, "dishes.json")
		_, err := s.Add(ctx, byName("dish", "Kvass"))
		require.NoError(t, err)

		ok, err := s.ModifyAttribute(ctx, byName("dish", "Kvass"), core.Attribute{Name: "category", Value: "Drinks"})
		require.NoError(t, err)
		assert.True(t, ok)

		got, _ := s.FindExact(ctx, byName("dish", "Kvass"))
		assert.Equal(t, []string{"name", "category"}, got.Names())
	})

	t.Run("Attribute Misses Unknown Record", func(t *testing.T) {
		s, _ := openStore(t, "dishes.json")
		ok, err := s.ModifyAttribute(ctx, byName("dish", "Ghost"), core.Attribute{Name: "price", Value: "1"})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Full Replace", func(t *testing.T) {
		s, _ := openStore(t, "dishes.json")
		_, err := s.Add(ctx, dish("Borscht", "Soup", "4.5"))
		require.NoError(t, err)

		ok, err := s.Modify(ctx, byName("dish", "Borscht"), byName("dish", "Okroshka"))
		require.NoError(t, err)
		assert.True(t, ok)

		all := s.All(ctx)
		require.Len(t, all, 1)
		assert.True(t, byName("dish", "Okroshka").Equal(all[0]))
	})
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t, "dishes.csv")
	_, err := s.Add(ctx, dish("Borscht", "Soup", "4.5"))
	require.NoError(t, err)
	_, err = s.Add(ctx, dish("Blini", "Dessert", "2.5"))
	require.NoError(t, err)

	ok, err := s.Remove(ctx, byName("dish", "Borscht"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Remove(ctx, byName("dish", "Borscht"))
	require.NoError(t, err)
	assert.False(t, ok, "second remove finds nothing")

	all := s.All(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, "Blini", all[0].Value("name"))
}

func TestStore_ReadOnly(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dishes.json")

	s, err := fs.Open("dish", path, fs.Config{ReadOnly: true})
	require.NoError(t, err)

	_, err = s.Add(ctx, dish("Borscht", "Soup", "4.5"))
	assert.ErrorIs(t, err, core.ErrReadOnly)
	_, err = s.Remove(ctx, byName("dish", "Borscht"))
	assert.ErrorIs(t, err, core.ErrReadOnly)
	_, err = s.ModifyAttribute(ctx, byName("dish", "Borscht"), core.Attribute{Name: "price", Value: "1"})
	assert.ErrorIs(t, err, core.ErrReadOnly)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "read-only store must never write")
}

func TestStore_RollbackOnPersistFailure(t *testing.T) {
	ctx := context.Background()
	s, path := openStore(t, "dishes.json")
	_, err := s.Add(ctx, dish("Borscht", "Soup", "4.5"))
	require.NoError(t, err)

	// A directory in place of the backing file makes the final rename fail.
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.MkdirAll(filepath.Join(path, "blocker"), 0755))

	added, err := s.Add(ctx, dish("Blini", "Dessert", "2.5"))
	assert.True(t, errors.Is(err, core.ErrPersist), "got %v", err)
	assert.False(t, added)

	_, err = s.ModifyAttribute(ctx, byName("dish", "Borscht"), core.Attribute{Name: "price", Value: "9"})
	assert.ErrorIs(t, err, core.ErrPersist)

	_, err = s.Remove(ctx, byName("dish", "Borscht"))
	assert.ErrorIs(t, err, core.ErrPersist)

	all := s.All(ctx)
	require.Len(t, all, 1, "failed mutations must not stick")
	assert.True(t, dish("Borscht", "Soup", "4.5").Equal(all[0]))

	require.NoError(t, os.RemoveAll(path))
	added, err = s.Add(ctx, dish("Blini", "Dessert", "2.5"))
	require.NoError(t, err)
	assert.True(t, added)
}

func TestStore_InvalidUTF8(t *testing.T) {
	ctx := context.Background()
	bad := "\xff\xfe"

	for _, file := range []string{"dishes.json", "dishes.yaml", "dishes.xml"} {
		t.Run(file, func(t *testing.T) {
			s, _ := openStore(t, file)
			_, err := s.Add(ctx, dish("Borscht", "Soup", "4.5"))
			require.NoError(t, err)

			added, err := s.Add(ctx, dish(bad, "Soup", "1"))
			assert.ErrorIs(t, err, core.ErrPersist)
			assert.False(t, added)

			_, err = s.ModifyAttribute(ctx, byName("dish", "Borscht"), core.Attribute{Name: "category", Value: bad})
			assert.ErrorIs(t, err, core.ErrPersist)

			all := s.All(ctx)
			require.Len(t, all, 1)
			assert.True(t, dish("Borscht", "Soup", "4.5").Equal(all[0]), "memory matches the file")
		})
	}
}

func TestStore_State(t *testing.T) {
	ctx := context.Background()
	s, path := openStore(t, "dishes.json")
	_, err := s.Add(ctx, dish("Borscht", "Soup", "4.5"))
	require.NoError(t, err)

	state, ok := s.State().(fs.StoreState)
	require.True(t, ok)
	assert.Equal(t, "dish", state.Kind)
	assert.Equal(t, path, state.Path)
	assert.Equal(t, ".json", state.Format)
	assert.Equal(t, 1, state.Records)
	assert.NotNil(t, state.LastPersist)
	assert.Equal(t, "store", s.ComponentType())
}
