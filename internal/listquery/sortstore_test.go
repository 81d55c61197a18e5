package listquery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "prefs.json")
	store := NewFileStore(path)

	_, ok := store.Get("investors_sort_orderBy")
	assert.False(t, ok)

	require.NoError(t, store.Set("investors_sort_orderBy", "fullName"))
	require.NoError(t, store.Set("investors_sort_order", "desc"))

	// a second store over the same file sees the persisted values
	reopened := NewFileStore(path)
	v, ok := reopened.Get("investors_sort_orderBy")
	assert.True(t, ok)
	assert.Equal(t, "fullName", v)

	require.NoError(t, reopened.Delete("investors_sort_orderBy"))
	_, ok = reopened.Get("investors_sort_orderBy")
	assert.False(t, ok)

	v, ok = reopened.Get("investors_sort_order")
	assert.True(t, ok)
	assert.Equal(t, "desc", v)
}

func TestFileStoreToleratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewFileStore(path)
	_, ok := store.Get("anything")
	assert.False(t, ok)

	require.NoError(t, store.Set("k", "v"))
	v, ok := store.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestLoadSortDefaults(t *testing.T) {
	store := NewMemStore()

	field, direction := loadSort(store, "customers", "id")
	assert.Equal(t, "id", field)
	assert.Equal(t, Asc, direction)

	// one key present, the other falls back independently
	require.NoError(t, store.Set("customers"+sortFieldSuffix, "points"))
	field, direction = loadSort(store, "customers", "id")
	assert.Equal(t, "points", field)
	assert.Equal(t, Asc, direction)

	// garbage direction falls back to asc
	require.NoError(t, store.Set("customers"+sortDirectionSuffix, "sideways"))
	_, direction = loadSort(store, "customers", "id")
	assert.Equal(t, Asc, direction)

	require.NoError(t, store.Set("customers"+sortDirectionSuffix, "desc"))
	_, direction = loadSort(store, "customers", "id")
	assert.Equal(t, Desc, direction)
}
