package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-stock-keeper/models"
)

func item(id, version int64) models.Entity {
	return models.Entity{ID: id, Type: models.EntityItem, Version: version}
}

func TestEntityStore_UpsertAndGet(t *testing.T) {
	store := NewEntityStore()

	store.UpsertOne(item(1, 1))

	got, ok := store.Get(models.EntityKey{Type: models.EntityItem, ID: 1})
	require.True(t, ok)
	assert.Equal(t, int64(1), got.Version)

	// overwrite with a newer version
	store.UpsertOne(item(1, 2))
	got, _ = store.Get(models.EntityKey{Type: models.EntityItem, ID: 1})
	assert.Equal(t, int64(2), got.Version)

	_, ok = store.Get(models.EntityKey{Type: models.EntityContainer, ID: 1})
	assert.False(t, ok)
}

func TestEntityStore_List_SortedAndFiltered(t *testing.T) {
	store := NewEntityStore()

	store.UpsertMany([]models.Entity{
		item(3, 1),
		item(1, 1),
		{ID: 2, Type: models.EntityItem, Version: 4, Deleted: true},
		{ID: 1, Type: models.EntityContainer, Version: 1},
	})

	list := store.List(models.EntityItem)
	require.Len(t, list, 2, "tombstones must not be listed")
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, int64(3), list[1].ID)

	// the tombstone is still addressable directly
	got, ok := store.Get(models.EntityKey{Type: models.EntityItem, ID: 2})
	require.True(t, ok)
	assert.True(t, got.Deleted)
}

func TestEntityStore_SetAll(t *testing.T) {
	store := NewEntityStore()
	store.UpsertOne(item(1, 1))

	store.SetAll(models.EntityItem, []models.Entity{item(5, 1), item(6, 1)})

	_, ok := store.Get(models.EntityKey{Type: models.EntityItem, ID: 1})
	assert.False(t, ok, "SetAll must replace the whole bucket")
	assert.Len(t, store.List(models.EntityItem), 2)
}

func TestEntityStore_Replace_CollapsesOptimisticCreate(t *testing.T) {
	store := NewEntityStore()

	// optimistic create held under a temporary negative ID
	store.UpsertOne(models.Entity{ID: -1, Type: models.EntityItem, Payload: []byte(`{"name":"crate"}`)})

	confirmed := models.Entity{ID: 101, Type: models.EntityItem, Version: 1, Payload: []byte(`{"name":"crate"}`)}
	store.Replace(models.EntityKey{Type: models.EntityItem, ID: -1}, confirmed)

	_, ok := store.Get(models.EntityKey{Type: models.EntityItem, ID: -1})
	assert.False(t, ok)

	got, ok := store.Get(models.EntityKey{Type: models.EntityItem, ID: 101})
	require.True(t, ok)
	assert.Equal(t, int64(1), got.Version)
}

func TestEntityStore_Remove(t *testing.T) {
	store := NewEntityStore()
	store.UpsertOne(item(1, 1))

	store.Remove(models.EntityKey{Type: models.EntityItem, ID: 1})

	_, ok := store.Get(models.EntityKey{Type: models.EntityItem, ID: 1})
	assert.False(t, ok)

	// removing an absent record is a no-op
	store.Remove(models.EntityKey{Type: models.EntityItem, ID: 42})
}

func TestEntityStore_PurgeDeleted(t *testing.T) {
	store := NewEntityStore()
	store.UpsertMany([]models.Entity{
		item(1, 1),
		{ID: 2, Type: models.EntityItem, Deleted: true},
		{ID: 3, Type: models.EntityCategory, Deleted: true},
	})

	store.PurgeDeleted()

	_, ok := store.Get(models.EntityKey{Type: models.EntityItem, ID: 2})
	assert.False(t, ok)
	_, ok = store.Get(models.EntityKey{Type: models.EntityCategory, ID: 3})
	assert.False(t, ok)
	_, ok = store.Get(models.EntityKey{Type: models.EntityItem, ID: 1})
	assert.True(t, ok)
}
