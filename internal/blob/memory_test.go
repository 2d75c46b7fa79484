package blob

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharsanguruparan/notevault/internal/model"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	payload := []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xff}
	id, err := store.Put(ctx, payload, "report.pdf", "application/pdf", map[string]string{MetaExtension: "pdf"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	obj, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, payload, obj.Data)
	assert.Equal(t, "report.pdf", obj.Filename)
	assert.Equal(t, "application/pdf", obj.ContentType)
	assert.Equal(t, "pdf", obj.Metadata[MetaExtension])
}

func TestMemoryStoreGetErrors(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, model.ErrInvalidID)

	_, err = store.Get(ctx, "3f1d1c1e-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	id, err := store.Put(ctx, []byte("x"), "x.txt", "text/plain", nil)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, id))
	// Deleting an absent entry is not an error.
	require.NoError(t, store.Delete(ctx, id))

	assert.ErrorIs(t, store.Delete(ctx, "junk"), model.ErrInvalidID)
}

func TestMemoryStoreRename(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	id, err := store.Put(ctx, []byte("payload"), "report", "application/pdf", map[string]string{MetaOriginal: "report"})
	require.NoError(t, err)

	newID, err := store.Rename(ctx, id, "report.pdf")
	require.NoError(t, err)
	assert.NotEqual(t, id, newID, "rename writes a new entry")

	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, model.ErrNotFound, "old entry deleted")

	obj, err := store.Get(ctx, newID)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), obj.Data)
	assert.Equal(t, "report.pdf", obj.Filename)
	assert.Equal(t, "pdf", obj.Metadata[MetaExtension])
	assert.Equal(t, "report", obj.Metadata[MetaOriginal])
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStorePutFailure(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.FailPuts = true

	_, err := store.Put(ctx, []byte("x"), "x.txt", "text/plain", nil)
	assert.ErrorIs(t, err, model.ErrStorageWrite)
}
