package local

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/counsel/vectorstore"
)

func TestReadyIsFalseBeforeFirstAdd(t *testing.T) {
	location := filepath.Join(t.TempDir(), "index")

	store := NewStore(vectorstore.WithLocation(location))

	ready, err := store.Ready(context.Background())

	require.NoError(t, err)
	assert.False(t, ready)
}

func TestAddPersistsAndMarksReady(t *testing.T) {
	ctx := context.Background()
	location := filepath.Join(t.TempDir(), "index")

	store := NewStore(vectorstore.WithLocation(location))

	err := store.Add(ctx, []vectorstore.Record{
		{Content: "Section 7 of the Land Development Ordinance", Source: "land.pdf", Ordinal: 0, Embedding: []float32{1, 0, 0}},
	})
	require.NoError(t, err)

	ready, err := store.Ready(ctx)
	require.NoError(t, err)
	assert.True(t, ready)

	// A fresh handle on the same location sees the persisted records.
	reopened := NewStore(vectorstore.WithLocation(location))

	results, err := reopened.Search(ctx, []float32{1, 0, 0}, 1, 5, 0.8)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "land.pdf", results[0].Source)
}

func TestSearchRanksByRelevance(t *testing.T) {
	ctx := context.Background()

	store := NewStore(vectorstore.WithLocation(filepath.Join(t.TempDir(), "index")))

	err := store.Add(ctx, []vectorstore.Record{
		{Content: "rent restriction", Source: "rent.pdf", Ordinal: 0, Embedding: []float32{0, 1, 0}},
		{Content: "land alienation", Source: "land.pdf", Ordinal: 0, Embedding: []float32{1, 0, 0}},
		{Content: "motor traffic", Source: "traffic.pdf", Ordinal: 0, Embedding: []float32{0, 0, 1}},
	})
	require.NoError(t, err)

	results, err := store.Search(ctx, []float32{0.9, 0.1, 0}, 2, 3, 0.8)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "land.pdf", results[0].Source)
}

func TestResetDestroysTheIndex(t *testing.T) {
	ctx := context.Background()
	location := filepath.Join(t.TempDir(), "index")

	store := NewStore(vectorstore.WithLocation(location))

	err := store.Add(ctx, []vectorstore.Record{
		{Content: "anything", Source: "a.pdf", Ordinal: 0, Embedding: []float32{1}},
	})
	require.NoError(t, err)

	require.NoError(t, store.Reset(ctx))

	ready, err := store.Ready(ctx)
	require.NoError(t, err)
	assert.False(t, ready)

	results, err := store.Search(ctx, []float32{1}, 1, 1, 0.8)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchWithNonPositiveK(t *testing.T) {
	store := NewStore(vectorstore.WithLocation(filepath.Join(t.TempDir(), "index")))

	results, err := store.Search(context.Background(), []float32{1}, 0, 10, 0.8)

	require.NoError(t, err)
	assert.Nil(t, results)
}
