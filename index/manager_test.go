package index

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/counsel/ingest"
	"github.com/w-h-a/counsel/vectorstore"
	"github.com/w-h-a/counsel/vectorstore/local"
)

type fakeIngestor struct {
	chunks []ingest.Chunk
	err    error
	calls  int
}

func (f *fakeIngestor) Ingest(ctx context.Context, paths []string) ([]ingest.Chunk, error) {
	f.calls++
	return f.chunks, f.err
}

type fakeEmbedder struct {
	mtx   sync.Mutex
	calls int
	err   error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []float32{float32(len(text)), 1, 0}, nil
}

func newTestStore(t *testing.T) vectorstore.VectorStore {
	t.Helper()
	return local.NewStore(vectorstore.WithLocation(filepath.Join(t.TempDir(), "index")))
}

func lockPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "index.lock")
}

func TestBuildOrLoadIngestsOnce(t *testing.T) {
	ctx := context.Background()

	ingestor := &fakeIngestor{chunks: []ingest.Chunk{
		{Content: "Section 7 of the Land Development Ordinance", Source: "land.pdf", Ordinal: 0},
		{Content: "Rent restriction provisions", Source: "rent.pdf", Ordinal: 0},
	}}
	emb := &fakeEmbedder{}
	store := newTestStore(t)

	m := NewManager(ingestor, emb, store, WithLockFile(lockPath(t)))

	require.NoError(t, m.BuildOrLoad(ctx, []string{"land.pdf", "rent.pdf"}))
	assert.Equal(t, 1, ingestor.calls)
	assert.Equal(t, 2, emb.calls)

	// Second run sees the persisted index and skips ingestion entirely.
	require.NoError(t, m.BuildOrLoad(ctx, []string{"land.pdf", "rent.pdf"}))
	assert.Equal(t, 1, ingestor.calls)
	assert.Equal(t, 2, emb.calls)
}

func TestBuildOrLoadForceRebuildReingests(t *testing.T) {
	ctx := context.Background()

	ingestor := &fakeIngestor{chunks: []ingest.Chunk{
		{Content: "some statute", Source: "a.pdf", Ordinal: 0},
	}}
	store := newTestStore(t)

	m := NewManager(ingestor, &fakeEmbedder{}, store, WithLockFile(lockPath(t)))
	require.NoError(t, m.BuildOrLoad(ctx, []string{"a.pdf"}))

	forced := NewManager(ingestor, &fakeEmbedder{}, store, WithLockFile(lockPath(t)), WithForceRebuild(true))
	require.NoError(t, forced.BuildOrLoad(ctx, []string{"a.pdf"}))

	assert.Equal(t, 2, ingestor.calls)
}

func TestBuildOrLoadFailsWhenNothingToServe(t *testing.T) {
	ingestor := &fakeIngestor{err: ingest.ErrNoChunks}

	m := NewManager(ingestor, &fakeEmbedder{}, newTestStore(t), WithLockFile(lockPath(t)))

	err := m.BuildOrLoad(context.Background(), []string{"missing.pdf"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ingest.ErrNoChunks)
}

func TestBuildOrLoadPropagatesEmbeddingFailure(t *testing.T) {
	ingestor := &fakeIngestor{chunks: []ingest.Chunk{
		{Content: "some statute", Source: "a.pdf", Ordinal: 0},
	}}
	emb := &fakeEmbedder{err: errors.New("rate limited")}
	store := newTestStore(t)

	m := NewManager(ingestor, emb, store, WithLockFile(lockPath(t)))

	err := m.BuildOrLoad(context.Background(), []string{"a.pdf"})
	require.Error(t, err)

	// Nothing partial was persisted.
	ready, err := store.Ready(context.Background())
	require.NoError(t, err)
	assert.False(t, ready)
}

func TestBuildOrLoadRespectsLock(t *testing.T) {
	lock := lockPath(t)

	held := NewManager(&fakeIngestor{chunks: []ingest.Chunk{{Content: "x", Source: "a.pdf"}}}, &fakeEmbedder{}, newTestStore(t), WithLockFile(lock))

	unlock, err := held.acquireLock()
	require.NoError(t, err)
	defer unlock()

	blocked := NewManager(&fakeIngestor{chunks: []ingest.Chunk{{Content: "x", Source: "a.pdf"}}}, &fakeEmbedder{}, newTestStore(t), WithLockFile(lock))

	err = blocked.BuildOrLoad(context.Background(), []string{"a.pdf"})

	assert.ErrorIs(t, err, ErrLocked)
}
