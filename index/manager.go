// Package index owns the vector index lifecycle: on startup it either
// loads a persisted index or ingests the corpus and embeds every chunk,
// guarded so only one ingestion run executes at a time.
package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/w-h-a/counsel/embedder"
	"github.com/w-h-a/counsel/ingest"
	"github.com/w-h-a/counsel/vectorstore"
)

var ErrLocked = errors.New("another ingestion run holds the index lock")

// Ingestor produces the chunk sequence the index is built from.
type Ingestor interface {
	Ingest(ctx context.Context, paths []string) ([]ingest.Chunk, error)
}

type Manager struct {
	options  Options
	ingestor Ingestor
	embedder embedder.Embedder
	store    vectorstore.VectorStore
}

// BuildOrLoad loads the persisted index when one is present, otherwise it
// ingests paths, embeds every chunk, and persists the records. The
// presence check is the only staleness policy: changed PDFs are not
// detected unless a rebuild is forced.
func (m *Manager) BuildOrLoad(ctx context.Context, paths []string) error {
	if m.options.ForceRebuild {
		if err := m.store.Reset(ctx); err != nil {
			return fmt.Errorf("failed to reset index for rebuild: %w", err)
		}
	}

	ready, err := m.store.Ready(ctx)
	if err != nil {
		return fmt.Errorf("failed to check index state: %w", err)
	}

	if ready {
		slog.InfoContext(ctx, "loaded persisted index, skipping ingestion")
		return nil
	}

	unlock, err := m.acquireLock()
	if err != nil {
		return err
	}
	defer unlock()

	// Another process may have built the index while we waited on the lock.
	ready, err = m.store.Ready(ctx)
	if err != nil {
		return fmt.Errorf("failed to re-check index state: %w", err)
	}
	if ready {
		return nil
	}

	chunks, err := m.ingestor.Ingest(ctx, paths)
	if err != nil {
		return fmt.Errorf("ingestion failed with nothing to serve: %w", err)
	}

	records, err := m.embedAll(ctx, chunks)
	if err != nil {
		return err
	}

	if err := m.store.Add(ctx, records); err != nil {
		return fmt.Errorf("failed to persist index: %w", err)
	}

	slog.InfoContext(ctx, "built index", "chunks", len(records))

	return nil
}

// embedAll fans chunk embedding out over a bounded worker pool. Any
// embedding failure fails the whole build; partial indexes are never
// persisted.
func (m *Manager) embedAll(ctx context.Context, chunks []ingest.Chunk) ([]vectorstore.Record, error) {
	pool, err := ants.NewPool(m.options.Concurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding pool: %w", err)
	}
	defer pool.Release()

	records := make([]vectorstore.Record, len(chunks))

	var wg sync.WaitGroup
	var mtx sync.Mutex
	var firstErr error

	for i, chunk := range chunks {
		wg.Add(1)

		if err := pool.Submit(func() {
			defer wg.Done()

			vec, err := m.embedder.Embed(ctx, chunk.Content)
			if err != nil {
				mtx.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mtx.Unlock()
				return
			}

			records[i] = vectorstore.Record{
				Content:   chunk.Content,
				Source:    chunk.Source,
				Ordinal:   chunk.Ordinal,
				Embedding: vec,
			}
		}); err != nil {
			wg.Done()
			return nil, fmt.Errorf("failed to submit embedding task: %w", err)
		}
	}

	wg.Wait()

	if firstErr != nil {
		return nil, fmt.Errorf("embedding failed: %w", firstErr)
	}

	return records, nil
}

func (m *Manager) acquireLock() (func(), error) {
	file, err := os.OpenFile(m.options.LockFile, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("%w: %s", ErrLocked, m.options.LockFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create index lock: %w", err)
	}

	return func() {
		file.Close()
		os.Remove(m.options.LockFile)
	}, nil
}

func NewManager(
	ingestor Ingestor,
	embedder embedder.Embedder,
	store vectorstore.VectorStore,
	opts ...Option,
) *Manager {
	if ingestor == nil {
		panic("ingestor is required")
	}

	if embedder == nil {
		panic("embedder is required")
	}

	if store == nil {
		panic("vector store is required")
	}

	return &Manager{
		options:  NewOptions(opts...),
		ingestor: ingestor,
		embedder: embedder,
		store:    store,
	}
}
