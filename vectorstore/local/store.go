// Package local is a file-backed vector store. Records live in a single
// JSON file under the configured directory; the directory's presence is
// what marks the index as built.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/w-h-a/counsel/vectorstore"
)

const recordsFile = "records.json"

type localStore struct {
	options vectorstore.Options
	records []vectorstore.Record
	mtx     sync.RWMutex
}

func (s *localStore) Ready(ctx context.Context) (bool, error) {
	info, err := os.Stat(s.options.Location)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return info.IsDir(), nil
}

func (s *localStore) Add(ctx context.Context, records []vectorstore.Record) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	now := time.Now().UTC()

	for _, rec := range records {
		if len(rec.Id) == 0 {
			rec.Id = uuid.New().String()
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		s.records = append(s.records, rec)
	}

	return s.persist()
}

func (s *localStore) Search(ctx context.Context, vector []float32, k int, fetchK int, lambda float64) ([]vectorstore.Record, error) {
	if k < 1 {
		return nil, nil
	}

	if fetchK < k {
		fetchK = k
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	candidates := make([]vectorstore.Record, 0, len(s.records))

	for _, rec := range s.records {
		rec.Score = vectorstore.CosineSimilarity(vector, rec.Embedding)
		candidates = append(candidates, rec)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > fetchK {
		candidates = candidates[:fetchK]
	}

	return vectorstore.Select(candidates, k, lambda), nil
}

func (s *localStore) Reset(ctx context.Context) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.records = nil

	if err := os.RemoveAll(s.options.Location); err != nil {
		return fmt.Errorf("failed to remove index at %s: %w", s.options.Location, err)
	}

	return nil
}

func (s *localStore) persist() error {
	if err := os.MkdirAll(s.options.Location, 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	data, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	return os.WriteFile(filepath.Join(s.options.Location, recordsFile), data, 0o644)
}

func (s *localStore) load() error {
	data, err := os.ReadFile(filepath.Join(s.options.Location, recordsFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, &s.records)
}

func NewStore(opts ...vectorstore.Option) vectorstore.VectorStore {
	options := vectorstore.NewOptions(opts...)

	s := &localStore{
		options: options,
	}

	if err := s.load(); err != nil {
		detail := "failed to load persisted records for local vector store"
		slog.ErrorContext(options.Context, detail, "location", options.Location, "error", err)
		panic(detail)
	}

	return s
}
