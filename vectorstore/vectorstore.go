// Package vectorstore persists chunk embeddings and serves similarity
// search with diversity-aware (maximal marginal relevance) selection.
package vectorstore

import "context"

type VectorStore interface {
	// Ready reports whether a persisted index is already present at the
	// configured location. Presence gates re-ingestion; corpus drift is not
	// detected.
	Ready(ctx context.Context) (bool, error)
	Add(ctx context.Context, records []Record) error
	// Search retrieves the fetchK nearest records by vector similarity and
	// greedily selects k of them weighing relevance against redundancy
	// (lambda 1 is pure relevance, 0 pure diversity).
	Search(ctx context.Context, vector []float32, k int, fetchK int, lambda float64) ([]Record, error)
	// Reset destroys the persisted index so the next build re-ingests.
	Reset(ctx context.Context) error
}
