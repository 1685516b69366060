// Package retriever turns a question into a ranked, diversified set of
// legal-text chunks from the vector index.
package retriever

import (
	"context"
	"fmt"

	"github.com/w-h-a/counsel/embedder"
	"github.com/w-h-a/counsel/vectorstore"
)

type Retriever struct {
	options  Options
	embedder embedder.Embedder
	store    vectorstore.VectorStore
}

// Retrieve embeds the question and searches the index with the configured
// defaults. An empty result means no relevant law was found; it is not an
// error, and callers must not fabricate an answer from it.
func (r *Retriever) Retrieve(ctx context.Context, question string) ([]vectorstore.Record, error) {
	vec, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	records, err := r.store.Search(ctx, vec, r.options.K, r.options.FetchK, r.options.Lambda)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	return records, nil
}

func NewRetriever(
	embedder embedder.Embedder,
	store vectorstore.VectorStore,
	opts ...Option,
) *Retriever {
	if embedder == nil {
		panic("embedder is required")
	}

	if store == nil {
		panic("vector store is required")
	}

	return &Retriever{
		options:  NewOptions(opts...),
		embedder: embedder,
		store:    store,
	}
}
