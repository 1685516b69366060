// Package ingest loads PDF statutes, strips layout noise, and splits the
// text into overlapping chunks with source and position metadata.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

var ErrNoChunks = errors.New("ingestion produced no chunks")

type Ingestor struct {
	options  Options
	splitter *Splitter
}

func NewIngestor(opts ...Option) *Ingestor {
	options := NewOptions(opts...)

	return &Ingestor{
		options:  options,
		splitter: NewSplitter(opts...),
	}
}

// Ingest extracts, cleans, and splits every readable document in paths.
// Missing or unreadable files are skipped with a warning; the only error is
// a nonempty path list that yields zero chunks.
func (i *Ingestor) Ingest(ctx context.Context, paths []string) ([]Chunk, error) {
	var chunks []Chunk

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := extractText(path)
		if err != nil {
			slog.WarnContext(ctx, "skipping unreadable document", "path", path, "error", err)
			continue
		}

		source := filepath.Base(path)

		pieces := i.splitter.Split(Clean(raw))
		for ordinal, piece := range pieces {
			piece = strings.TrimSpace(piece)
			if len(piece) == 0 {
				continue
			}
			chunks = append(chunks, Chunk{
				Content: piece,
				Source:  source,
				Ordinal: ordinal,
			})
		}

		slog.InfoContext(ctx, "ingested document", "source", source, "chunks", len(pieces))
	}

	if len(paths) > 0 && len(chunks) == 0 {
		return nil, ErrNoChunks
	}

	return chunks, nil
}

func extractText(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	var b strings.Builder

	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		b.WriteString(text)
		b.WriteString("\n")
	}

	return b.String(), nil
}
