package ingest

import "strings"

// Splitter cuts cleaned text into chunks of at most ChunkSize characters,
// preferring semantic boundaries (newline, sentence end, space) over raw
// character cuts, with the tail of each chunk repeated at the head of the
// next one.
type Splitter struct {
	size       int
	overlap    int
	separators []string
}

func NewSplitter(opts ...Option) *Splitter {
	options := NewOptions(opts...)

	return &Splitter{
		size:       options.ChunkSize,
		overlap:    options.ChunkOverlap,
		separators: options.Separators,
	}
}

func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return nil
	}

	chunks := s.split(text, s.separators)

	return s.applyOverlap(chunks)
}

// split recursively breaks text on the separator hierarchy. Separators stay
// attached to the piece they terminate so that concatenating the pieces
// reproduces the input.
func (s *Splitter) split(text string, separators []string) []string {
	if len(text) <= s.size {
		return []string{text}
	}

	if len(separators) == 0 {
		var out []string
		for i := 0; i < len(text); i += s.size {
			end := min(i+s.size, len(text))
			out = append(out, text[i:end])
		}
		return out
	}

	var pieces []string
	for _, part := range strings.SplitAfter(text, separators[0]) {
		if len(part) == 0 {
			continue
		}
		if len(part) <= s.size {
			pieces = append(pieces, part)
		} else {
			pieces = append(pieces, s.split(part, separators[1:])...)
		}
	}

	return s.merge(pieces)
}

// merge greedily packs adjacent pieces back together while the combined
// length stays within the chunk size.
func (s *Splitter) merge(pieces []string) []string {
	var out []string

	var current strings.Builder
	for _, piece := range pieces {
		if current.Len() > 0 && current.Len()+len(piece) > s.size {
			out = append(out, current.String())
			current.Reset()
		}
		current.WriteString(piece)
	}

	if current.Len() > 0 {
		out = append(out, current.String())
	}

	return out
}

func (s *Splitter) applyOverlap(chunks []string) []string {
	if s.overlap <= 0 || len(chunks) <= 1 {
		return chunks
	}

	out := make([]string, len(chunks))
	out[0] = chunks[0]

	for i := 1; i < len(chunks); i++ {
		tail := chunks[i-1]
		if len(tail) > s.overlap {
			tail = tail[len(tail)-s.overlap:]
		}
		out[i] = tail + chunks[i]
	}

	return out
}
