package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	raw := "THE LAND DEVELOPMENT ORDINANCE\n\n\nPage 1\nSection 7.  Alienation of state land.\n\nPage 22\n  Subject to   the provisions hereinafter contained.  "

	cleaned := Clean(raw)

	assert.NotContains(t, cleaned, "Page 1")
	assert.NotContains(t, cleaned, "Page 22")
	assert.NotContains(t, cleaned, "\n\n")
	assert.NotContains(t, cleaned, "  ")
	assert.False(t, strings.HasPrefix(cleaned, " "))
	assert.False(t, strings.HasSuffix(cleaned, " "))
	assert.Contains(t, cleaned, "Section 7.")
}

func TestCleanStripsPageMarkersCaseInsensitively(t *testing.T) {
	cleaned := Clean("before\nPAGE 3\nafter\npage12\nend")

	assert.NotContains(t, cleaned, "PAGE 3")
	assert.NotContains(t, cleaned, "page12")
	assert.Contains(t, cleaned, "before")
	assert.Contains(t, cleaned, "end")
}

func TestSplitShortTextIsSingleChunk(t *testing.T) {
	s := NewSplitter(WithChunkSize(100), WithChunkOverlap(10))

	chunks := s.Split("a short passage")

	require.Len(t, chunks, 1)
	assert.Equal(t, "a short passage", chunks[0])
}

func TestSplitIsDeterministic(t *testing.T) {
	text := strings.Repeat("Every person shall be entitled to equal protection of the law. ", 50)

	s := NewSplitter(WithChunkSize(200), WithChunkOverlap(40))

	first := s.Split(text)
	second := s.Split(text)

	require.Equal(t, first, second)
	assert.Greater(t, len(first), 1)
}

func TestSplitRespectsChunkSize(t *testing.T) {
	text := strings.Repeat("The registrar shall keep a record of every deed so registered. ", 60)

	size, overlap := 250, 50
	s := NewSplitter(WithChunkSize(size), WithChunkOverlap(overlap))

	for _, chunk := range s.Split(text) {
		assert.LessOrEqual(t, len(chunk), size+overlap)
	}
}

func TestSplitOverlapRepeatsPreviousTail(t *testing.T) {
	text := strings.Repeat("No person shall be deprived of property except by law. ", 40)

	overlap := 30
	s := NewSplitter(WithChunkSize(150), WithChunkOverlap(overlap))

	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		tail := prev[len(prev)-overlap:]
		assert.True(t, strings.HasPrefix(chunks[i], tail), "chunk %d should start with the previous chunk's tail", i)
	}
}

func TestSplitPrefersSentenceBoundaries(t *testing.T) {
	text := "First sentence about land registration. Second sentence about deeds. Third sentence about titles. Fourth sentence about surveys."

	s := NewSplitter(WithChunkSize(80), WithChunkOverlap(0))

	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)

	// Every cut lands after a sentence end rather than mid-word.
	for _, chunk := range chunks[:len(chunks)-1] {
		assert.True(t, strings.HasSuffix(strings.TrimSpace(chunk), "."), "chunk %q should end at a sentence boundary", chunk)
	}
}

func TestSplitFallsBackToCharacterCuts(t *testing.T) {
	text := strings.Repeat("x", 500)

	s := NewSplitter(WithChunkSize(100), WithChunkOverlap(0))

	chunks := s.Split(text)

	require.Len(t, chunks, 5)
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestNewOptionsClampsOverlap(t *testing.T) {
	options := NewOptions(WithChunkSize(100), WithChunkOverlap(100))

	assert.Equal(t, 99, options.ChunkOverlap)
}
