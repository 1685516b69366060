package ingest

// Chunk is a contiguous slice of cleaned document text. Ordinal is the
// chunk's index within its source document and is unique per source.
type Chunk struct {
	Content string `json:"content"`
	Source  string `json:"source"`
	Ordinal int    `json:"ordinal"`
}
