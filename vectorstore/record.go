package vectorstore

import "time"

// Record is one embedded chunk. One record exists per chunk; the vector
// dimensionality is fixed by the embedding model that built the index.
type Record struct {
	Id        string    `json:"id"`
	Content   string    `json:"content"`
	Source    string    `json:"source"`
	Ordinal   int       `json:"ordinal"`
	Embedding []float32 `json:"embedding"`
	Score     float64   `json:"score,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
