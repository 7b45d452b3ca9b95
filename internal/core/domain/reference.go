package domain

import "time"

// ReferenceEntry is one known-offensive text held by the local vector index.
type ReferenceEntry struct {
	ID        string
	Text      string
	Embedding []float32
	Model     string
	CreatedAt time.Time
}
