package domain

// VectorMatch is the closest reference entry returned by the vector index for one chunk.
type VectorMatch struct {
	// Score is the similarity score; higher means more similar.
	Score float64

	// Text is the indexed reference text of the nearest neighbour.
	Text string
}

// ChunkMatch pairs a chunk with its query result.
// Match is nil when the index returned no neighbour.
type ChunkMatch struct {
	Chunk Chunk
	Match *VectorMatch
}
