package domain

// ChunkOrigin identifies the chunking strategy that produced a chunk.
type ChunkOrigin string

// Available chunk origins.
const (
	// ChunkOriginWord marks single-word fragments.
	ChunkOriginWord ChunkOrigin = "word"

	// ChunkOriginSemantic marks overlapping multi-word fragments.
	ChunkOriginSemantic ChunkOrigin = "semantic"
)

// String returns the string representation.
func (o ChunkOrigin) String() string {
	return string(o)
}

// Chunk is a fragment of the sanitised message submitted as one unit
// to the nearest-neighbour query. Chunks are request-scoped and never mutated.
type Chunk struct {
	// Text is the fragment content.
	Text string

	// Origin is the strategy that produced this chunk.
	Origin ChunkOrigin

	// Position is the zero-based index within its origin's output.
	Position int
}
