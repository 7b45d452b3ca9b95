package driving

import "context"

// ReferenceService loads reference texts into the local vector index.
type ReferenceService interface {
	// Import embeds and stores the given texts. Returns the number stored.
	Import(ctx context.Context, texts []string) (int, error)

	// Count returns the number of stored entries for the active embedding model.
	Count(ctx context.Context) (int, error)
}
