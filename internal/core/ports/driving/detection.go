package driving

import (
	"context"

	"github.com/custodia-labs/profanity/internal/core/domain"
)

// DetectionService decides whether a message contains disallowed content.
type DetectionService interface {
	// Detect validates, sanitises, chunks and scores the message.
	// Validation failures wrap domain.ErrEmptyMessage or domain.ErrMessageTooLong
	// and are returned before any vector query is made.
	Detect(ctx context.Context, message string) (*domain.Verdict, error)
}
