package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown chunker, backend or provider type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Validation Errors.
	// These are reported to the caller before any vector query is made.

	// ErrEmptyMessage indicates the message is missing or blank after trimming.
	ErrEmptyMessage = errors.New("argument message is required")

	// ErrMessageTooLong indicates the message exceeds MaxMessageLength characters.
	ErrMessageTooLong = errors.New("message is too long")

	// ErrInvalidContentType indicates the request body is not JSON.
	ErrInvalidContentType = errors.New("invalid content type")

	// External Service Errors.

	// ErrExternalService indicates the vector index call failed.
	// Network, authentication, malformed responses and timeouts all map here.
	ErrExternalService = errors.New("external service failure")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// The local vector index cannot answer queries without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrInvalidSettings indicates configuration failed validation.
	ErrInvalidSettings = errors.New("invalid settings")
)

// IsValidationError reports whether err is a caller-facing validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyMessage) ||
		errors.Is(err, ErrMessageTooLong) ||
		errors.Is(err, ErrInvalidContentType)
}
