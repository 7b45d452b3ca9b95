// Package domain defines the core business entities for the profanity detector.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Message: Validation rules for raw input text
//   - Chunk: A fragment of the sanitised message sent to the vector index
//   - VectorMatch: The nearest reference text for one chunk
//   - Verdict: The final detection result
//   - Whitelist: Tokens exempt from detection
//   - AppSettings: Detection, vector index, embedding and server settings
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
