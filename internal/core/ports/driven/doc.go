// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - VectorIndex: Nearest-neighbour lookup of a chunk against known-offensive text
//   - Chunker: Splits a sanitised message into fragments
//   - ChunkerPipeline: Runs all chunkers and returns the combined fragment list
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These are only needed by the local vector backend:
//
//   - EmbeddingService: Generates vector embeddings for chunks and reference texts
//   - ReferenceStore: Persists reference texts and their embeddings
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or chunker package
package driven
