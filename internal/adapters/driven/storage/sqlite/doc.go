// Package sqlite provides the SQLite-backed reference store for the local vector index.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Embeddings are stored as little-endian float32 BLOBs keyed by (model, text),
// so re-importing a phrase with a different model keeps both vectors.
//
// # Data Location
//
// By default, the database is stored at ~/.profanity/data/references.db
package sqlite
