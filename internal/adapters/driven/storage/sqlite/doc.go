// Package sqlite provides a SQLite-backed embedding cache.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation.
// Vectors are stored as little-endian float32 blobs keyed by model, section ID
// and content hash, so an unchanged section is never embedded twice.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.bumpbook/data/cache.db
package sqlite
