// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - DocumentStore: Document and chunk persistence, embeddings included
//   - ChatStore: Conversation log persistence
//   - SettingsStore: Runtime settings persistence
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory.
//
// # Embeddings
//
// Chunk embeddings are stored inline as BLOBs: each vector is the
// concatenation of its float32 components in little-endian IEEE-754 byte
// order, 4 bytes per component. There is no separate vector index; search
// is a brute-force scan over the chunks table.
//
// # Data Location
//
// By default, the database is stored at ~/.metabrain/data/metabrain.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
