// Package kv provides the key-value stores the vault persists its
// collections in.
//
// Backends:
//   - SQLStore over SQLite (modernc.org/sqlite, the default, a local file)
//     or PostgreSQL (pgx stdlib driver), schema managed by goose;
//   - RedisStore over go-redis, compare-and-swap through WATCH/MULTI;
//   - MemoryStore, a mutex-guarded map.
//
// Open picks a backend by name. Every backend implements Store; the
// compare-and-swap primitive is what keeps whole-collection
// read-modify-write cycles from losing updates.
package kv
