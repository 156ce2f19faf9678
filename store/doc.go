// Package store defines the [Store] interface for per-application preference
// backends and provides several implementations:
//
//   - [MemoryStore]: fast, in-memory records that are lost on restart.
//   - [SQLiteStore]: persistent records backed by a SQLite database.
//   - [FileStore]: one YAML file per application under a directory.
//   - [TieredStore]: a freecache read tier in front of any persistent Store.
//
// A Redis-backed store lives in the store/redis module. Custom backends can be
// created by implementing the [Store] interface.
package store
