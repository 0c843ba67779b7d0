// Package metadata provides the key/value persistence areas that hold the
// session token and the theme flag.
//
// # Areas
//
//   - SQLiteRepository: durable area backed by a local SQLite file. Every
//     client process of the same user opens the same file, so a token written
//     by one process is seen by the others.
//   - RedisRepository: durable area kept in Redis under a key prefix, for
//     clients that share state across machines.
//   - MemoryRepository: ephemeral area private to one process.
//
// Durable areas also implement Notifier, a change feed other processes'
// writes arrive on. SQLite polls PRAGMA data_version; Redis uses
// PUBLISH/SUBSCRIBE. Feeds may report the process's own writes too, so
// consumers must treat a Change as "re-read", not as a diff.
//
// Get returns (nil, nil) for a missing key.
package metadata
