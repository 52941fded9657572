// Package kv provides the durable key/value storage the client keeps its
// credential and identity snapshot in.
//
// # Overview
//
// Repository is a small string-to-string store with atomic multi-key writes
// and deletes. Two implementations exist:
//
//   - SQLiteRepository: a single "storage" table created by the embedded
//     goose migrations (see internal/client/migrations).
//   - RedisRepository: keys under a configurable prefix, written with
//     MULTI/EXEC so paired keys change together.
//
// A missing key is not an error: Get reports ok=false. Delete and Clear are
// idempotent.
package kv
