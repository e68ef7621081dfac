/*
Package store defines the persistence boundary of the plan engine.

PURPOSE:
  The engine computes over an in-memory snapshot; everything persisted
  lives behind this small key-value contract. Values are JSON documents
  addressed by string keys, which is all a snapshot-based planner needs:
  each entity collection is one document under a well-known key.

KEY INTERFACE:
  KV: Get / Set / Remove by key, plus Keys(prefix) for collection scans.

IMPLEMENTATIONS:
  - store/memory: mutex-guarded map, for tests and -db=:memory: runs
  - store/sqlite: single-table SQLite store with WAL journaling

ERROR CONTRACT:
  Get on a missing key returns ErrKeyNotFound. Remove on a missing key
  is a no-op; removal is idempotent.

SEE ALSO:
  - adapter/repository.go: The well-known keys and typed accessors
*/
package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get for absent keys.
var ErrKeyNotFound = errors.New("key not found")

// KV is the minimal JSON-document store the application depends on.
type KV interface {
	// Get returns the raw JSON stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores raw JSON under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys returns all keys with the given prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
