// Package metadata is the client-side key/value store behind the shared auth
// cache. Backends: SQLite (default, survives restarts), Redis (shared between
// processes on one host) and an in-memory map.
//
// Contract for every backend:
//   - Get on a missing key returns (nil, nil).
//   - Set upserts.
//   - Delete of a missing key is not an error.
//   - Clear removes every key the backend owns.
package metadata

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
