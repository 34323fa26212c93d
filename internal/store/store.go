// Package store provides the key/value persistence layer for per-session
// client state (cart contents, project drafts). Values are opaque serialized
// blobs written whole on every mutation.
package store

import (
	"context"
	"time"
)

// KV is the persistence interface. Get returns domain.ErrNotFound on a miss.
// A zero ttl means the value never expires.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
