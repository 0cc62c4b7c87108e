// Package metadata is the key/value persistence layer of the local session
// database. The session store keeps the serialized identity record and the
// bearer token here, one row per well-known key.
package metadata

import (
	"context"
)

// Repository is a byte-valued key/value store.
//
// Get returns (nil, nil) for an absent key. Delete removes all given keys at
// once and ignores the absent ones.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
