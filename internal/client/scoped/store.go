package scoped

import (
	"context"
	"errors"
)

var (
	ErrNotBound       = errors.New("scoped store not bound")
	ErrScopeCollision = errors.New("scope file belongs to another scope")
	ErrStale          = errors.New("scoped store was replaced by a rebind")
)

// Store is a key/value namespace owned by a single scope.
type Store interface {
	Scope() string
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Opener creates the Store of a scope.
type Opener interface {
	Open(ctx context.Context, scope string) (Store, error)
}
