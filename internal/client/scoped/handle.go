package scoped

import "context"

// handle is the Store returned by Binder.Store. It forwards to the store that
// was bound when it was taken and fails with ErrStale once a rebind or Close
// has detached that store.
type handle struct {
	b  *Binder
	st Store
}

func (h *handle) Scope() string { return h.st.Scope() }

func (h *handle) Put(ctx context.Context, key string, value []byte) error {
	return h.do(func(st Store) error { return st.Put(ctx, key, value) })
}

func (h *handle) Get(ctx context.Context, key string) (value []byte, err error) {
	err = h.do(func(st Store) error {
		value, err = st.Get(ctx, key)
		return err
	})
	return value, err
}

func (h *handle) Delete(ctx context.Context, key string) error {
	return h.do(func(st Store) error { return st.Delete(ctx, key) })
}

func (h *handle) Keys(ctx context.Context) (keys []string, err error) {
	err = h.do(func(st Store) error {
		keys, err = st.Keys(ctx)
		return err
	})
	return keys, err
}

// Close is a no-op; the binder owns the underlying store.
func (h *handle) Close() error { return nil }

// do holds the binder's read lock for the whole call, so the store cannot be
// detached and closed underneath it.
func (h *handle) do(fn func(Store) error) error {
	h.b.use.RLock()
	defer h.b.use.RUnlock()

	h.b.mu.Lock()
	current := h.b.store
	h.b.mu.Unlock()

	if current != h.st {
		return ErrStale
	}
	return fn(h.st)
}
