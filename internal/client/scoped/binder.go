package scoped

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophsession/internal/common"
	"github.com/dmitrijs2005/gophsession/internal/logging"
)

const defaultOpenTimeout = 10 * time.Second

// Binder keeps the scoped store aligned with the session identity.
type Binder struct {
	opener      Opener
	reporter    Reporter
	log         logging.Logger
	openTimeout time.Duration

	// use is held for reading by handle calls and for writing while the
	// bound store is detached.
	use sync.RWMutex

	mu      sync.Mutex
	store   Store
	target  string
	dirty   bool
	running bool
	idle    chan struct{}
}

type Option func(*Binder)

// WithReporter replaces the default LogReporter.
func WithReporter(r Reporter) Option {
	return func(b *Binder) { b.reporter = r }
}

// WithOpenTimeout bounds a single Open call.
func WithOpenTimeout(d time.Duration) Option {
	return func(b *Binder) { b.openTimeout = d }
}

func NewBinder(opener Opener, log logging.Logger, opts ...Option) *Binder {
	b := &Binder{
		opener:      opener,
		log:         log.With("component", "scoped"),
		openTimeout: defaultOpenTimeout,
	}
	b.reporter = LogReporter{Log: b.log}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Rebind schedules a switch to scope (nil selects the anonymous scope) and
// returns immediately.
func (b *Binder) Rebind(scope *string) {
	target := common.AnonymousScope
	if scope != nil && *scope != "" {
		target = *scope
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.target = target
	b.dirty = true
	if !b.running {
		b.running = true
		b.idle = make(chan struct{})
		go b.run()
	}
}

// Wait blocks until every scheduled rebind has been applied.
func (b *Binder) Wait(ctx context.Context) error {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return nil
	}
	idle := b.idle
	b.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ready reports whether a scope is currently open.
func (b *Binder) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store != nil
}

// Current returns the open scope, or "" when none is.
func (b *Binder) Current() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.store == nil {
		return ""
	}
	return b.store.Scope()
}

// Store returns a handle to the open store. Call Wait first when the result
// must match the latest Rebind. The handle fails with ErrStale once a later
// rebind or Close replaces the store; take a fresh one after each rebind.
func (b *Binder) Store() (Store, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.store == nil {
		return nil, ErrNotBound
	}
	return &handle{b: b, st: b.store}, nil
}

// detach unbinds the open store once no handle call is running and returns it.
func (b *Binder) detach() Store {
	b.use.Lock()
	defer b.use.Unlock()

	b.mu.Lock()
	defer b.mu.Unlock()
	st := b.store
	b.store = nil
	return st
}

// Close waits for pending work and closes the open store.
func (b *Binder) Close(ctx context.Context) error {
	if err := b.Wait(ctx); err != nil {
		return err
	}

	st := b.detach()
	if st == nil {
		return nil
	}
	return st.Close()
}

func (b *Binder) run() {
	for {
		b.mu.Lock()
		if !b.dirty {
			b.running = false
			close(b.idle)
			b.mu.Unlock()
			return
		}
		target := b.target
		b.dirty = false
		current := b.store
		b.mu.Unlock()

		if current != nil && current.Scope() == target {
			continue
		}
		b.apply(current, target)
	}
}

// apply runs on the worker goroutine only, so store transitions never overlap.
func (b *Binder) apply(current Store, target string) {
	ctx := context.Background()

	if current != nil {
		b.detach()

		if err := current.Close(); err != nil {
			b.reporter.ReportRebindFailure(ctx, current.Scope(), fmt.Errorf("close: %w", err))
		}
	}

	openCtx, cancel := context.WithTimeout(ctx, b.openTimeout)
	next, err := b.opener.Open(openCtx, target)
	cancel()
	if err != nil {
		b.reporter.ReportRebindFailure(ctx, target, fmt.Errorf("open: %w", err))
		return
	}

	b.mu.Lock()
	b.store = next
	b.mu.Unlock()
	b.log.Debug(ctx, "scoped store bound", "scope", target)
}
