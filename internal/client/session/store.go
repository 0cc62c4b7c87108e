package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophsession/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophsession/internal/common"
	"github.com/dmitrijs2005/gophsession/internal/dbx"
	"github.com/dmitrijs2005/gophsession/internal/logging"
)

// Rebinder re-scopes the secondary per-identity store. Implementations must
// not block; a nil scope selects the anonymous namespace.
type Rebinder interface {
	Rebind(scope *string)
}

// LogoutNotifier is the slice of the UI hooks the store talks to directly.
type LogoutNotifier interface {
	OnLoggedOut()
}

// Store is the session manager: one instance per process, created by the
// entry point and injected into the auth flow and the CLI.
//
// Store is safe for concurrent use. Set/Commit/Logout replace the identity as
// a whole; readers only ever observe complete snapshots.
type Store struct {
	mu       sync.RWMutex
	identity Identity

	db       *sql.DB
	repo     metadata.Repository
	binder   Rebinder
	notifier LogoutNotifier
	log      logging.Logger
}

// NewStore builds a Store over the session database. binder and notifier may
// be nil.
func NewStore(db *sql.DB, binder Rebinder, notifier LogoutNotifier, log logging.Logger) *Store {
	return &Store{
		identity: Empty(),
		db:       db,
		repo:     metadata.NewSQLiteRepository(db),
		binder:   binder,
		notifier: notifier,
		log:      log.With("component", "session"),
	}
}

// SetNotifier attaches the UI hooks once they exist; the CLI creates them
// after the store.
func (s *Store) SetNotifier(n LogoutNotifier) {
	s.mu.Lock()
	s.notifier = n
	s.mu.Unlock()
}

// Load restores the identity from the session database. A missing record
// leaves the empty identity in place; an unreadable or corrupt record is
// deleted and the identity reset. Load never fails.
func (s *Store) Load(ctx context.Context) {
	data, err := s.repo.Get(ctx, common.UserStorageKey)
	if err != nil {
		s.log.Error(ctx, "session record unreadable, starting anonymous", "error", err)
		s.reset()
		return
	}
	if data == nil {
		s.reset()
		return
	}

	id, err := unmarshalIdentity(data)
	if err != nil {
		s.log.Error(ctx, "error loading user from storage", "error", err)
		if derr := s.repo.Delete(ctx, common.UserStorageKey, common.TokenStorageKey); derr != nil {
			s.log.Warn(ctx, "could not clear corrupt session record", "error", derr)
		}
		s.reset()
		return
	}

	s.Set(id)
	s.log.Debug(ctx, "session restored", "scope", id.ScopeName(), "authenticated", id.IsAuthenticated())
}

// Set replaces the in-memory identity and requests a rebind of the scoped
// store to its scope. It does not persist.
func (s *Store) Set(id Identity) {
	s.replace(id)
	s.rebind(id.ScopeKey())
}

// Save writes the current identity under the "user" key, overwriting any
// previous value.
func (s *Store) Save(ctx context.Context) error {
	data, err := marshalIdentity(s.Get())
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.repo.Set(ctx, common.UserStorageKey, data)
}

// Commit applies a completed sign-in: the identity is replaced, then the
// record and the bearer token (when non-empty) are written in one
// transaction, then the scoped store is rebound. The in-memory identity is
// kept even if persistence fails; the error is returned for reporting.
func (s *Store) Commit(ctx context.Context, id Identity, token string) error {
	s.replace(id)

	data, err := marshalIdentity(id)
	if err == nil {
		err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := metadata.NewSQLiteRepository(tx)
			if err := repo.Set(ctx, common.UserStorageKey, data); err != nil {
				return err
			}
			if token == "" {
				return nil
			}
			return repo.Set(ctx, common.TokenStorageKey, []byte(token))
		})
	}

	s.rebind(id.ScopeKey())

	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Get returns an immutable snapshot of the current identity.
func (s *Store) Get() Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity.Clone()
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity.IsAuthenticated()
}

// Logout switches the scoped store to the anonymous scope, resets the
// identity, erases the persisted record and token and notifies the UI.
// Calling it again is harmless.
func (s *Store) Logout(ctx context.Context) error {
	s.rebind(nil)
	s.replace(Empty())

	err := s.repo.Delete(ctx, common.UserStorageKey, common.TokenStorageKey)

	s.mu.RLock()
	n := s.notifier
	s.mu.RUnlock()
	if n != nil {
		n.OnLoggedOut()
	}

	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info(ctx, "logged out")
	return nil
}

// SetToken persists the bearer token used for authenticated requests.
func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.repo.Set(ctx, common.TokenStorageKey, []byte(token))
}

// Token returns the stored bearer token, or "" if there is none.
func (s *Store) Token(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// TokenInfo describes the stored bearer token for display.
func (s *Store) TokenInfo(ctx context.Context) (TokenInfo, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return TokenInfo{}, err
	}
	return inspectToken(token), nil
}

func (s *Store) replace(id Identity) {
	id = id.Clone()
	s.mu.Lock()
	s.identity = id
	s.mu.Unlock()
}

func (s *Store) reset() {
	s.Set(Empty())
}

func (s *Store) rebind(scope *string) {
	if s.binder != nil {
		s.binder.Rebind(scope)
	}
}
