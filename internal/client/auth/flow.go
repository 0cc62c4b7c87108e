package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophsession/internal/client/client"
	"github.com/dmitrijs2005/gophsession/internal/client/oauth"
	"github.com/dmitrijs2005/gophsession/internal/client/session"
	"github.com/dmitrijs2005/gophsession/internal/client/ui"
	"github.com/dmitrijs2005/gophsession/internal/logging"
)

// Config is the slice of client configuration the flow needs.
type Config struct {
	APIBaseURL  string
	CallbackURL string
	TestMode    bool
}

// SignInOptions tune what happens when the account service does not know
// the email.
type SignInOptions struct {
	// AllowRegistration opens a pending registration for unknown emails.
	AllowRegistration bool
	// OnMissingUser runs instead of failing when registration is not
	// allowed.
	OnMissingUser func()
}

// TestProfile is the fabricated account used by TestLogin.
var TestProfile = oauth.Profile{
	ID:       "admin_user_1",
	Name:     "Test Admin",
	Email:    "admin@localhost.com",
	Picture:  "https://example.com/admin-avatar.jpg",
	Nickname: "admin",
}

const testUserMissing = "Test user not found. Create admin@localhost.com (nickname admin) on the account service first."

// newTestToken is replaced in tests.
var newTestToken = func() string { return "test_token_" + uuid.NewString() }

// Flow is the sign-in state machine. Only one operation runs at a time;
// an operation started while another is in flight is ignored with
// ErrBusy.
type Flow struct {
	mu       sync.Mutex
	state    State
	lastErr  *Error
	pending  *Pending
	inFlight bool

	cfg   Config
	store *session.Store
	api   client.AccountClient
	hooks ui.Hooks
	log   logging.Logger
}

// NewFlow wires a flow. hooks may be nil.
func NewFlow(cfg Config, store *session.Store, api client.AccountClient, hooks ui.Hooks, log logging.Logger) *Flow {
	if hooks == nil {
		hooks = ui.Nop{}
	}
	return &Flow{
		state: StateAnonymous,
		cfg:   cfg,
		store: store,
		api:   api,
		hooks: hooks,
		log:   log.With("component", "auth"),
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// LastError is the most recent failure, or nil once an operation succeeds.
func (f *Flow) LastError() *Error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Pending returns a copy of the outstanding registration, if any.
func (f *Flow) Pending() (Pending, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending == nil {
		return Pending{}, false
	}
	p := *f.pending
	p.token = ""
	return p, true
}

// Resume restores the persisted session at startup.
func (f *Flow) Resume(ctx context.Context) {
	f.store.Load(ctx)
	id := f.store.Get()

	f.mu.Lock()
	f.pending = nil
	f.lastErr = nil
	if id.IsAuthenticated() {
		f.state = StateAuthenticated
	} else {
		f.state = StateAnonymous
	}
	f.mu.Unlock()

	if id.IsAuthenticated() {
		f.hooks.OnAuthenticated(id)
	}
}

// BeginSignIn returns the URL that starts a provider sign-in. Any pending
// registration is dropped; the new sign-in replaces it.
func (f *Flow) BeginSignIn(ctx context.Context) (string, error) {
	if !f.acquire(ctx, "begin") {
		return "", ErrBusy
	}
	defer f.release()

	u, err := oauth.SignInURL(f.cfg.APIBaseURL, f.cfg.CallbackURL)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	f.pending = nil
	f.state = StateAwaitingProviderRedirect
	f.mu.Unlock()

	f.log.Info(ctx, "sign-in started")
	return u, nil
}

// HandleCallback consumes a provider result carried on rawURL and returns
// the URL without it. A URL with no result is returned as is and nothing
// happens, so feeding the returned URL back in is always a no-op.
func (f *Flow) HandleCallback(ctx context.Context, rawURL string) (string, error) {
	const op = "callback"

	res, stripped, found, err := oauth.ReadCallback(rawURL)
	if !found && err == nil {
		return stripped, nil
	}

	if !f.acquire(ctx, op) {
		return stripped, ErrBusy
	}
	defer f.release()

	switch {
	case errors.Is(err, oauth.ErrInvalidURL), errors.Is(err, oauth.ErrInvalidProfile):
		return stripped, f.fail(ctx, newError(KindCorrupt, op, err))
	case err != nil:
		return stripped, f.fail(ctx, newError(KindIncomplete, op, err))
	case res.Failed():
		return stripped, f.fail(ctx, newError(KindTransient, op, providerError{code: res.Error}))
	}

	return stripped, f.signIn(ctx, op, res.Profile, res.Token, SignInOptions{AllowRegistration: true})
}

// SignIn reconciles a provider profile with the account service: known
// emails are logged in, unknown ones open a pending registration when
// opts allow it.
func (f *Flow) SignIn(ctx context.Context, profile oauth.Profile, token string, opts SignInOptions) error {
	if !f.acquire(ctx, "sign-in") {
		return ErrBusy
	}
	defer f.release()

	return f.signIn(ctx, "sign-in", profile, token, opts)
}

// TestLogin signs in as TestProfile with a synthetic token. It never opens a
// registration.
func (f *Flow) TestLogin(ctx context.Context) error {
	if !f.cfg.TestMode {
		return ErrTestModeDisabled
	}
	if !f.acquire(ctx, "test-login") {
		return ErrBusy
	}
	defer f.release()

	return f.signIn(ctx, "test-login", TestProfile, newTestToken(), SignInOptions{
		AllowRegistration: false,
		OnMissingUser:     func() { f.hooks.OnNotice(testUserMissing) },
	})
}

// CancelRegistration discards the pending registration. It returns ErrBusy
// while a confirmation is in flight.
func (f *Flow) CancelRegistration(ctx context.Context) error {
	if !f.acquire(ctx, "cancel") {
		return ErrBusy
	}
	defer f.release()

	f.mu.Lock()
	if f.pending == nil {
		f.mu.Unlock()
		return nil
	}
	f.pending = nil
	f.lastErr = nil
	f.state = f.fallbackLocked()
	f.mu.Unlock()

	f.log.Info(ctx, "registration cancelled")
	return nil
}

// Logout ends the session and drops any pending registration.
func (f *Flow) Logout(ctx context.Context) error {
	if !f.acquire(ctx, "logout") {
		return ErrBusy
	}
	defer f.release()

	err := f.store.Logout(ctx)

	f.mu.Lock()
	f.pending = nil
	f.lastErr = nil
	f.state = StateAnonymous
	f.mu.Unlock()

	return err
}

func (f *Flow) signIn(ctx context.Context, op string, profile oauth.Profile, token string, opts SignInOptions) error {
	if err := validateProfile(profile); err != nil {
		return f.fail(ctx, newError(KindIncomplete, op, err))
	}
	if token == "" {
		return f.fail(ctx, newError(KindIncomplete, op, ErrMissingToken))
	}

	prior := f.enter(StateCheckingExistence)

	exists, err := f.api.ExistsByEmail(ctx, profile.Email)
	if err != nil {
		return f.remoteFailure(ctx, op, err, prior)
	}

	if !exists {
		return f.missingUser(ctx, op, profile, token, opts, prior)
	}

	res, err := f.api.Login(ctx, token, profile.Email)
	if err != nil {
		return f.remoteFailure(ctx, op, err, prior)
	}

	f.authenticate(ctx, mergeLogin(res.User, profile), res.Token)
	return nil
}

func (f *Flow) missingUser(ctx context.Context, op string, profile oauth.Profile, token string, opts SignInOptions, prior State) error {
	if !opts.AllowRegistration {
		if opts.OnMissingUser != nil {
			f.mu.Lock()
			f.state = prior
			f.mu.Unlock()
			f.log.Info(ctx, "account not found, registration not allowed", "op", op)
			opts.OnMissingUser()
			return nil
		}
		return f.fail(ctx, newError(KindValidation, op, ErrRegistrationNotAllowed))
	}

	f.mu.Lock()
	replaced := f.pending != nil
	f.pending = newPending(profile, token)
	f.lastErr = nil
	f.state = StatePendingRegistration
	f.mu.Unlock()

	f.log.Info(ctx, "registration pending", "replaced", replaced)
	f.hooks.OnRegistrationPending(profile)
	return nil
}

// authenticate commits id, records the new state and notifies the UI. A
// persistence failure leaves this process signed in; the next start will be
// anonymous.
func (f *Flow) authenticate(ctx context.Context, id session.Identity, token string) {
	if err := f.store.Commit(ctx, id, token); err != nil {
		f.log.Error(ctx, "could not save session", "error", err)
		f.hooks.OnNotice("Signed in, but the session could not be saved.")
	}

	f.mu.Lock()
	f.pending = nil
	f.lastErr = nil
	f.state = StateAuthenticated
	f.mu.Unlock()

	id = f.store.Get()
	f.log.Info(ctx, "signed in", "scope", id.ScopeName())
	f.hooks.OnAuthenticated(id)
}

// remoteFailure records a recoverable failure and returns to prior. In test
// mode the alert is replaced by a log hint.
func (f *Flow) remoteFailure(ctx context.Context, op string, err error, prior State) error {
	e := newError(KindTransient, op, err)

	f.mu.Lock()
	f.lastErr = e
	f.state = prior
	f.mu.Unlock()

	f.log.Error(ctx, "remote call failed", "op", op, "error", err)
	if f.cfg.TestMode && op != "test-login" && op != "confirm" {
		f.log.Warn(ctx, "provider sign-in failed in test mode; use testlogin instead")
		return e
	}
	f.hooks.OnFatalError(e.Message())
	return e
}

// fail records e, moves to StateError unless e is a validation failure and
// tells the user.
func (f *Flow) fail(ctx context.Context, e *Error) error {
	f.mu.Lock()
	f.lastErr = e
	if e.Kind == KindValidation {
		f.state = f.fallbackLocked()
	} else {
		f.state = StateError
	}
	f.mu.Unlock()

	f.log.Warn(ctx, "sign-in failed", "op", e.Op, "kind", e.Kind, "severity", e.Severity(), "error", e.Err)
	f.hooks.OnFatalError(e.Message())
	return e
}

// enter switches to s and returns the stable state to fall back to.
func (f *Flow) enter(s State) State {
	f.mu.Lock()
	defer f.mu.Unlock()
	prior := f.state
	if !prior.stable() {
		prior = f.fallbackLocked()
	}
	f.state = s
	return prior
}

func (f *Flow) fallback() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fallbackLocked()
}

func (f *Flow) fallbackLocked() State {
	switch {
	case f.pending != nil:
		return StatePendingRegistration
	case f.store.IsAuthenticated():
		return StateAuthenticated
	}
	return StateAnonymous
}

func (f *Flow) acquire(ctx context.Context, op string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inFlight {
		f.log.Warn(ctx, "operation ignored, another is in flight", "op", op, "state", f.state)
		return false
	}
	f.inFlight = true
	return true
}

func (f *Flow) release() {
	f.mu.Lock()
	f.inFlight = false
	f.mu.Unlock()
}
