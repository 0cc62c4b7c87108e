package ui

import (
	"sync"

	"github.com/dmitrijs2005/gophsession/internal/client/oauth"
	"github.com/dmitrijs2005/gophsession/internal/client/session"
)

// Recorder keeps every event for later inspection.
type Recorder struct {
	mu            sync.Mutex
	Authenticated []session.Identity
	LoggedOut     int
	Pending       []oauth.Profile
	Validation    []string
	Fatal         []string
	Notices       []string
}

func (r *Recorder) OnAuthenticated(id session.Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Authenticated = append(r.Authenticated, id)
}

func (r *Recorder) OnLoggedOut() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.LoggedOut++
}

func (r *Recorder) OnRegistrationPending(p oauth.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Pending = append(r.Pending, p)
}

func (r *Recorder) OnValidationError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Validation = append(r.Validation, message)
}

func (r *Recorder) OnFatalError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Fatal = append(r.Fatal, message)
}

func (r *Recorder) OnNotice(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notices = append(r.Notices, message)
}

// Snapshot returns a copy safe to read while events keep arriving.
func (r *Recorder) Snapshot() Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Recorder{
		Authenticated: append([]session.Identity(nil), r.Authenticated...),
		LoggedOut:     r.LoggedOut,
		Pending:       append([]oauth.Profile(nil), r.Pending...),
		Validation:    append([]string(nil), r.Validation...),
		Fatal:         append([]string(nil), r.Fatal...),
		Notices:       append([]string(nil), r.Notices...),
	}
}
