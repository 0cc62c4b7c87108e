// Package ui defines the notification hooks the auth flow uses to update
// whatever shows the session to the user, plus two implementations: Console
// for the CLI and Recorder for tests.
package ui

import (
	"github.com/dmitrijs2005/gophsession/internal/client/oauth"
	"github.com/dmitrijs2005/gophsession/internal/client/session"
)

// Hooks receives session events. Messages are already user-facing; raw
// transport errors never reach a hook.
type Hooks interface {
	OnAuthenticated(id session.Identity)
	OnLoggedOut()
	OnRegistrationPending(profile oauth.Profile)
	OnValidationError(message string)
	OnFatalError(message string)
	OnNotice(message string)
}

// Nop ignores every event.
type Nop struct{}

func (Nop) OnAuthenticated(session.Identity)    {}
func (Nop) OnLoggedOut()                        {}
func (Nop) OnRegistrationPending(oauth.Profile) {}
func (Nop) OnValidationError(string)            {}
func (Nop) OnFatalError(string)                 {}
func (Nop) OnNotice(string)                     {}
