package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/gophsession/internal/client/oauth"
	"github.com/dmitrijs2005/gophsession/internal/client/session"
)

// Console renders events as lines on w.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) println(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, format+"\n", args...)
}

func (c *Console) OnAuthenticated(id session.Identity) {
	avatar := ""
	if id.Picture != nil && *id.Picture != "" {
		avatar = " [" + *id.Picture + "]"
	}
	c.println("Signed in as %s (level %d)%s", id.DisplayName(), id.Level, avatar)
}

func (c *Console) OnLoggedOut() {
	c.println("Signed out")
}

func (c *Console) OnRegistrationPending(p oauth.Profile) {
	c.println("Welcome, %s! Choose a nickname (2-20 characters): nickname <name>, or 'cancel'", p.DisplayName())
}

func (c *Console) OnValidationError(message string) {
	c.println("! %s", message)
}

func (c *Console) OnFatalError(message string) {
	c.println("Error: %s", message)
}

func (c *Console) OnNotice(message string) {
	c.println("%s", message)
}
