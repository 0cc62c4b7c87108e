package auth

import "fmt"

// State is where the flow currently is.
type State int

const (
	StateAnonymous State = iota
	StateAwaitingProviderRedirect
	StateCheckingExistence
	StatePendingRegistration
	StateAuthenticated
	StateError
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAwaitingProviderRedirect:
		return "awaiting-provider-redirect"
	case StateCheckingExistence:
		return "checking-existence"
	case StatePendingRegistration:
		return "pending-registration"
	case StateAuthenticated:
		return "authenticated"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// stable reports whether a failed operation may return to s.
func (s State) stable() bool {
	return s == StateAnonymous || s == StatePendingRegistration || s == StateAuthenticated
}
