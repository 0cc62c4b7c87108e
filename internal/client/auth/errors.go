package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophsession/internal/client/client"
)

var (
	ErrBusy                   = errors.New("another sign-in operation is in progress")
	ErrInvalidProfile         = errors.New("invalid user data received from authentication provider")
	ErrMissingToken           = errors.New("authentication token is missing")
	ErrRegistrationNotAllowed = errors.New("user not found and registration is not allowed")
	ErrIncompleteProfile      = errors.New("incomplete user data, please sign in again")
	ErrNicknameTaken          = errors.New("nickname already in use")
	ErrProvider               = errors.New("provider returned an error")
	ErrTestModeDisabled       = errors.New("test login is only available in test mode")
)

// Kind classifies a flow failure.
type Kind int

const (
	// KindTransient covers remote and provider failures; retrying may help.
	KindTransient Kind = iota
	// KindValidation is bad user input.
	KindValidation
	// KindIncomplete means the provider profile lacks required fields.
	KindIncomplete
	// KindCorrupt means the provider result could not be decoded.
	KindCorrupt
)

func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindValidation:
		return "validation"
	case KindIncomplete:
		return "incomplete"
	case KindCorrupt:
		return "corrupt"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Severity tells the host whether the flow can simply be retried.
type Severity int

const (
	Recoverable Severity = iota
	Fatal
)

func (s Severity) String() string {
	if s == Fatal {
		return "fatal"
	}
	return "recoverable"
}

// Error is a failed flow operation. Err keeps the underlying cause for
// errors.Is; Message is what the user sees.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Severity() Severity {
	if e.Kind == KindIncomplete || e.Kind == KindCorrupt {
		return Fatal
	}
	return Recoverable
}

// Message renders the failure for display. Transport details stay in the
// logs.
func (e *Error) Message() string {
	var pe providerError
	switch {
	case errors.Is(e.Err, client.ErrUnavailable):
		return "Server unavailable. Please try again."
	case errors.Is(e.Err, client.ErrUnauthorized):
		return "Authentication was rejected. Please sign in again."
	case errors.Is(e.Err, client.ErrInvalidResponse):
		return "Unexpected response from server. Please try again."
	case errors.As(e.Err, &pe):
		return "GitHub login error: " + pe.code
	}
	return e.Err.Error()
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// providerError wraps the provider's error code so Message can show it.
type providerError struct{ code string }

func (p providerError) Error() string { return p.code }

func (p providerError) Is(target error) bool { return target == ErrProvider }
