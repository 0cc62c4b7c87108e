// Package common contains shared constants and sentinel errors used across
// gophsession components.
package common

// AuthorizationHeaderName carries the bearer credential on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName correlates client log lines with remote service logs.
const RequestIDHeaderName = "X-Request-ID"

// Storage keys of the local session database.
const (
	UserStorageKey  = "user"
	TokenStorageKey = "auth_token"
)

// AnonymousScope is the scoped-store namespace used when no identity is active.
const AnonymousScope = "anonymous"
