package client

import (
	"context"
)

// RemoteUser is the account record returned by the remote service. Every
// field is optional on the wire.
type RemoteUser struct {
	Idx      *int64  `json:"idx"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Nickname *string `json:"nickname"`
	Picture  *string `json:"picture"`
	Level    *int    `json:"level"`
	Score    *int    `json:"score"`
}

// AuthResult is a successful login or registration.
type AuthResult struct {
	Token string
	User  RemoteUser
}

// Registration carries the provider profile plus the chosen nickname.
type Registration struct {
	Name     string `json:"name"`
	ID       string `json:"id"`
	Email    string `json:"email"`
	Picture  string `json:"picture"`
	Nickname string `json:"nickname"`
}

// AccountClient is the contract of the remote account service.
type AccountClient interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Login(ctx context.Context, providerToken string, email string) (*AuthResult, error)
	Register(ctx context.Context, providerToken string, r Registration) (*AuthResult, error)
	NicknameExists(ctx context.Context, nickname string) (bool, error)
}
