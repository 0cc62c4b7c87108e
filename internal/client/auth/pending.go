package auth

import (
	"github.com/dmitrijs2005/gophsession/internal/client/client"
	"github.com/dmitrijs2005/gophsession/internal/client/oauth"
)

// Pending is a first-time sign-in waiting for a nickname. The provider
// token is kept only here and never persisted.
type Pending struct {
	Name    string
	ID      string
	Email   string
	Picture string

	Profile oauth.Profile
	token   string
}

func newPending(p oauth.Profile, token string) *Pending {
	return &Pending{
		Name:    p.DisplayName(),
		ID:      p.ProviderID(),
		Email:   p.Email,
		Picture: p.Avatar(),
		Profile: p,
		token:   token,
	}
}

func (p *Pending) complete() bool {
	return p.Name != "" && p.ID != "" && p.Email != "" && p.Picture != "" && p.token != ""
}

func (p *Pending) registration(nickname string) client.Registration {
	return client.Registration{
		Name:     p.Name,
		ID:       p.ID,
		Email:    p.Email,
		Picture:  p.Picture,
		Nickname: nickname,
	}
}
