// Package oauth implements the client half of the provider redirect
// contract: building the sign-in URL, reading the provider result from the
// callback URL and stripping it, and normalizing the raw provider profile.
package oauth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidProfile = errors.New("invalid provider profile")

// Profile is the provider's user profile as relayed by the account service.
// GitHub sends numeric ids and avatar_url; other providers send picture.
type Profile struct {
	ID        string `json:"id"`
	NodeID    string `json:"node_id,omitempty"`
	Login     string `json:"login,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Picture   string `json:"picture,omitempty"`
	Nickname  string `json:"nickname,omitempty"`
}

type rawProfile struct {
	ID        any    `json:"id"`
	NodeID    string `json:"node_id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Picture   string `json:"picture"`
	Nickname  string `json:"nickname"`
}

// ParseProfile decodes a JSON profile. Numeric ids are kept exact.
func ParseProfile(data []byte) (Profile, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw *rawProfile
	if err := dec.Decode(&raw); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if raw == nil {
		return Profile{}, fmt.Errorf("%w: null", ErrInvalidProfile)
	}

	p := Profile{
		NodeID:    raw.NodeID,
		Login:     raw.Login,
		Name:      raw.Name,
		Email:     raw.Email,
		AvatarURL: raw.AvatarURL,
		Picture:   raw.Picture,
		Nickname:  raw.Nickname,
	}
	switch v := raw.ID.(type) {
	case nil:
	case json.Number:
		p.ID = v.String()
	case string:
		p.ID = v
	default:
		return Profile{}, fmt.Errorf("%w: unsupported id %v", ErrInvalidProfile, v)
	}
	return p, nil
}

// DisplayName is the name, falling back to the login handle.
func (p Profile) DisplayName() string {
	if strings.TrimSpace(p.Name) != "" {
		return p.Name
	}
	return p.Login
}

// ProviderID is the id, falling back to the node id.
func (p Profile) ProviderID() string {
	if p.ID != "" {
		return p.ID
	}
	return p.NodeID
}

// Avatar is avatar_url, falling back to picture.
func (p Profile) Avatar() string {
	if p.AvatarURL != "" {
		return p.AvatarURL
	}
	return p.Picture
}
