package auth

import (
	"strings"

	"github.com/dmitrijs2005/gophsession/internal/client/client"
	"github.com/dmitrijs2005/gophsession/internal/client/oauth"
	"github.com/dmitrijs2005/gophsession/internal/client/session"
)

// mergeLogin builds the signed-in identity. Values from the account
// service win; the provider profile fills the gaps.
func mergeLogin(u client.RemoteUser, p oauth.Profile) session.Identity {
	score := 0
	if u.Score != nil && *u.Score > 0 {
		score = *u.Score
	}
	return session.Identity{
		ID:       u.Idx,
		Name:     pick(u.Name, p.DisplayName()),
		Email:    pick(u.Email, p.Email),
		Nickname: pick(u.Nickname, p.Nickname),
		Picture:  pick(u.Picture, p.Avatar()),
		Level:    levelOrDefault(u.Level),
		Score:    score,
	}
}

func pick(remote *string, local string) *string {
	if remote != nil && strings.TrimSpace(*remote) != "" {
		return session.String(*remote)
	}
	if local != "" {
		return session.String(local)
	}
	return nil
}

func levelOrDefault(level *int) int {
	if level == nil || *level < 1 {
		return 1
	}
	return *level
}
