// Package session owns the local identity session: the in-memory Identity,
// its persisted counterpart in the session database, the bearer token, and
// the scoped-store rebind that follows every identity change.
package session

import (
	"strconv"

	"github.com/dmitrijs2005/gophsession/internal/common"
)

// Identity is the session record. Nullable attributes are pointers so that
// "absent" and "empty string" stay distinguishable.
type Identity struct {
	ID       *int64
	Name     *string
	Email    *string
	Nickname *string
	Picture  *string
	Level    int
	Score    int
}

// Empty returns the anonymous identity: every nullable field absent,
// level 1 and score 0.
func Empty() Identity {
	return Identity{Level: 1}
}

// IsAuthenticated holds iff both email and name are present.
func (i Identity) IsAuthenticated() bool {
	return i.Email != nil && i.Name != nil
}

// ScopeKey derives the scoped-store namespace: email if present, else the
// account id. Nil means the anonymous scope.
func (i Identity) ScopeKey() *string {
	if i.Email != nil && *i.Email != "" {
		return String(*i.Email)
	}
	if i.ID != nil {
		return String(strconv.FormatInt(*i.ID, 10))
	}
	return nil
}

// ScopeName is ScopeKey with the anonymous sentinel substituted for nil.
func (i Identity) ScopeName() string {
	if k := i.ScopeKey(); k != nil {
		return *k
	}
	return common.AnonymousScope
}

// DisplayName prefers the nickname over the provider name.
func (i Identity) DisplayName() string {
	switch {
	case i.Nickname != nil && *i.Nickname != "":
		return *i.Nickname
	case i.Name != nil && *i.Name != "":
		return *i.Name
	default:
		return "User"
	}
}

// Clone returns a deep copy, so snapshots never alias the live record.
func (i Identity) Clone() Identity {
	out := Identity{Level: i.Level, Score: i.Score}
	if i.ID != nil {
		id := *i.ID
		out.ID = &id
	}
	out.Name = cloneString(i.Name)
	out.Email = cloneString(i.Email)
	out.Nickname = cloneString(i.Nickname)
	out.Picture = cloneString(i.Picture)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	return String(*s)
}

// String returns a pointer to s.
func String(s string) *string { return &s }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }
