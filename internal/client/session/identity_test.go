package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity_ScopeKey(t *testing.T) {
	assert.Nil(t, Empty().ScopeKey())
	assert.Equal(t, "anonymous", Empty().ScopeName())

	withID := Identity{ID: Int64(42)}
	assert.Equal(t, "42", *withID.ScopeKey())

	withBoth := Identity{ID: Int64(42), Email: String("e@x.com")}
	assert.Equal(t, "e@x.com", *withBoth.ScopeKey())

	blankEmail := Identity{ID: Int64(42), Email: String("")}
	assert.Equal(t, "42", *blankEmail.ScopeKey())
}

func TestIdentity_DisplayName(t *testing.T) {
	assert.Equal(t, "User", Empty().DisplayName())
	assert.Equal(t, "Ann", Identity{Name: String("Ann")}.DisplayName())
	assert.Equal(t, "ann", Identity{Name: String("Ann"), Nickname: String("ann")}.DisplayName())
}

func TestUnmarshalIdentity_IDKept(t *testing.T) {
	id, err := unmarshalIdentity([]byte(`{"idx":7,"name":"N","email":"e","picture":"p","level":3,"score":9}`))
	assert.NoError(t, err)
	assert.Equal(t, int64(7), *id.ID)
	assert.Equal(t, "p", *id.Picture)
	assert.Nil(t, id.Nickname)
	assert.Equal(t, 3, id.Level)
	assert.Equal(t, 9, id.Score)
}
