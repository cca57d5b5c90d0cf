package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profile() Profile {
	return Profile{ID: "u1", FullName: "Alice", Email: "a@x.com", Role: "pending"}
}

func TestGuardStartsUnauthenticated(t *testing.T) {
	g := NewGuard(NewMemoryStore())
	assert.False(t, g.IsAuthenticated())
	assert.Nil(t, g.User())
	assert.Empty(t, g.AccessToken())
}

func TestGuardLoginLogout(t *testing.T) {
	store := NewMemoryStore()
	g := NewGuard(store)

	require.NoError(t, g.Login(profile(), "access-1", "refresh-1"))
	assert.True(t, g.IsAuthenticated())
	assert.Equal(t, "Alice", g.User().FullName)
	assert.Equal(t, "access-1", g.AccessToken())
	assert.Equal(t, "refresh-1", g.RefreshToken())

	require.NoError(t, g.Logout())
	assert.False(t, g.IsAuthenticated())
	assert.Nil(t, g.User())

	// Logout clears all keys as a unit.
	for _, key := range []string{"token", "refreshToken", "user"} {
		_, ok := store.Get(key)
		assert.False(t, ok, key)
	}
}

func TestGuardRehydratesFromStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	g := NewGuard(store)
	require.NoError(t, g.Login(profile(), "access-1", "refresh-1"))

	// A fresh process over the same file picks up the session: token
	// presence alone decides, no expiry check happens client-side.
	store2, err := NewFileStore(path)
	require.NoError(t, err)
	g2 := NewGuard(store2)

	assert.True(t, g2.IsAuthenticated())
	require.NotNil(t, g2.User())
	assert.Equal(t, "u1", g2.User().ID)
	assert.Equal(t, "access-1", g2.AccessToken())
}

func TestGuardSetAccessToken(t *testing.T) {
	g := NewGuard(NewMemoryStore())
	require.NoError(t, g.Login(profile(), "access-1", "refresh-1"))

	require.NoError(t, g.SetAccessToken("access-2"))
	assert.Equal(t, "access-2", g.AccessToken())
	// The refresh token is untouched.
	assert.Equal(t, "refresh-1", g.RefreshToken())
}

func TestGuardCheckAuthStatusWithoutProfile(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set("token", "access-1"))

	g := NewGuard(store)
	assert.True(t, g.IsAuthenticated())
	assert.Nil(t, g.User())
}
