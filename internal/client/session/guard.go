// Package session holds the client-side authentication state machine.
// The guard is an explicit, injectable object: it is created once at
// application start, rehydrated from the store, and mutated only
// through CheckAuthStatus, Login and Logout.
package session

import (
	"encoding/json"
	"sync"
)

// Storage keys shared with the original web client.
const (
	accessTokenKey  = "token"
	refreshTokenKey = "refreshToken"
	userKey         = "user"
)

// Profile is the cached snapshot of the logged-in user.
type Profile struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type Guard struct {
	mu            sync.RWMutex
	store         Store
	authenticated bool
	user          *Profile
}

// NewGuard creates a guard over the given store and immediately
// rehydrates state from it.
func NewGuard(store Store) *Guard {
	g := &Guard{store: store}
	g.CheckAuthStatus()
	return g
}

// CheckAuthStatus settles the state from persisted storage. Token
// presence alone decides authentication; expiry is only discovered
// when a protected call fails.
func (g *Guard) CheckAuthStatus() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	token, ok := g.store.Get(accessTokenKey)
	if !ok || token == "" {
		g.authenticated = false
		g.user = nil
		return false
	}

	g.user = nil
	if raw, ok := g.store.Get(userKey); ok && raw != "" {
		var p Profile
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			g.user = &p
		}
	}

	g.authenticated = true
	return true
}

// Login persists both tokens and the profile snapshot and flips the
// state to authenticated.
func (g *Guard) Login(user Profile, accessToken, refreshToken string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.Set(accessTokenKey, accessToken); err != nil {
		return err
	}
	if refreshToken != "" {
		if err := g.store.Set(refreshTokenKey, refreshToken); err != nil {
			return err
		}
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := g.store.Set(userKey, string(raw)); err != nil {
		return err
	}

	g.user = &user
	g.authenticated = true
	return nil
}

// Logout clears all persisted auth material as a unit. There is no
// server-side revocation endpoint to call.
func (g *Guard) Logout() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.authenticated = false
	g.user = nil
	return g.store.Remove(accessTokenKey, refreshTokenKey, userKey)
}

func (g *Guard) IsAuthenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.authenticated
}

// User returns a copy of the cached profile, or nil when logged out.
func (g *Guard) User() *Profile {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.user == nil {
		return nil
	}
	p := *g.user
	return &p
}

func (g *Guard) AccessToken() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.authenticated {
		return ""
	}
	token, _ := g.store.Get(accessTokenKey)
	return token
}

func (g *Guard) RefreshToken() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	token, _ := g.store.Get(refreshTokenKey)
	return token
}

// SetAccessToken replaces the stored access token after a successful
// refresh call without touching the rest of the session.
func (g *Guard) SetAccessToken(token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.store.Set(accessTokenKey, token)
}
