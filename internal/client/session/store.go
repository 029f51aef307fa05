// Package session holds the identity of the signed-in user.
//
// A Store is created once by the composition root and passed to whoever
// needs it. It is safe for concurrent use: writers (the auth flow) and
// readers (navigation, admin gating) may live on different goroutines.
package session

import "sync"

// Session is a point-in-time copy of the store.
type Session struct {
	Username      string
	Role          Role
	UserID        int64
	Authenticated bool
}

// Guest is the state before login and after logout.
func Guest() Session {
	return Session{Role: RoleGuest}
}

type Store struct {
	mu sync.RWMutex
	s  Session
}

func NewStore() *Store {
	return &Store{s: Guest()}
}

// Login records a successful authentication.
func (st *Store) Login(username string, role Role, userID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s = Session{Username: username, Role: role, UserID: userID, Authenticated: true}
}

// Logout resets the store to Guest.
func (st *Store) Logout() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s = Guest()
}

func (st *Store) Snapshot() Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.s
}

func (st *Store) Username() string {
	return st.Snapshot().Username
}

func (st *Store) Role() Role {
	return st.Snapshot().Role
}

func (st *Store) IsAdmin() bool {
	return st.Snapshot().Role == RoleAdmin
}

// IsClient reports a regular (non-admin) signed-in user.
func (st *Store) IsClient() bool {
	return st.Snapshot().Role == RoleUser
}

// HasAdminPermissions gates admin-only actions such as deletes.
func (st *Store) HasAdminPermissions() bool {
	return st.IsAdmin()
}

// IsLoggedIn requires both the authenticated flag and a non-guest role.
func (st *Store) IsLoggedIn() bool {
	s := st.Snapshot()
	return s.Authenticated && s.Role != RoleGuest
}
