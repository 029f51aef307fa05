package devserver

import (
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCredentials = errors.New("bad credentials")

// Seed describes a user created at startup.
type Seed struct {
	Username string
	Password string
	Roles    []string
}

// DefaultSeeds are the demo accounts of the backend.
func DefaultSeeds() []Seed {
	return []Seed{
		{Username: "admin", Password: "1234", Roles: []string{"ADMIN", "RECEPTIONIST"}},
		{Username: "client", Password: "1234", Roles: []string{"CLIENT"}},
	}
}

type user struct {
	hash  []byte
	roles []string
}

// Users is the account table. Passwords are kept as bcrypt hashes.
type Users struct {
	mu    sync.RWMutex
	users map[string]user
}

// NewUsers hashes every seed with the given bcrypt cost.
func NewUsers(cost int, seeds ...Seed) (*Users, error) {
	u := &Users{users: make(map[string]user, len(seeds))}
	for _, s := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), cost)
		if err != nil {
			return nil, err
		}
		u.users[s.Username] = user{hash: hash, roles: s.Roles}
	}
	return u, nil
}

// Authenticate returns the main role of username when password matches.
func (u *Users) Authenticate(username, password string) (string, error) {
	u.mu.RLock()
	rec, ok := u.users[username]
	u.mu.RUnlock()
	if !ok {
		return "", ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(rec.hash, []byte(password)); err != nil {
		return "", ErrBadCredentials
	}
	return MainRole(rec.roles), nil
}

// MainRole picks the highest role: ADMIN, then RECEPTIONIST, then CLIENT.
// A user with no roles is a client.
func MainRole(roles []string) string {
	if len(roles) == 0 {
		return "ROLE_CLIENT"
	}
	for _, want := range []string{"ADMIN", "RECEPTIONIST", "CLIENT"} {
		for _, r := range roles {
			if strings.Contains(strings.ToUpper(r), want) {
				return "ROLE_" + want
			}
		}
	}
	return "ROLE_" + strings.ToUpper(roles[0])
}
