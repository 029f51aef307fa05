// Package services contains application services for the wellness client.
// This file defines the authentication service: login with role derivation,
// best-effort logout, and restoring a persisted login on startup.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/bienestar/internal/client/client"
	"github.com/dmitrijs2005/bienestar/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bienestar/internal/client/session"
	"github.com/dmitrijs2005/bienestar/internal/dbx"
	"github.com/dmitrijs2005/bienestar/internal/logging"
)

// LoginResult describes a successful login. RoleResolved is false when the
// user-info lookup failed and Role fell back to session.RoleUser.
type LoginResult struct {
	Username     string
	Role         session.Role
	RoleResolved bool
}

// AuthService defines authentication operations for the view-models.
//
// Contract:
//   - Login: authenticate, resolve the role and populate the session store.
//     The store is left untouched when authentication fails.
//   - Logout: tell the backend (errors ignored) and always reset the store.
//   - Restore: re-validate a persisted login against the backend.
//   - Close: release underlying client resources.
type AuthService interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (bool, error)
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  *session.Store
	db     *sql.DB
	log    logging.Logger
}

// NewAuthService binds the API client and session store. db may be nil, in
// which case nothing is persisted and Restore always reports false.
func NewAuthService(c client.Client, store *session.Store, db *sql.DB, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &authService{client: c, store: store, db: db, log: log}
}

// storedCookie is the persisted form of a session cookie; the jar only
// exposes name and value for outgoing requests.
type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (a *authService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	if err := a.client.Login(ctx, username, password); err != nil {
		return LoginResult{}, fmt.Errorf("login: %w", err)
	}

	res := LoginResult{Username: username, Role: session.RoleUser}

	info, err := a.client.UserInfo(ctx)
	switch {
	case err != nil:
		a.log.Warn(ctx, "user-info failed, defaulting role", "user", username, "err", err)
	case !info.Success:
		a.log.Warn(ctx, "user-info rejected, defaulting role", "user", username, "message", info.Message)
	default:
		res.Role = session.DeriveRole(info.Role)
		res.RoleResolved = true
	}

	a.store.Login(res.Username, res.Role, 0)

	if err := a.persist(ctx, res.Username); err != nil {
		// The login itself succeeded; only the next startup loses it.
		a.log.Warn(ctx, "persist session failed", "err", err)
	}

	a.log.Info(ctx, "logged in", "user", res.Username, "role", string(res.Role))
	return res, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		a.log.Warn(ctx, "logout endpoint failed, clearing session anyway", "err", err)
	}
	a.store.Logout()
	a.client.RestoreSessionCookies(expired(a.client.SessionCookies()))

	if err := a.forget(ctx); err != nil {
		return fmt.Errorf("clear persisted session: %w", err)
	}
	return nil
}

// Restore reports whether a persisted login is still valid. A rejected or
// malformed login is forgotten; a transport failure keeps the marker so the
// next start can try again, and is returned to the caller.
func (a *authService) Restore(ctx context.Context) (bool, error) {
	if a.db == nil {
		return false, nil
	}

	repo := metadata.NewSQLiteRepository(a.db)

	marker, err := repo.Get(ctx, metadata.KeyAuthenticated)
	if err != nil {
		return false, fmt.Errorf("read session marker: %w", err)
	}
	if marker == nil {
		a.store.Logout()
		return false, nil
	}

	raw, err := repo.Get(ctx, metadata.KeyCookies)
	if err != nil {
		return false, fmt.Errorf("read session cookies: %w", err)
	}
	var stored []storedCookie
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &stored); err != nil {
			a.log.Warn(ctx, "stored cookies unreadable", "err", err)
		}
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	a.client.RestoreSessionCookies(cookies)

	info, err := a.client.UserInfo(ctx)
	if errors.Is(err, client.ErrUnavailable) {
		a.store.Logout()
		return false, fmt.Errorf("restore session: %w", err)
	}
	if err != nil || !info.Success {
		a.log.Info(ctx, "persisted session no longer valid")
		a.store.Logout()
		if ferr := a.forget(ctx); ferr != nil {
			return false, fmt.Errorf("clear persisted session: %w", ferr)
		}
		return false, nil
	}

	username := info.Username
	if username == "" {
		saved, err := repo.Get(ctx, metadata.KeyUsername)
		if err != nil {
			return false, fmt.Errorf("read username: %w", err)
		}
		username = string(saved)
	}

	a.store.Login(username, session.DeriveRole(info.Role), 0)
	a.log.Info(ctx, "session restored", "user", username)
	return true, nil
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// persist stores the marker, username and session cookies in one transaction.
func (a *authService) persist(ctx context.Context, username string) error {
	if a.db == nil {
		return nil
	}

	jar := a.client.SessionCookies()
	stored := make([]storedCookie, 0, len(jar))
	for _, c := range jar {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}
	cookies, err := json.Marshal(stored)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, metadata.KeyAuthenticated, []byte("1")); err != nil {
			return err
		}
		if err := repo.Set(ctx, metadata.KeyUsername, []byte(username)); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyCookies, cookies)
	})
}

func (a *authService) forget(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	return metadata.NewSQLiteRepository(a.db).Delete(ctx,
		metadata.KeyAuthenticated, metadata.KeyUsername, metadata.KeyCookies)
}

// expired turns the given cookies into deletions for the jar.
func expired(cookies []*http.Cookie) []*http.Cookie {
	out := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, &http.Cookie{Name: c.Name, Value: "", MaxAge: -1})
	}
	return out
}
