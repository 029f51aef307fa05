package viewmodel

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/bienestar/internal/client/client"
	"github.com/dmitrijs2005/bienestar/internal/client/services"
	"github.com/dmitrijs2005/bienestar/internal/logging"
)

// LoginState is a copy of the login screen.
type LoginState struct {
	Username string
	Status   string
	Busy     bool
	// NavigateToHome stays raised until ConsumeNavigation is called.
	NavigateToHome bool
}

// Login is the login screen view-model.
type Login struct {
	auth services.AuthService
	log  logging.Logger

	changes listeners

	mu       sync.Mutex
	username string
	password string
	status   string
	busy     bool
	navigate bool
}

func NewLogin(auth services.AuthService, opts ...Option) *Login {
	s := newSettings(opts)
	return &Login{auth: auth, log: s.log.With("screen", "login")}
}

func (l *Login) OnChange(fn func()) (cancel func()) {
	return l.changes.add(fn)
}

func (l *Login) SetUsername(v string) {
	l.mu.Lock()
	l.username = v
	l.mu.Unlock()
	l.changes.notify()
}

func (l *Login) SetPassword(v string) {
	l.mu.Lock()
	l.password = v
	l.mu.Unlock()
	l.changes.notify()
}

func (l *Login) State() LoginState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LoginState{Username: l.username, Status: l.status, Busy: l.busy, NavigateToHome: l.navigate}
}

// PerformLogin submits the current credentials. Any non-2xx answer from the
// backend reads as bad credentials; anything else as a connection problem.
func (l *Login) PerformLogin(ctx context.Context) error {
	l.mu.Lock()
	if l.busy {
		l.mu.Unlock()
		return ErrBusy
	}
	l.busy = true
	l.status = loginLoading
	username, password := l.username, l.password
	l.mu.Unlock()
	l.changes.notify()

	res, err := l.auth.Login(ctx, username, password)

	l.mu.Lock()
	l.busy = false
	if err != nil {
		var he *client.HTTPError
		if errors.As(err, &he) {
			l.status = loginBadPassword
		} else {
			l.status = loginNoNetwork
		}
		l.mu.Unlock()
		l.changes.notify()
		l.log.Warn(ctx, "login failed", "user", username, "err", err)
		return failed(err)
	}

	l.status = loginSuccess
	if res.RoleResolved {
		l.status += " welcome " + res.Role.DisplayName()
	}
	l.password = ""
	l.navigate = true
	l.mu.Unlock()
	l.changes.notify()
	return nil
}

// ConsumeNavigation reports whether a successful login is waiting to be
// acted on and lowers the flag, so each login navigates exactly once.
func (l *Login) ConsumeNavigation() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := l.navigate
	l.navigate = false
	return n
}
