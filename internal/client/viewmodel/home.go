package viewmodel

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/bienestar/internal/client/client"
	"github.com/dmitrijs2005/bienestar/internal/client/models"
	"github.com/dmitrijs2005/bienestar/internal/client/services"
	"github.com/dmitrijs2005/bienestar/internal/client/session"
	"github.com/dmitrijs2005/bienestar/internal/logging"
)

// Home is the landing screen: a read-only service catalogue and logout.
type Home struct {
	api   client.Client
	auth  services.AuthService
	store *session.Store
	log   logging.Logger

	changes listeners

	mu    sync.Mutex
	state State[models.Service]
}

func NewHome(api client.Client, auth services.AuthService, store *session.Store, opts ...Option) *Home {
	s := newSettings(opts)
	return &Home{
		api:   api,
		auth:  auth,
		store: store,
		log:   s.log.With("screen", "home"),
		state: Loading[models.Service](),
	}
}

func (h *Home) OnChange(fn func()) (cancel func()) {
	return h.changes.add(fn)
}

func (h *Home) State() State[models.Service] {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.clone()
}

// Session returns who is signed in, for the greeting.
func (h *Home) Session() session.Session {
	return h.store.Snapshot()
}

func (h *Home) FetchServices(ctx context.Context) error {
	h.mu.Lock()
	h.state = Loading[models.Service]()
	h.mu.Unlock()
	h.changes.notify()

	items, err := h.api.Services().List(ctx)

	h.mu.Lock()
	if err != nil {
		h.state = Failure[models.Service]("error loading services.")
	} else {
		h.state = Success(items)
	}
	h.mu.Unlock()
	h.changes.notify()

	if err != nil {
		h.log.Warn(ctx, "service catalogue failed", "err", err)
		return failed(err)
	}
	return nil
}

// Logout ends the session. It never fails from the user's point of view:
// the backend call is best effort and the session store is always reset
// before onLoggedOut runs. The caller should drop its navigation history
// and show the login screen from onLoggedOut.
func (h *Home) Logout(ctx context.Context, onLoggedOut func()) {
	if err := h.auth.Logout(ctx); err != nil {
		h.log.Warn(ctx, "logout cleanup failed", "err", err)
	}
	h.store.Logout()
	h.changes.notify()

	if onLoggedOut != nil {
		onLoggedOut()
	}
}
