package cli

import (
	"bufio"
	"bytes"
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/dmitrijs2005/bienestar/internal/client/client"
	"github.com/dmitrijs2005/bienestar/internal/client/models"
	"github.com/dmitrijs2005/bienestar/internal/client/services"
	"github.com/dmitrijs2005/bienestar/internal/client/session"
	"github.com/dmitrijs2005/bienestar/internal/logging"
)

// memResource is an in-memory client.Resource keyed by id.
type memResource[T models.Entity] struct {
	mu      sync.Mutex
	items   []T
	setID   func(*T, int64)
	ListErr error
}

func (r *memResource[T]) List(context.Context) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	return append([]T(nil), r.items...), nil
}

func (r *memResource[T]) Get(_ context.Context, id int64) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.EntityID() == id {
			return it, nil
		}
	}
	var zero T
	return zero, &client.HTTPError{Method: http.MethodGet, StatusCode: http.StatusNotFound, Status: "404 Not Found"}
}

func (r *memResource[T]) Create(_ context.Context, item T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setID(&item, int64(len(r.items))+1)
	r.items = append(r.items, item)
	return item, nil
}

func (r *memResource[T]) Update(_ context.Context, id int64, item T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setID(&item, id)
	for i, it := range r.items {
		if it.EntityID() == id {
			r.items[i] = item
		}
	}
	return item, nil
}

func (r *memResource[T]) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[:0]
	for _, it := range r.items {
		if it.EntityID() != id {
			kept = append(kept, it)
		}
	}
	r.items = kept
	return nil
}

type fakeAPI struct {
	clients      *memResource[models.Client]
	services     *memResource[models.Service]
	appointments *memResource[models.Appointment]
	invoices     []models.Invoice

	LoginErr error
	Role     string
}

var _ client.Client = (*fakeAPI)(nil)

func newFakeAPI(role string) *fakeAPI {
	return &fakeAPI{
		clients:      &memResource[models.Client]{setID: func(c *models.Client, id int64) { c.ID = id }},
		services:     &memResource[models.Service]{setID: func(s *models.Service, id int64) { s.ID = id }},
		appointments: &memResource[models.Appointment]{setID: func(a *models.Appointment, id int64) { a.ID = id }},
		Role:         role,
	}
}

func (f *fakeAPI) Login(context.Context, string, string) error { return f.LoginErr }
func (f *fakeAPI) Logout(context.Context) error                { return nil }
func (f *fakeAPI) UserInfo(context.Context) (*models.UserInfo, error) {
	return &models.UserInfo{Success: true, Role: f.Role}, nil
}
func (f *fakeAPI) Clients() client.Resource[models.Client]           { return f.clients }
func (f *fakeAPI) Services() client.Resource[models.Service]         { return f.services }
func (f *fakeAPI) Appointments() client.Resource[models.Appointment] { return f.appointments }
func (f *fakeAPI) SessionCookies() []*http.Cookie                    { return nil }
func (f *fakeAPI) RestoreSessionCookies([]*http.Cookie)              {}
func (f *fakeAPI) Close() error                                      { return nil }

func (f *fakeAPI) AppointmentsByClient(_ context.Context, clientID int64) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments.items {
		if ap.ClientID == clientID {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreateInvoice(_ context.Context, inv models.Invoice) (models.Invoice, error) {
	inv.ID = int64(len(f.invoices)) + 1
	f.invoices = append(f.invoices, inv)
	return inv, nil
}

func (f *fakeAPI) InvoicesByClient(_ context.Context, clientID int64) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range f.invoices {
		if inv.ClientID == clientID {
			out = append(out, inv)
		}
	}
	return out, nil
}

// testApp wires an App over api with the real auth service and no local
// database. input is the text the user will type.
func testApp(api *fakeAPI, input string) (*App, *bytes.Buffer) {
	store := session.NewStore()
	auth := services.NewAuthService(api, store, nil, logging.Discard())
	out := &bytes.Buffer{}
	a := newApp(api, auth, store, bufio.NewReader(strings.NewReader(input)), out, logging.Discard())
	return a, out
}

// feed replaces the pending user input.
func (a *App) feed(input string) {
	a.reader = bufio.NewReader(strings.NewReader(input))
}
