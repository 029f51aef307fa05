package viewmodel

import (
	"context"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/bienestar/internal/client/client"
	"github.com/dmitrijs2005/bienestar/internal/client/models"
	"github.com/dmitrijs2005/bienestar/internal/client/services"
)

// fakeResource is an in-memory client.Resource. Setting an *Err field makes
// the matching call fail; gate, when set, blocks mutations until closed.
type fakeResource[T models.Entity] struct {
	mu     sync.Mutex
	items  []T
	nextID int64
	setID  func(*T, int64)

	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error

	gate    chan struct{}
	entered chan struct{}

	ListCalls   int
	CreateCalls int
	UpdateCalls int
	DeleteCalls int
	LastDraft   T
	LastID      int64
}

func newFakeResource[T models.Entity](setID func(*T, int64), items ...T) *fakeResource[T] {
	return &fakeResource[T]{items: items, nextID: int64(len(items)) + 1, setID: setID}
}

func (r *fakeResource[T]) wait(ctx context.Context) error {
	if r.entered != nil {
		r.entered <- struct{}{}
	}
	if r.gate == nil {
		return nil
	}
	select {
	case <-r.gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *fakeResource[T]) List(context.Context) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ListCalls++
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	return append([]T(nil), r.items...), nil
}

func (r *fakeResource[T]) Get(_ context.Context, id int64) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.EntityID() == id {
			return it, nil
		}
	}
	var zero T
	return zero, &client.HTTPError{StatusCode: http.StatusNotFound, Status: "404 Not Found"}
}

func (r *fakeResource[T]) Create(ctx context.Context, item T) (T, error) {
	if err := r.wait(ctx); err != nil {
		return item, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CreateCalls++
	r.LastDraft = item
	if r.CreateErr != nil {
		return item, r.CreateErr
	}
	r.setID(&item, r.nextID)
	r.nextID++
	r.items = append(r.items, item)
	return item, nil
}

func (r *fakeResource[T]) Update(ctx context.Context, id int64, item T) (T, error) {
	if err := r.wait(ctx); err != nil {
		return item, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.UpdateCalls++
	r.LastDraft, r.LastID = item, id
	if r.UpdateErr != nil {
		return item, r.UpdateErr
	}
	r.setID(&item, id)
	for i, it := range r.items {
		if it.EntityID() == id {
			r.items[i] = item
		}
	}
	return item, nil
}

func (r *fakeResource[T]) Delete(ctx context.Context, id int64) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.DeleteCalls++
	r.LastID = id
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	kept := r.items[:0]
	for _, it := range r.items {
		if it.EntityID() != id {
			kept = append(kept, it)
		}
	}
	r.items = kept
	return nil
}

func setClientID(c *models.Client, id int64)           { c.ID = id }
func setServiceID(s *models.Service, id int64)         { s.ID = id }
func setAppointmentID(a *models.Appointment, id int64) { a.ID = id }

type fakeAPI struct {
	clients      *fakeResource[models.Client]
	services     *fakeResource[models.Service]
	appointments *fakeResource[models.Appointment]

	HistoryRet  []models.Appointment
	HistoryErr  error
	InvoiceErr  error
	InvoiceCall int
	Invoices    []models.Invoice
}

var _ client.Client = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		clients:      newFakeResource(setClientID),
		services:     newFakeResource(setServiceID),
		appointments: newFakeResource(setAppointmentID),
	}
}

func (f *fakeAPI) Login(context.Context, string, string) error        { return nil }
func (f *fakeAPI) Logout(context.Context) error                       { return nil }
func (f *fakeAPI) UserInfo(context.Context) (*models.UserInfo, error) { return &models.UserInfo{}, nil }
func (f *fakeAPI) Clients() client.Resource[models.Client]            { return f.clients }
func (f *fakeAPI) Services() client.Resource[models.Service]          { return f.services }
func (f *fakeAPI) Appointments() client.Resource[models.Appointment]  { return f.appointments }
func (f *fakeAPI) SessionCookies() []*http.Cookie                     { return nil }
func (f *fakeAPI) RestoreSessionCookies([]*http.Cookie)               {}
func (f *fakeAPI) Close() error                                       { return nil }

func (f *fakeAPI) AppointmentsByClient(_ context.Context, clientID int64) ([]models.Appointment, error) {
	return f.HistoryRet, f.HistoryErr
}

func (f *fakeAPI) CreateInvoice(_ context.Context, inv models.Invoice) (models.Invoice, error) {
	f.InvoiceCall++
	if f.InvoiceErr != nil {
		return models.Invoice{}, f.InvoiceErr
	}
	inv.ID = int64(len(f.Invoices)) + 1
	f.Invoices = append(f.Invoices, inv)
	return inv, nil
}

func (f *fakeAPI) InvoicesByClient(_ context.Context, clientID int64) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range f.Invoices {
		if inv.ClientID == clientID {
			out = append(out, inv)
		}
	}
	return out, f.InvoiceErr
}

// fakeAuth implements services.AuthService.
type fakeAuth struct {
	LoginRet  services.LoginResult
	LoginErr  error
	LogoutErr error

	LoginCalls  int
	LogoutCalls int
	LastUser    string
	LastPass    string
}

var _ services.AuthService = (*fakeAuth)(nil)

func (f *fakeAuth) Login(_ context.Context, username, password string) (services.LoginResult, error) {
	f.LoginCalls++
	f.LastUser, f.LastPass = username, password
	return f.LoginRet, f.LoginErr
}

func (f *fakeAuth) Logout(context.Context) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeAuth) Restore(context.Context) (bool, error) { return false, nil }
func (f *fakeAuth) Close(context.Context) error           { return nil }
