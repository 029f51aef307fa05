package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/bienestar/internal/client/client"
	"github.com/dmitrijs2005/bienestar/internal/client/models"
	"github.com/dmitrijs2005/bienestar/internal/client/validation"
)

const (
	msgClientUnavailable  = "selected client is not available"
	msgServiceUnavailable = "selected service is not available"
)

// Appointments is the appointment CRUD view-model plus the client and
// service lists the form picks from.
type Appointments struct {
	*CRUD[models.Appointment, *AppointmentForm]

	api client.Client

	lookupMu sync.RWMutex
	clients  []models.Client
	services []models.Service
	loaded   bool
}

// NewAppointments builds the view-model and loads the pickers once. A failed
// lookup leaves them empty; LoadLookups can be called again later.
func NewAppointments(ctx context.Context, api client.Client, opts ...Option) *Appointments {
	a := &Appointments{api: api}
	form := NewAppointmentForm()
	form.knownClient = a.hasClient
	form.knownService = a.hasService
	a.CRUD = NewCRUD(api.Appointments(), form, a.checkDraft, "appointment", "appointments", opts...)
	_ = a.LoadLookups(ctx)
	return a
}

// LoadLookups fetches the clients and services shown in the pickers, in
// parallel. A list that fails keeps its previous contents.
func (a *Appointments) LoadLookups(ctx context.Context) error {
	var (
		clients    []models.Client
		services   []models.Service
		cerr, serr error
	)
	var g errgroup.Group
	g.Go(func() error {
		clients, cerr = a.api.Clients().List(ctx)
		return nil
	})
	g.Go(func() error {
		services, serr = a.api.Services().List(ctx)
		return nil
	})
	_ = g.Wait()

	a.lookupMu.Lock()
	if cerr == nil {
		a.clients = clients
	}
	if serr == nil {
		a.services = services
	}
	a.loaded = cerr == nil && serr == nil
	a.lookupMu.Unlock()
	a.changes.notify()

	if err := errors.Join(cerr, serr); err != nil {
		a.log.Warn(ctx, "lookup load failed", "err", err)
		return failed(err)
	}
	return nil
}

// LookupsLoaded reports whether both pickers were loaded successfully.
func (a *Appointments) LookupsLoaded() bool {
	a.lookupMu.RLock()
	defer a.lookupMu.RUnlock()
	return a.loaded
}

func (a *Appointments) Clients() []models.Client {
	a.lookupMu.RLock()
	defer a.lookupMu.RUnlock()
	return append([]models.Client(nil), a.clients...)
}

func (a *Appointments) Services() []models.Service {
	a.lookupMu.RLock()
	defer a.lookupMu.RUnlock()
	return append([]models.Service(nil), a.services...)
}

// SelectClient picks the form's client. An id that is not in the loaded
// list is kept but flagged.
func (a *Appointments) SelectClient(id int64) {
	a.UpdateForm(func(f *AppointmentForm) { f.SelectClient(id) })
}

func (a *Appointments) SelectService(id int64) {
	a.UpdateForm(func(f *AppointmentForm) { f.SelectService(id) })
}

// ClientName renders a client id for display.
func (a *Appointments) ClientName(id int64) string {
	if c, ok := a.client(id); ok {
		return c.Name
	}
	return "client #" + strconv.FormatInt(id, 10)
}

func (a *Appointments) ServiceName(id int64) string {
	if s, ok := a.service(id); ok {
		return s.Name
	}
	return "service #" + strconv.FormatInt(id, 10)
}

// Describe renders an appointment as one line, preferring the names the
// backend embedded in the record.
func (a *Appointments) Describe(ap models.Appointment) string {
	clientName := a.ClientName(ap.ClientID)
	if ap.ClientName != nil && *ap.ClientName != "" {
		clientName = *ap.ClientName
	}
	serviceName := a.ServiceName(ap.ServiceID)
	if ap.ServiceName != nil && *ap.ServiceName != "" {
		serviceName = *ap.ServiceName
	}
	return fmt.Sprintf("%s %s  %s - %s  [%s]", ap.Date, ap.Time, clientName, serviceName, ap.Status.Label())
}

// History returns every appointment of one client.
func (a *Appointments) History(ctx context.Context, clientID int64) ([]models.Appointment, error) {
	items, err := a.api.AppointmentsByClient(ctx, clientID)
	if err != nil {
		a.log.Warn(ctx, "history fetch failed", "client_id", clientID, "err", err)
		return nil, failed(err)
	}
	return items, nil
}

// checkDraft checks a draft against the appointment rules and the loaded
// pickers, so a direct Create or Update cannot reference an unknown id.
func (a *Appointments) checkDraft(ap models.Appointment) *validation.Validator {
	v := validation.ValidateAppointment(ap)
	if ap.ClientID != 0 && !a.hasClient(ap.ClientID) {
		v.Check(validation.FieldClient, msgClientUnavailable)
	}
	if ap.ServiceID != 0 && !a.hasService(ap.ServiceID) {
		v.Check(validation.FieldService, msgServiceUnavailable)
	}
	return v
}

func (a *Appointments) hasClient(id int64) bool {
	_, ok := a.client(id)
	return ok
}

func (a *Appointments) hasService(id int64) bool {
	_, ok := a.service(id)
	return ok
}

func (a *Appointments) client(id int64) (models.Client, bool) {
	a.lookupMu.RLock()
	defer a.lookupMu.RUnlock()
	for _, c := range a.clients {
		if c.ID == id {
			return c, true
		}
	}
	return models.Client{}, false
}

func (a *Appointments) service(id int64) (models.Service, bool) {
	a.lookupMu.RLock()
	defer a.lookupMu.RUnlock()
	for _, s := range a.services {
		if s.ID == id {
			return s, true
		}
	}
	return models.Service{}, false
}
