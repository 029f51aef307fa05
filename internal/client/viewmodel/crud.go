package viewmodel

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/bienestar/internal/client/client"
	"github.com/dmitrijs2005/bienestar/internal/client/models"
	"github.com/dmitrijs2005/bienestar/internal/client/validation"
	"github.com/dmitrijs2005/bienestar/internal/logging"
)

// Snapshot is a consistent copy of a CRUD view-model.
type Snapshot[T any] struct {
	State   State[T]
	Editing bool
	// Current is the item being edited; zero unless Editing.
	Current T
	Busy    bool
	Status  string
}

// CRUD is the list-and-form view-model shared by clients, services and
// appointments. The list is always refetched wholesale after a successful
// mutation; the form draft only becomes a list item through the server.
type CRUD[T models.Entity, F Form[T]] struct {
	res      client.Resource[T]
	form     F
	validate func(T) *validation.Validator
	noun     string
	plural   string
	log      logging.Logger
	ttl      time.Duration

	changes listeners

	mu        sync.Mutex
	state     State[T]
	editing   bool
	current   T
	busy      bool
	status    string
	statusGen uint64
	fetchSeq  uint64
}

// NewCRUD builds a view-model over res. noun and plural name the entity
// in status messages ("client", "clients").
func NewCRUD[T models.Entity, F Form[T]](
	res client.Resource[T],
	form F,
	validate func(T) *validation.Validator,
	noun, plural string,
	opts ...Option,
) *CRUD[T, F] {
	s := newSettings(opts)
	return &CRUD[T, F]{
		res:      res,
		form:     form,
		validate: validate,
		noun:     noun,
		plural:   plural,
		log:      s.log.With("resource", plural),
		ttl:      s.statusTTL,
		state:    Loading[T](),
	}
}

func NewClients(api client.Client, opts ...Option) *CRUD[models.Client, *ClientForm] {
	return NewCRUD(api.Clients(), NewClientForm(), validation.ValidateClient, "client", "clients", opts...)
}

func NewServices(api client.Client, opts ...Option) *CRUD[models.Service, *ServiceForm] {
	return NewCRUD(api.Services(), NewServiceForm(), validation.ValidateService, "service", "services", opts...)
}

// OnChange registers fn to run after every state change and returns a
// function that unregisters it. fn runs without any view-model lock held.
func (c *CRUD[T, F]) OnChange(fn func()) (cancel func()) {
	return c.changes.add(fn)
}

func (c *CRUD[T, F]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot[T]{
		State:   c.state.clone(),
		Editing: c.editing,
		Current: c.current,
		Busy:    c.busy,
		Status:  c.status,
	}
}

// UpdateForm runs fn with exclusive access to the form and notifies listeners.
func (c *CRUD[T, F]) UpdateForm(fn func(F)) {
	c.mu.Lock()
	fn(c.form)
	c.mu.Unlock()
	c.changes.notify()
}

// ViewForm runs fn with exclusive access to the form without notifying.
func (c *CRUD[T, F]) ViewForm(fn func(F)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.form)
}

// FetchList moves to Loading, fetches the full list and settles on Success
// or Error. When fetches overlap only the latest one is applied.
func (c *CRUD[T, F]) FetchList(ctx context.Context) error {
	c.mu.Lock()
	c.fetchSeq++
	seq := c.fetchSeq
	c.state = Loading[T]()
	c.mu.Unlock()
	c.changes.notify()

	items, err := c.res.List(ctx)

	c.mu.Lock()
	if seq != c.fetchSeq {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.state = Failure[T]("error loading " + c.plural + ": " + userMessage(err))
	} else {
		c.state = Success(items)
	}
	c.mu.Unlock()
	c.changes.notify()

	if err != nil {
		c.log.Warn(ctx, "list fetch failed", "err", err)
		return failed(err)
	}
	c.log.Debug(ctx, "list fetched", "count", len(items))
	return nil
}

// Retry is FetchList, for the error screen's retry action.
func (c *CRUD[T, F]) Retry(ctx context.Context) error {
	return c.FetchList(ctx)
}

// StartEditing loads item into the form and switches Save to update mode.
func (c *CRUD[T, F]) StartEditing(item T) {
	c.mu.Lock()
	c.current = item
	c.editing = true
	c.form.Load(item)
	c.mu.Unlock()
	c.changes.notify()
}

// CancelEditing leaves edit mode, clears the form and the status.
func (c *CRUD[T, F]) CancelEditing() {
	c.mu.Lock()
	c.stopEditingLocked()
	c.setStatusLocked("", false)
	c.mu.Unlock()
	c.changes.notify()
}

// ClearForm resets the form fields and errors only.
func (c *CRUD[T, F]) ClearForm() {
	c.mu.Lock()
	c.form.Reset()
	c.mu.Unlock()
	c.changes.notify()
}

func (c *CRUD[T, F]) ClearStatus() {
	c.mu.Lock()
	c.setStatusLocked("", false)
	c.mu.Unlock()
	c.changes.notify()
}

// Save submits the form: an update of the edited item in edit mode,
// otherwise a create.
func (c *CRUD[T, F]) Save(ctx context.Context, onSuccess func()) error {
	c.mu.Lock()
	v := c.form.Validate()
	draft := c.form.Draft()
	editing := c.editing
	id := c.current.EntityID()
	if v.HasErrors() {
		c.setStatusLocked("✗ invalid "+c.noun+": "+v.Errors()[0].Message, false)
	}
	c.mu.Unlock()

	if v.HasErrors() {
		c.changes.notify()
		return invalid(v)
	}
	if editing {
		return c.Update(ctx, id, draft, onSuccess)
	}
	return c.Create(ctx, draft, onSuccess)
}

// Create validates draft and posts it. On success the form is cleared,
// edit mode is left, the list is refetched and onSuccess runs.
func (c *CRUD[T, F]) Create(ctx context.Context, draft T, onSuccess func()) error {
	if err := c.check(draft); err != nil {
		return err
	}
	return c.mutate(ctx, mutation{
		pending: "saving...",
		success: "✓ " + c.noun + " created successfully",
		failure: "✗ error creating " + c.noun,
		call: func(ctx context.Context) error {
			_, err := c.res.Create(ctx, draft)
			return err
		},
		resetForm: true,
		onSuccess: onSuccess,
	})
}

func (c *CRUD[T, F]) Update(ctx context.Context, id int64, draft T, onSuccess func()) error {
	if err := c.check(draft); err != nil {
		return err
	}
	return c.mutate(ctx, mutation{
		pending: "updating...",
		success: "✓ " + c.noun + " updated successfully",
		failure: "✗ error updating " + c.noun,
		call: func(ctx context.Context) error {
			_, err := c.res.Update(ctx, id, draft)
			return err
		},
		resetForm: true,
		onSuccess: onSuccess,
	})
}

// Delete removes the item and refetches. If the item was being edited,
// edit mode is left as well.
func (c *CRUD[T, F]) Delete(ctx context.Context, id int64) error {
	return c.mutate(ctx, mutation{
		pending: "deleting...",
		success: "✓ " + c.noun + " deleted successfully",
		failure: "✗ error deleting " + c.noun,
		call: func(ctx context.Context) error {
			return c.res.Delete(ctx, id)
		},
		after: func() {
			if c.editing && c.current.EntityID() == id {
				c.stopEditingLocked()
			}
		},
	})
}

type mutation struct {
	pending, success, failure string
	call                      func(ctx context.Context) error
	resetForm                 bool
	// after runs under the lock once call succeeded.
	after     func()
	onSuccess func()
}

func (c *CRUD[T, F]) mutate(ctx context.Context, m mutation) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	c.setStatusLocked(m.pending, false)
	c.mu.Unlock()
	c.changes.notify()

	err := m.call(ctx)

	c.mu.Lock()
	c.busy = false
	if err != nil {
		c.setStatusLocked(m.failure+": "+userMessage(err), false)
		c.mu.Unlock()
		c.changes.notify()
		c.log.Warn(ctx, m.failure, "err", err)
		return failed(err)
	}
	c.setStatusLocked(m.success, true)
	if m.resetForm {
		c.stopEditingLocked()
	}
	if m.after != nil {
		m.after()
	}
	c.mu.Unlock()
	c.changes.notify()

	// A failed refetch shows up in State; the mutation itself succeeded.
	_ = c.FetchList(ctx)

	if m.onSuccess != nil {
		m.onSuccess()
	}
	return nil
}

func (c *CRUD[T, F]) check(draft T) error {
	v := c.validate(draft)
	if !v.HasErrors() {
		return nil
	}
	c.mu.Lock()
	c.setStatusLocked("✗ invalid "+c.noun+": "+v.Errors()[0].Message, false)
	c.mu.Unlock()
	c.changes.notify()
	return invalid(v)
}

func (c *CRUD[T, F]) stopEditingLocked() {
	var zero T
	c.current = zero
	c.editing = false
	c.form.Reset()
}

// setStatusLocked replaces the status. Transient messages are cleared after
// the configured TTL unless something else replaced them first.
func (c *CRUD[T, F]) setStatusLocked(msg string, transient bool) {
	c.status = msg
	c.statusGen++
	if !transient || c.ttl <= 0 {
		return
	}
	gen := c.statusGen
	time.AfterFunc(c.ttl, func() {
		c.mu.Lock()
		if c.statusGen != gen {
			c.mu.Unlock()
			return
		}
		c.status = ""
		c.statusGen++
		c.mu.Unlock()
		c.changes.notify()
	})
}
