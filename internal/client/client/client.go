package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/bienestar/internal/client/models"
)

// Client is the backend API as seen by the services and view-models.
type Client interface {
	// Login submits the credentials as a form. A nil error means the
	// backend accepted them and a session cookie is now held by the client.
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	UserInfo(ctx context.Context) (*models.UserInfo, error)

	Clients() Resource[models.Client]
	Services() Resource[models.Service]
	Appointments() Resource[models.Appointment]

	AppointmentsByClient(ctx context.Context, clientID int64) ([]models.Appointment, error)
	CreateInvoice(ctx context.Context, invoice models.Invoice) (models.Invoice, error)
	InvoicesByClient(ctx context.Context, clientID int64) ([]models.Invoice, error)

	// SessionCookies exports the cookies currently held for the backend so
	// they can be persisted; RestoreSessionCookies puts them back.
	SessionCookies() []*http.Cookie
	RestoreSessionCookies(cookies []*http.Cookie)

	Close() error
}

// Resource is the CRUD surface shared by clients, services and appointments.
type Resource[T models.Entity] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id int64, item T) (T, error)
	Delete(ctx context.Context, id int64) error
}
