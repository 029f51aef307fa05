// Package models defines the records exchanged with the wellness backend.
//
// The server is the source of truth; the client only keeps cached copies.
// JSON names follow the backend contract, which is why they are Spanish.
package models

// Entity is implemented by every record that has a server-assigned id.
// An id of 0 means the record has not been saved yet.
type Entity interface {
	EntityID() int64
}

// Client is a customer of the business.
type Client struct {
	ID      int64  `json:"id"`
	Name    string `json:"nombre"`
	Email   string `json:"email"`
	Phone   string `json:"telefono"`
	Address string `json:"direccion"`
}

func (c Client) EntityID() int64 { return c.ID }

// Service is something the business sells; Duration is in minutes.
type Service struct {
	ID          int64   `json:"id"`
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"precio"`
	Duration    int     `json:"duracion"`
}

func (s Service) EntityID() int64 { return s.ID }

// Appointment books a Service for a Client. Date is "YYYY-MM-DD" and Time
// is "HH:MM", both kept as strings exactly as the backend sends them.
type Appointment struct {
	ID        int64             `json:"id"`
	ClientID  int64             `json:"clienteId"`
	ServiceID int64             `json:"servicioId"`
	Date      string            `json:"fecha"`
	Time      string            `json:"hora"`
	Status    AppointmentStatus `json:"estado"`
	Notes     string            `json:"notas,omitempty"`

	// Filled in by the backend on reads, ignored on writes.
	ClientName  *string `json:"clienteNombre,omitempty"`
	ServiceName *string `json:"servicioNombre,omitempty"`
}

func (a Appointment) EntityID() int64 { return a.ID }

// Invoice bills a client, optionally for a specific appointment.
type Invoice struct {
	ID            int64   `json:"id"`
	ClientID      int64   `json:"clienteId"`
	AppointmentID int64   `json:"citaId,omitempty"`
	Total         float64 `json:"total"`
	Date          string  `json:"fecha"`
}

func (i Invoice) EntityID() int64 { return i.ID }

// UserInfo is the body of GET /api/auth/user-info. Role is free text such as
// "ROLE_ADMIN" or "ROLE_CLIENT".
type UserInfo struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Message  string `json:"message,omitempty"`
}
