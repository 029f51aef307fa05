// Package devserver is an in-memory stand-in for the wellness backend.
//
// It speaks the same REST contract as the production service: form login at
// /login that sets a JSESSIONID cookie, /api/auth/user-info, CRUD under
// /api/clientes, /api/servicios and /api/citas, appointment history and
// invoices. Data lives in memory and is lost on restart.
package devserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/bienestar/internal/client/models"
	"github.com/dmitrijs2005/bienestar/internal/client/validation"
	"github.com/dmitrijs2005/bienestar/internal/logging"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	addr   string
	secret []byte
	ttl    time.Duration
	log    logging.Logger
	users  *Users

	clients      *Table[models.Client]
	services     *Table[models.Service]
	appointments *Table[models.Appointment]
	invoices     *Table[models.Invoice]
}

// NewServer builds a server with the demo accounts seeded.
func NewServer(cfg *Config, log logging.Logger) (*Server, error) {
	users, err := NewUsers(bcrypt.DefaultCost, DefaultSeeds()...)
	if err != nil {
		return nil, err
	}
	return newServer(cfg, log, users), nil
}

func newServer(cfg *Config, log logging.Logger, users *Users) *Server {
	return &Server{
		addr:         cfg.Addr,
		secret:       []byte(cfg.JWTSecret),
		ttl:          cfg.TokenTTL,
		log:          log.With("module", "devserver"),
		users:        users,
		clients:      NewTable(func(c *models.Client, id int64) { c.ID = id }),
		services:     NewTable(func(s *models.Service, id int64) { s.ID = id }),
		appointments: NewTable(func(a *models.Appointment, id int64) { a.ID = id }),
		invoices:     NewTable(func(i *models.Invoice, id int64) { i.ID = id }),
	}
}

// Router returns the gin engine serving every route.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.POST("/login", s.login)
	r.POST("/logout", s.logout)

	api := r.Group("/api", s.requireSession())
	api.GET("/auth/user-info", s.userInfo)

	resource[models.Client]{table: s.clients, validate: validation.ValidateClient}.register(api, "/clientes")
	resource[models.Service]{table: s.services, validate: validation.ValidateService}.register(api, "/servicios")
	resource[models.Appointment]{
		table:    s.appointments,
		validate: s.validateAppointment,
		decorate: s.withNames,
	}.register(api, "/citas")
	api.GET("/citas/cliente/:clienteId", s.appointmentsByClient)

	api.POST("/facturas", s.createInvoice)
	api.GET("/facturas/cliente/:clienteId", s.invoicesByClient)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "Starting dev server", "address", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info(ctx, "Stopping dev server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
