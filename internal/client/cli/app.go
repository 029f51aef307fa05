package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/bienestar/internal/client/client"
	"github.com/dmitrijs2005/bienestar/internal/client/config"
	"github.com/dmitrijs2005/bienestar/internal/client/models"
	"github.com/dmitrijs2005/bienestar/internal/client/services"
	"github.com/dmitrijs2005/bienestar/internal/client/session"
	"github.com/dmitrijs2005/bienestar/internal/client/viewmodel"
	"github.com/dmitrijs2005/bienestar/internal/logging"
)

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB
	api    client.Client
	store  *session.Store
	auth   services.AuthService

	login      *viewmodel.Login
	home       *viewmodel.Home
	clientsVM  *viewmodel.CRUD[models.Client, *viewmodel.ClientForm]
	servicesVM *viewmodel.CRUD[models.Service, *viewmodel.ServiceForm]
	apptVM     *viewmodel.Appointments
	invoices   *viewmodel.Invoices
	vmOpts     []viewmodel.Option

	reader *bufio.Reader
	out    io.Writer

	// lastList re-runs the most recent list command for "retry".
	lastList func(ctx context.Context) error
}

// NewApp opens the local database (unless disabled), builds the API client
// and wires every view-model.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	var db *sql.DB
	if c.DatabaseDSN != "" {
		var err error
		db, err = client.InitDatabase(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
	}

	api, err := client.NewHTTPClient(c.BaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithRetries(c.Retries, 0),
		client.WithLogger(log.With("component", "api")))
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	store := session.NewStore()
	auth := services.NewAuthService(api, store, db, log.With("component", "auth"))

	a := newApp(api, auth, store, bufio.NewReader(os.Stdin), os.Stdout, log)
	a.config = c
	a.db = db
	return a, nil
}

func newApp(api client.Client, auth services.AuthService, store *session.Store, reader *bufio.Reader, out io.Writer, log logging.Logger) *App {
	opts := []viewmodel.Option{viewmodel.WithLogger(log)}
	return &App{
		log:        log,
		api:        api,
		store:      store,
		auth:       auth,
		login:      viewmodel.NewLogin(auth, opts...),
		home:       viewmodel.NewHome(api, auth, store, opts...),
		clientsVM:  viewmodel.NewClients(api, opts...),
		servicesVM: viewmodel.NewServices(api, opts...),
		invoices:   viewmodel.NewInvoices(api, opts...),
		vmOpts:     opts,
		reader:     reader,
		out:        out,
	}
}

// Run restores a persisted login if there is one and runs the REPL until
// the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	fmt.Fprintln(a.out, "Bienestar CLI (type 'help' for commands)")

	ok, err := a.auth.Restore(ctx)
	switch {
	case err != nil:
		a.log.Warn(ctx, "session restore failed", "err", err)
	case ok:
		a.showHome(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close(ctx context.Context) {
	if err := a.auth.Close(ctx); err != nil {
		a.log.Warn(ctx, "close api client", "err", err)
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.IsLoggedIn()
}

func (a *App) isAdmin() bool {
	return a.store.HasAdminPermissions()
}

func (a *App) getStatus() string {
	s := a.store.Snapshot()
	if !s.Authenticated {
		return ""
	}
	return fmt.Sprintf("(%s %s)", s.Username, s.Role.DisplayName())
}

// appointments builds the appointment view-model on first use, after
// login, so its client and service pickers load with a valid session.
func (a *App) appointments(ctx context.Context) *viewmodel.Appointments {
	if a.apptVM == nil {
		a.apptVM = viewmodel.NewAppointments(ctx, a.api, a.vmOpts...)
	}
	return a.apptVM
}

func (a *App) requireAdmin() bool {
	if a.isAdmin() {
		return true
	}
	fmt.Fprintln(a.out, "✗ this command is for administrators only")
	return false
}
