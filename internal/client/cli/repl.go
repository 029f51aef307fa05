package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Retry(ctx context.Context) error

	ListClients(ctx context.Context) error
	AddClient(ctx context.Context) error
	EditClient(ctx context.Context, args []string) error
	DeleteClient(ctx context.Context, args []string) error

	ListServices(ctx context.Context) error
	AddService(ctx context.Context) error
	EditService(ctx context.Context, args []string) error
	DeleteService(ctx context.Context, args []string) error

	ListAppointments(ctx context.Context) error
	AddAppointment(ctx context.Context) error
	EditAppointment(ctx context.Context, args []string) error
	DeleteAppointment(ctx context.Context, args []string) error

	History(ctx context.Context, args []string) error
	Invoice(ctx context.Context, args []string) error
	Invoices(ctx context.Context, args []string) error
}

const (
	helpGuest = "Available commands: login, help, exit"
	helpUser  = "Available commands: whoami, services, add-service, edit-service <id>, " +
		"appointments, add-appointment, edit-appointment <id>, retry, logout, help, exit"
	helpAdmin = helpUser + "\nAdministrator: clients, add-client, edit-client <id>, delete-client <id>, " +
		"delete-service <id>, delete-appointment <id>, history <clientId>, invoice <clientId>, invoices <clientId>"
)

// runREPL starts a simple read–eval–print loop for the wellness CLI.
//
// It reads a line from reader, parses the first token as the command and the
// rest as its arguments, and dispatches to methods on 'a'. Commands prompt
// through the same reader, so reader must be the one the App reads from.
// The loop exits on EOF or when the user types "exit" or "quit".
// Commands other than login, help and exit need a signed-in user.
//
// Any errors returned by command handlers are ignored here; handlers print
// their own status lines. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("bienestar %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			switch {
			case a.isAdmin():
				printlnFn(helpAdmin)
			case a.isLoggedIn():
				printlnFn(helpUser)
			default:
				printlnFn(helpGuest)
			}
			continue

		case "login":
			_ = a.Login(ctx)
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			printlnFn("Please log in first (type 'login').")
			continue
		}

		switch cmd {
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "retry":
			_ = a.Retry(ctx)

		case "clients":
			_ = a.ListClients(ctx)
		case "add-client":
			_ = a.AddClient(ctx)
		case "edit-client":
			_ = a.EditClient(ctx, args)
		case "delete-client":
			_ = a.DeleteClient(ctx, args)

		case "services":
			_ = a.ListServices(ctx)
		case "add-service":
			_ = a.AddService(ctx)
		case "edit-service":
			_ = a.EditService(ctx, args)
		case "delete-service":
			_ = a.DeleteService(ctx, args)

		case "appointments":
			_ = a.ListAppointments(ctx)
		case "add-appointment":
			_ = a.AddAppointment(ctx)
		case "edit-appointment":
			_ = a.EditAppointment(ctx, args)
		case "delete-appointment":
			_ = a.DeleteAppointment(ctx, args)

		case "history":
			_ = a.History(ctx, args)
		case "invoice":
			_ = a.Invoice(ctx, args)
		case "invoices":
			_ = a.Invoices(ctx, args)

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
