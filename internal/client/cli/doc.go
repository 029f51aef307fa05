// Package cli provides the interactive command-line client for the wellness
// backend.
//
// It wires configuration, the local sqlite store, the HTTP API client, the
// auth service and the view-models, then runs a REPL over them. A login
// persisted by a previous run is restored on start.
//
// Key features:
//   - Login / Logout / whoami
//   - List, add, edit and delete clients, services and appointments
//   - Appointment history and invoices per client
//   - Retry of the last failed list
//
// Clients, history, invoices and every delete are for administrators only.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
