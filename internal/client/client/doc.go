// Package client is the HTTP side of the wellness management client.
//
// Client is the API contract used by the services and view-models; HTTPClient
// implements it over net/http with a cookie jar that carries the session
// cookie issued by /login. Clients, services and appointments share one
// generic Resource implementation parameterised by the collection path.
//
// # Error Handling
//
// Transport failures (dial errors, timeouts) are reported as ErrUnavailable.
// Any non-2xx response is an *HTTPError; 401 and 403 also match
// ErrUnauthorized and 404 matches ErrNotFound under errors.Is.
//
// The package also bootstraps the local sqlite database (InitDatabase,
// RunMigrations) used to remember the login between runs.
package client
