// Package metadata is a small key/value table in the local sqlite database.
// The client keeps its persisted login state there.
package metadata

import (
	"context"
)

// Keys used by the auth service.
const (
	KeyAuthenticated = "session.authenticated"
	KeyUsername      = "session.username"
	KeyCookies       = "session.cookies"
)

// Repository stores opaque values by key. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
