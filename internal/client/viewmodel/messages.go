package viewmodel

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bienestar/internal/client/client"
	"github.com/dmitrijs2005/bienestar/internal/client/validation"
)

var (
	// ErrBusy is returned when a mutation is requested while another one
	// is still in flight. The request never reaches the network.
	ErrBusy = errors.New("another operation is in progress")

	// ErrInvalidDraft is returned when the draft fails validation.
	ErrInvalidDraft = errors.New("invalid draft")

	// ErrOperationFailed wraps a failed network call; the user-facing text
	// is in the view-model status.
	ErrOperationFailed = errors.New("operation failed")
)

const (
	loginLoading     = "loading..."
	loginSuccess     = "login successful!"
	loginBadPassword = "incorrect username or password"
	loginNoNetwork   = "connection error: could not reach the server"
)

// userMessage is the short explanation shown after a failed call.
func userMessage(err error) string {
	var he *client.HTTPError
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return "session expired, please log in again"
	case errors.As(err, &he):
		if he.Status != "" {
			return "server responded with " + he.Status
		}
		return fmt.Sprintf("server responded with %d", he.StatusCode)
	case errors.Is(err, client.ErrUnavailable):
		return "could not reach the server"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	default:
		return err.Error()
	}
}

func failed(err error) error {
	return fmt.Errorf("%w: %w", ErrOperationFailed, err)
}

func invalid(v *validation.Validator) error {
	return fmt.Errorf("%w: %w", ErrInvalidDraft, v.Err())
}
