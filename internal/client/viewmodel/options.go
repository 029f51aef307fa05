package viewmodel

import (
	"time"

	"github.com/dmitrijs2005/bienestar/internal/logging"
)

type settings struct {
	log       logging.Logger
	statusTTL time.Duration
}

type Option func(*settings)

func WithLogger(l logging.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// WithStatusTTL clears success messages after d. Zero keeps them until
// ClearStatus or the next operation.
func WithStatusTTL(d time.Duration) Option {
	return func(s *settings) { s.statusTTL = d }
}

func newSettings(opts []Option) settings {
	s := settings{log: logging.Discard()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
