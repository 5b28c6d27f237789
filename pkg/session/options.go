package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/sportkit/pkg/eventbus"
)

// Option configures a Service during construction.
type Option func(*Service)

// WithStore sets the persistence backend. Defaults to an in-memory store.
func WithStore(store Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithBus sets the event bus for domain-event publication. Without a bus,
// events are silently discarded.
func WithBus(bus eventbus.Bus[Event]) Option {
	return func(s *Service) {
		s.bus = bus
	}
}

// WithClock injects the time source. Tests use this to evaluate joinability
// and derived status at arbitrary instants deterministically.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIDGenerator injects the session id generator. Defaults to UUIDv4.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithLogger sets the logger used for non-fatal warnings.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithConfig applies service tunables.
func WithConfig(cfg Config) Option {
	return func(s *Service) {
		if cfg.MaxUpdateAttempts > 0 {
			s.maxAttempts = cfg.MaxUpdateAttempts
		}
	}
}
