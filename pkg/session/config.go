package session

// Config holds tunables for the session service.
type Config struct {
	// MaxUpdateAttempts bounds the optimistic-retry loop for a single
	// mutating operation. Exhaustion surfaces ErrContention.
	MaxUpdateAttempts int `env:"SESSION_MAX_UPDATE_ATTEMPTS" envDefault:"5"`

	// EventBufferSize is the per-subscriber buffer for the event bus
	// created by consumers of this package.
	EventBufferSize int `env:"SESSION_EVENT_BUFFER_SIZE" envDefault:"64"`
}

// DefaultConfig returns the defaults used when no Config is supplied.
func DefaultConfig() Config {
	return Config{
		MaxUpdateAttempts: 5,
		EventBufferSize:   64,
	}
}
