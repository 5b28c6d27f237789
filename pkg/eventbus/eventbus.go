package eventbus

import (
	"context"
	"sync"
)

// Bus publishes typed events to multiple subscribers.
// Implementations must handle slow consumers gracefully, typically by
// dropping events rather than blocking the publisher.
type Bus[T any] interface {
	// Publish sends an event to all active subscribers. Delivery is best
	// effort: events may be dropped for subscribers whose buffers are full.
	Publish(ctx context.Context, event T) error

	// Subscribe creates a new subscription receiving all subsequent events.
	// The subscription is cleaned up when the context is cancelled.
	Subscribe(ctx context.Context) *Subscription[T]

	// Close shuts down the bus and closes all subscriptions.
	Close() error
}

// Subscription receives events from a Bus. Safe for concurrent use.
type Subscription[T any] struct {
	ch     chan T
	closed bool
	mu     sync.Mutex
}

func newSubscription[T any](buffer int) *Subscription[T] {
	return &Subscription[T]{
		ch: make(chan T, buffer),
	}
}

// C returns the channel events are delivered on. The channel is closed when
// the subscription or its bus is closed.
func (s *Subscription[T]) C() <-chan T {
	return s.ch
}

// Close closes the subscription. Idempotent.
func (s *Subscription[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

// send delivers without blocking; reports whether the event was accepted.
func (s *Subscription[T]) send(event T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	select {
	case s.ch <- event:
		return true
	default:
		return false
	}
}
