package eventbus

import (
	"context"
	"sync"
	"sync/atomic"
)

// MemoryBus is an in-process Bus. Publishing never blocks: events that cannot
// be buffered for a subscriber are counted as dropped and delivery continues
// with the remaining subscribers. All methods are safe for concurrent use.
type MemoryBus[T any] struct {
	subs    map[*Subscription[T]]struct{}
	buffer  int
	closed  bool
	done    chan struct{}
	dropped atomic.Uint64
	mu      sync.RWMutex
	wg      sync.WaitGroup // context-cleanup goroutines
}

// NewMemoryBus creates an in-memory bus. The buffer parameter sets each
// subscription's channel capacity; a minimum of 1 is enforced so that
// publishing stays non-blocking.
func NewMemoryBus[T any](buffer int) *MemoryBus[T] {
	return &MemoryBus[T]{
		subs:   make(map[*Subscription[T]]struct{}),
		buffer: max(buffer, 1),
		done:   make(chan struct{}),
	}
}

// Subscribe registers a new subscription. If the bus is already closed, the
// returned subscription is closed as well.
func (b *MemoryBus[T]) Subscribe(ctx context.Context) *Subscription[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := newSubscription[T](b.buffer)
	if b.closed {
		_ = sub.Close()
		return sub
	}
	b.subs[sub] = struct{}{}

	if ctx.Done() != nil {
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			select {
			case <-ctx.Done():
				b.unsubscribe(sub)
			case <-b.done:
				// Bus shutdown already closed every subscription.
			}
		}()
	}

	return sub
}

// Publish delivers the event to every active subscription without blocking.
// Returns ErrBusClosed after Close; otherwise always nil, even when some
// subscribers missed the event.
func (b *MemoryBus[T]) Publish(ctx context.Context, event T) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	for sub := range b.subs {
		if !sub.send(event) {
			b.dropped.Add(1)
		}
	}
	return nil
}

// Dropped returns the number of events dropped because a subscriber's buffer
// was full or a subscription was concurrently closed.
func (b *MemoryBus[T]) Dropped() uint64 {
	return b.dropped.Load()
}

// Close shuts down the bus and all subscriptions. Idempotent.
func (b *MemoryBus[T]) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.done)
	for sub := range b.subs {
		_ = sub.Close()
	}
	clear(b.subs)
	b.mu.Unlock()

	// The done channel releases cleanup goroutines whose subscriber contexts
	// are still live, so this wait cannot block on an uncancelled context.
	b.wg.Wait()
	return nil
}

func (b *MemoryBus[T]) unsubscribe(sub *Subscription[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subs, sub)
	_ = sub.Close()
}
