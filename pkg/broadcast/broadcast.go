package broadcast

import (
	"context"
	"sync"
)

// Message wraps data of type T for type-safe broadcasting.
type Message[T any] struct {
	Data T
}

// Subscriber receives messages from a Broadcaster.
// Implementations must be safe for concurrent use.
type Subscriber[T any] interface {
	// Receive returns a channel for receiving broadcast messages.
	// The channel is closed once the subscriber is closed.
	Receive(ctx context.Context) <-chan Message[T]

	// Close closes the subscriber and releases resources.
	// Close is idempotent and safe to call multiple times.
	Close() error
}

// Broadcaster sends messages to multiple subscribers.
// Slow consumers lose messages rather than block the sender.
type Broadcaster[T any] interface {
	// Subscribe creates a new subscriber that will receive all subsequent
	// messages. The subscription ends when ctx is cancelled.
	Subscribe(ctx context.Context) Subscriber[T]

	// Broadcast sends a message to all active subscribers.
	Broadcast(ctx context.Context, msg Message[T]) error

	// Close shuts down the broadcaster and closes all subscribers.
	Close() error
}

type subscriber[T any] struct {
	ch     chan Message[T]
	done   chan struct{}
	closed bool
	mu     sync.RWMutex
}

func newSubscriber[T any](bufferSize int) *subscriber[T] {
	return &subscriber[T]{
		ch:   make(chan Message[T], bufferSize),
		done: make(chan struct{}),
	}
}

func (s *subscriber[T]) Receive(_ context.Context) <-chan Message[T] {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		close(s.done)
		s.closed = true
	}
	return nil
}

// send delivers msg without blocking. It reports false when the subscriber
// is closed or its buffer is full.
func (s *subscriber[T]) send(msg Message[T]) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- msg:
		return true
	default:
		return false
	}
}
