package broadcast

import (
	"context"
	"sync"
)

// MemoryBroadcaster fans messages out to in-process subscribers.
// A subscriber whose buffer is full is dropped instead of blocking the sender.
// All methods are safe for concurrent use.
type MemoryBroadcaster[T any] struct {
	subscribers map[*subscriber[T]]struct{}
	bufferSize  int
	closed      bool
	mu          sync.RWMutex
	cleanupWg   sync.WaitGroup
}

// NewMemoryBroadcaster creates a new in-memory broadcaster.
// bufferSize is the per-subscriber channel buffer; values below 1 are raised to 1.
func NewMemoryBroadcaster[T any](bufferSize int) *MemoryBroadcaster[T] {
	return &MemoryBroadcaster[T]{
		subscribers: make(map[*subscriber[T]]struct{}),
		bufferSize:  max(bufferSize, 1),
	}
}

// Subscribe registers a new subscriber. It is removed when ctx is cancelled.
// After Close, Subscribe returns an already-closed subscriber.
func (b *MemoryBroadcaster[T]) Subscribe(ctx context.Context) Subscriber[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := newSubscriber[T](b.bufferSize)
	if b.closed {
		_ = sub.Close()
		return sub
	}
	b.subscribers[sub] = struct{}{}

	if ctx.Done() != nil {
		b.cleanupWg.Add(1)
		go func() {
			defer b.cleanupWg.Done()
			select {
			case <-ctx.Done():
				b.unsubscribe(sub)
			case <-sub.done:
			}
		}()
	}

	return sub
}

// Broadcast sends msg to every active subscriber without blocking.
// Subscribers that cannot accept the message are dropped.
// It returns ErrClosed after Close.
func (b *MemoryBroadcaster[T]) Broadcast(_ context.Context, msg Message[T]) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrClosed
	}

	for sub := range b.subscribers {
		if !sub.send(msg) {
			go b.unsubscribe(sub)
		}
	}

	return nil
}

// Len returns the number of active subscribers.
func (b *MemoryBroadcaster[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close shuts down the broadcaster and closes all subscribers.
// It is safe to call Close multiple times.
func (b *MemoryBroadcaster[T]) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	for sub := range b.subscribers {
		_ = sub.Close()
	}
	clear(b.subscribers)
	b.mu.Unlock()

	b.cleanupWg.Wait()
	return nil
}

func (b *MemoryBroadcaster[T]) unsubscribe(sub *subscriber[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subscribers, sub)
	_ = sub.Close()
}
