package authstate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vertextrade/storefront/pkg/backend"
	"github.com/vertextrade/storefront/pkg/broadcast"
	"github.com/vertextrade/storefront/pkg/logger"
)

// AuthClient is the slice of the backend client the store depends on.
type AuthClient interface {
	GetSession(ctx context.Context) (*backend.Session, error)
	OnAuthStateChange(fn backend.AuthListener) func()
}

// Change is what subscribers receive after every update of the cell.
type Change struct {
	Event   backend.AuthEvent
	Session *backend.Session
}

// SignedIn reports whether the change leaves a session in place.
func (c Change) SignedIn() bool { return c.Session != nil }

type state int

const (
	stateIdle state = iota
	stateRunning
	stateClosed
)

// Store is the process-wide session cell. It follows the backend client's
// change notifications and rebroadcasts each update to subscribers.
type Store struct {
	client       AuthClient
	log          *slog.Logger
	bus          *broadcast.MemoryBroadcaster[Change]
	fetchTimeout time.Duration

	// life serializes Start and Close.
	life        sync.Mutex
	unsubscribe func()
	cancelFetch context.CancelFunc
	fetches     sync.WaitGroup

	// pub keeps cell writes and their broadcasts in the same order.
	pub     sync.Mutex
	mu      sync.RWMutex
	state   state
	session *backend.Session

	ready     chan struct{}
	readyOnce sync.Once
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithBufferSize sets the per-subscriber buffer. Subscribers that fall this
// far behind are dropped.
func WithBufferSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.bus = broadcast.NewMemoryBroadcaster[Change](n)
		}
	}
}

// WithFetchTimeout bounds the initial session fetch. Zero means no bound.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Store) { s.fetchTimeout = d }
}

// New returns an idle store with an absent session.
func New(client AuthClient, opts ...Option) *Store {
	s := &Store{
		client: client,
		log:    logger.Discard(),
		ready:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bus == nil {
		s.bus = broadcast.NewMemoryBroadcaster[Change](16)
	}
	s.log = s.log.With(logger.Component("authstate"))
	return s
}

// Start registers the single change listener and launches the initial
// session fetch. It returns without waiting for the fetch.
func (s *Store) Start(ctx context.Context) error {
	s.life.Lock()
	defer s.life.Unlock()

	s.mu.Lock()
	switch s.state {
	case stateRunning:
		s.mu.Unlock()
		return ErrAlreadyStarted
	case stateClosed:
		s.mu.Unlock()
		return ErrClosed
	}
	s.state = stateRunning
	s.mu.Unlock()

	s.unsubscribe = s.client.OnAuthStateChange(s.onChange)

	var fetchCtx context.Context
	base := context.WithoutCancel(ctx)
	if s.fetchTimeout > 0 {
		fetchCtx, s.cancelFetch = context.WithTimeout(base, s.fetchTimeout)
	} else {
		fetchCtx, s.cancelFetch = context.WithCancel(base)
	}

	s.fetches.Add(1)
	go s.fetch(fetchCtx)
	return nil
}

func (s *Store) fetch(ctx context.Context) {
	defer s.fetches.Done()
	defer s.markReady()

	session, err := s.client.GetSession(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "initial session fetch failed", logger.Error(err))
		return
	}
	if !s.apply(backend.EventInitialSession, session) {
		s.log.DebugContext(ctx, "discarding session fetched after close")
	}
}

func (s *Store) onChange(event backend.AuthEvent, session *backend.Session) {
	if !s.apply(event, session) {
		s.log.Debug("ignoring change after close", logger.AuthEvent(string(event)))
	}
}

// apply replaces the cell and broadcasts the change. It reports false when
// the store is not running and the value was dropped.
func (s *Store) apply(event backend.AuthEvent, session *backend.Session) bool {
	s.pub.Lock()
	defer s.pub.Unlock()

	s.mu.Lock()
	if s.state != stateRunning {
		s.mu.Unlock()
		return false
	}
	s.session = session
	s.mu.Unlock()

	s.log.Info("session updated",
		logger.AuthEvent(string(event)),
		logger.UserID(session.UserID()),
	)
	_ = s.bus.Broadcast(context.Background(), broadcast.Message[Change]{
		Data: Change{Event: event, Session: session},
	})
	return true
}

func (s *Store) markReady() {
	s.readyOnce.Do(func() { close(s.ready) })
}

// Session returns the current session, nil when signed out.
func (s *Store) Session() (*backend.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch s.state {
	case stateIdle:
		return nil, ErrNotStarted
	case stateClosed:
		return nil, ErrClosed
	}
	return s.session, nil
}

// Subscribe returns a subscriber that receives every later change. It ends
// when ctx is cancelled or the store closes.
func (s *Store) Subscribe(ctx context.Context) broadcast.Subscriber[Change] {
	return s.bus.Subscribe(ctx)
}

// Ready is closed once the initial fetch has resolved or been discarded.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Close releases the listener, waits for the initial fetch and ends all
// subscriptions. Later calls do nothing.
func (s *Store) Close() error {
	s.life.Lock()
	defer s.life.Unlock()

	s.mu.Lock()
	if s.state == stateClosed {
		s.mu.Unlock()
		return nil
	}
	s.state = stateClosed
	s.session = nil
	s.mu.Unlock()

	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	if s.cancelFetch != nil {
		s.cancelFetch()
	}
	s.fetches.Wait()
	s.markReady()

	return s.bus.Close()
}
