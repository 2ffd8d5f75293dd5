package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/grovetools/praise/errors"
	"github.com/grovetools/praise/pkg/presenter"
)

// DefaultIdleTTL is how long an untouched session survives.
const DefaultIdleTTL = 30 * time.Minute

const subscriberBuffer = 16

// Factory builds the presenter for a new session.
type Factory func() *presenter.Presenter

// Session is one browser's presenter plus the pages listening to it.
type Session struct {
	ID string

	mu        sync.Mutex
	presenter *presenter.Presenter
	lastSeen  atomic.Int64

	subMu       sync.Mutex
	subscribers map[chan Update]struct{}
}

// Do runs fn with exclusive access to the session's presenter.
func (s *Session) Do(fn func(p *presenter.Presenter) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.presenter)
}

// Subscribe creates a buffered channel that receives this session's updates.
func (s *Session) Subscribe() chan Update {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	ch := make(chan Update, subscriberBuffer)
	if s.subscribers == nil {
		s.subscribers = make(map[chan Update]struct{})
	}
	s.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscription and closes its channel. It is a no-op
// if the channel was already released.
func (s *Session) Unsubscribe(ch chan Update) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if _, ok := s.subscribers[ch]; !ok {
		return
	}
	delete(s.subscribers, ch)
	close(ch)
}

// Publish delivers u to every subscriber without blocking.
func (s *Session) Publish(u Update) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subscribers {
		select {
		case ch <- u:
		default:
			// Slow pages miss intermediate views; the next one carries full state.
		}
	}
}

func (s *Session) watched() bool {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subscribers) > 0
}

func (s *Session) close() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subscribers {
		select {
		case ch <- Update{Type: UpdateExpired, Source: "store"}:
		default:
		}
		close(ch)
	}
	s.subscribers = nil
}

func (s *Session) touch(now time.Time) { s.lastSeen.Store(now.UnixNano()) }

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}

// Store is the in-memory session registry. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	factory  Factory
	ttl      time.Duration
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithIdleTTL sets how long an untouched session survives. Zero disables expiry.
func WithIdleTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithClock replaces time.Now for expiry bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty store.
func New(factory Factory, opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		factory:  factory,
		ttl:      DefaultIdleTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new session with a fresh presenter. Expired sessions are
// pruned first.
func (s *Store) Create() *Session {
	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		presenter: s.factory(),
	}
	sess.touch(now)

	s.mu.Lock()
	expired := s.pruneLocked(now)
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	for _, old := range expired {
		old.close()
	}
	return sess
}

// Get returns a live session and marks it as used.
func (s *Store) Get(id string) (*Session, error) {
	now := s.now()
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok || s.expired(sess, now) {
		return nil, errors.SessionNotFound(id)
	}
	sess.touch(now)
	return sess, nil
}

// GetOrCreate returns the session for id, or a new one when id is unknown or
// expired. The bool reports whether a session was created.
func (s *Store) GetOrCreate(id string) (*Session, bool) {
	if id != "" {
		if sess, err := s.Get(id); err == nil {
			return sess, false
		}
	}
	return s.Create(), true
}

// Delete ends a session and closes its subscriptions.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		sess.close()
	}
}

// Len returns the number of stored sessions, expired ones included until pruned.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Broadcast sends u to the subscribers of every session.
func (s *Store) Broadcast(u Update) {
	s.mu.RLock()
	all := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		all = append(all, sess)
	}
	s.mu.RUnlock()

	for _, sess := range all {
		sess.Publish(u)
	}
}

// Close ends every session.
func (s *Store) Close() {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()
	for _, sess := range all {
		sess.close()
	}
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && sess.idleSince(now) > s.ttl && !sess.watched()
}

func (s *Store) pruneLocked(now time.Time) []*Session {
	var expired []*Session
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			expired = append(expired, sess)
		}
	}
	return expired
}
