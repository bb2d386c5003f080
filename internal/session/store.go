// Package session keeps calculator states for HTTP clients. Sessions live in
// process memory only.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"go-chi-calculator/internal/machine"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// Session is one calculator and its bookkeeping.
type Session struct {
	ID        string        `json:"id"`
	State     machine.State `json:"state"`
	CreatedAt time.Time     `json:"created_at"`
	TouchedAt time.Time     `json:"touched_at"`
}

// Options configures a Store.
type Options struct {
	// MaxSessions caps live sessions; creating one more evicts the least
	// recently touched. 0 is unbounded.
	MaxSessions int
	// IdleTTL expires sessions not touched for this long. 0 disables expiry.
	IdleTTL time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
	// Registerer receives the store's collectors. Nil skips registration.
	Registerer prometheus.Registerer
}

// Store is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	opts     Options

	active    prometheus.Gauge
	evictions *prometheus.CounterVec
}

// NewStore builds an empty store and registers its metrics.
func NewStore(opts Options) (*Store, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Store{
		sessions: make(map[string]*Session),
		opts:     opts,
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "calculator_sessions_active",
			Help: "Number of live calculator sessions.",
		}),
		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calculator_sessions_evicted_total",
			Help: "Sessions removed by the store, by reason.",
		}, []string{"reason"}),
	}

	if opts.Registerer != nil {
		for _, c := range []prometheus.Collector{s.active, s.evictions} {
			if err := opts.Registerer.Register(c); err != nil {
				return nil, fmt.Errorf("register session metrics: %w", err)
			}
		}
	}
	return s, nil
}

// Create opens a session in the initial calculator state.
func (s *Store) Create() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.opts.Now()
	s.sweepLocked(now)
	if s.opts.MaxSessions > 0 {
		for len(s.sessions) >= s.opts.MaxSessions {
			s.evictOldestLocked()
		}
	}

	sess := &Session{
		ID:        uuid.NewString(),
		State:     machine.InitialState(),
		CreatedAt: now,
		TouchedAt: now,
	}
	s.sessions[sess.ID] = sess
	s.active.Set(float64(len(s.sessions)))
	return *sess
}

// Get returns a snapshot of the session and marks it as used.
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(id)
	if err != nil {
		return Session{}, err
	}
	return *sess, nil
}

// Update replaces the session's state with fn(state). fn runs under the
// store lock, so updates to one session are applied in call order.
func (s *Store) Update(id string, fn func(machine.State) machine.State) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(id)
	if err != nil {
		return Session{}, err
	}
	sess.State = fn(sess.State)
	return *sess, nil
}

// Delete removes a session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	s.active.Set(float64(len(s.sessions)))
	return nil
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(s.opts.Now())
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) lookupLocked(id string) (*Session, error) {
	now := s.opts.Now()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.expired(sess, now) {
		s.removeLocked(id, "idle")
		return nil, ErrNotFound
	}
	sess.TouchedAt = now
	return sess, nil
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.opts.IdleTTL > 0 && now.Sub(sess.TouchedAt) > s.opts.IdleTTL
}

func (s *Store) sweepLocked(now time.Time) int {
	n := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			s.removeLocked(id, "idle")
			n++
		}
	}
	return n
}

func (s *Store) evictOldestLocked() {
	var oldest *Session
	for _, sess := range s.sessions {
		if oldest == nil || sess.TouchedAt.Before(oldest.TouchedAt) {
			oldest = sess
		}
	}
	if oldest != nil {
		s.removeLocked(oldest.ID, "capacity")
	}
}

func (s *Store) removeLocked(id, reason string) {
	delete(s.sessions, id)
	s.evictions.WithLabelValues(reason).Inc()
	s.active.Set(float64(len(s.sessions)))
}
