package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"go-chi-calculator/internal/machine"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(t *testing.T, opts Options) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	opts.Now = clock.Now
	opts.Registerer = prometheus.NewRegistry()

	s, err := NewStore(opts)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s, clock
}

func TestCreateAndGet(t *testing.T) {
	s, _ := newTestStore(t, Options{})

	created := s.Create()
	if created.ID == "" {
		t.Fatal("expected a session id")
	}
	if created.State.CurrentInput != "0" {
		t.Errorf("CurrentInput = %q, want initial state", created.State.CurrentInput)
	}

	got, err := s.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("Get returned %q, want %q", got.ID, created.ID)
	}

	if _, err := s.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestUpdateAppliesReducer(t *testing.T) {
	s, _ := newTestStore(t, Options{})
	id := s.Create().ID

	for _, d := range []string{"4", "2"} {
		if _, err := s.Update(id, func(st machine.State) machine.State {
			return machine.Reduce(st, machine.InputDigit(d))
		}); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}

	got, _ := s.Get(id)
	if got.State.CurrentInput != "42" {
		t.Errorf("CurrentInput = %q, want 42", got.State.CurrentInput)
	}

	_, err := s.Update("missing", func(st machine.State) machine.State { return st })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s, _ := newTestStore(t, Options{})
	id := s.Create().ID

	if err := s.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
	if got := promtest.ToFloat64(s.active); got != 0 {
		t.Errorf("active gauge = %v, want 0", got)
	}
}

func TestCapacityEvictsLeastRecentlyUsed(t *testing.T) {
	s, clock := newTestStore(t, Options{MaxSessions: 2})

	first := s.Create().ID
	clock.Advance(time.Second)
	second := s.Create().ID
	clock.Advance(time.Second)

	// touching first makes second the eviction candidate
	if _, err := s.Get(first); err != nil {
		t.Fatalf("Get: %v", err)
	}
	clock.Advance(time.Second)
	s.Create()

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if _, err := s.Get(second); !errors.Is(err, ErrNotFound) {
		t.Errorf("second session should have been evicted, got %v", err)
	}
	if _, err := s.Get(first); err != nil {
		t.Errorf("first session should survive: %v", err)
	}
	if got := promtest.ToFloat64(s.evictions.WithLabelValues("capacity")); got != 1 {
		t.Errorf("capacity evictions = %v, want 1", got)
	}
}

func TestIdleExpiry(t *testing.T) {
	s, clock := newTestStore(t, Options{IdleTTL: time.Minute})

	stale := s.Create().ID
	clock.Advance(45 * time.Second)
	fresh := s.Create().ID
	clock.Advance(30 * time.Second)

	if n := s.Sweep(); n != 1 {
		t.Fatalf("Sweep removed %d, want 1", n)
	}
	if _, err := s.Get(stale); !errors.Is(err, ErrNotFound) {
		t.Errorf("stale session error = %v, want ErrNotFound", err)
	}
	if _, err := s.Get(fresh); err != nil {
		t.Errorf("fresh session: %v", err)
	}
	if got := promtest.ToFloat64(s.active); got != 1 {
		t.Errorf("active gauge = %v, want 1", got)
	}
}

func TestGetExpiresLazily(t *testing.T) {
	s, clock := newTestStore(t, Options{IdleTTL: time.Minute})
	id := s.Create().ID
	clock.Advance(2 * time.Minute)

	if _, err := s.Get(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after TTL error = %v, want ErrNotFound", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestRunSweeperStopsWithContext(t *testing.T) {
	s, _ := newTestStore(t, Options{IdleTTL: time.Minute})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.RunSweeper(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunSweeper did not return after cancel")
	}
}

func TestNewStoreRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewStore(Options{Registerer: reg}); err != nil {
		t.Fatalf("first NewStore: %v", err)
	}
	if _, err := NewStore(Options{Registerer: reg}); err == nil {
		t.Error("second NewStore on the same registry should fail")
	}
}
