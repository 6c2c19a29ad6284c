// Package runs keeps recent simulation results in memory so the API can
// serve them again by ID.
package runs

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind names the simulation that produced a run.
type Kind string

const (
	KindProduction  Kind = "production"
	KindTatonnement Kind = "tatonnement"
	KindSticky      Kind = "sticky"
	KindEquilibrium Kind = "equilibrium"
)

// Run is one stored simulation.
type Run struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	Params    any       `json:"params"`
	Result    any       `json:"result"`
}

type entry struct {
	run       Run
	expiresAt time.Time
}

// Store is an in-memory TTL store of runs. The zero value is not usable;
// call NewStore. A nil *Store stores nothing and finds nothing.
type Store struct {
	mu    sync.RWMutex
	store map[string]*entry
	ttl   time.Duration
	now   func() time.Time

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewStore starts a store whose entries expire after ttl. Expired entries
// are swept every sweep interval until Close.
func NewStore(ttl, sweep time.Duration) *Store {
	s := &Store{
		store: make(map[string]*entry),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go s.cleanup(sweep)
	return s
}

// Put stores a result under a fresh ID and returns the run.
func (s *Store) Put(kind Kind, params, result any) Run {
	r := Run{
		ID:     uuid.NewString(),
		Kind:   kind,
		Params: params,
		Result: result,
	}
	if s == nil {
		r.CreatedAt = time.Now()
		return r
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r.CreatedAt = s.now()
	s.store[r.ID] = &entry{run: r, expiresAt: r.CreatedAt.Add(s.ttl)}
	return r
}

// Get returns a run if present and not expired.
func (s *Store) Get(id string) (Run, bool) {
	if s == nil {
		return Run{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.store[id]
	if !ok || s.now().After(e.expiresAt) {
		return Run{}, false
	}
	return e.run, true
}

// Len counts stored entries, including expired ones not yet swept.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.store)
}

// Clear removes all entries.
func (s *Store) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = make(map[string]*entry)
}

// Close stops the sweeper and waits for it to exit.
func (s *Store) Close() {
	if s == nil {
		return
	}
	s.once.Do(func() { close(s.stop) })
	<-s.done
}

func (s *Store) cleanup(every time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Store) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, e := range s.store {
		if now.After(e.expiresAt) {
			delete(s.store, id)
		}
	}
}
