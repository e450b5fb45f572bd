package booking

import (
	"sync"
	"time"

	"github.com/go-faster/errors"
)

// ErrSessionNotFound is returned when a wizard id matches no live session.
var ErrSessionNotFound = errors.New("booking session not found")

// sessionTTL bounds how long an abandoned wizard survives.
const sessionTTL = 30 * time.Minute

type session struct {
	wizard  *Wizard
	touched time.Time
}

// Sessions holds in-progress wizards per process. Wizard state is
// deliberately not shared across instances: an abandoned wizard costs
// nothing, and a finished one lands in the cart record.
type Sessions struct {
	mu  sync.Mutex
	m   map[string]*session
	now func() time.Time
}

// NewSessions creates an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{
		m:   make(map[string]*session),
		now: time.Now,
	}
}

// Start registers a new wizard for the given service and returns it.
func (s *Sessions) Start(serviceID string) *Wizard {
	w := New(serviceID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	s.m[w.ID] = &session{wizard: w, touched: s.now()}
	return w
}

// Get returns the live wizard with the given id.
func (s *Sessions) Get(id string) (*Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	sess, ok := s.m[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.touched = s.now()
	return sess.wizard, nil
}

// Remove drops a finished wizard.
func (s *Sessions) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
}

// prune evicts sessions idle past the TTL. Caller holds s.mu.
func (s *Sessions) prune() {
	cutoff := s.now().Add(-sessionTTL)
	for id, sess := range s.m {
		if sess.touched.Before(cutoff) {
			delete(s.m, id)
		}
	}
}
