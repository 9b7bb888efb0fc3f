// Package memory keeps all repositories in process memory. It backs the
// STORAGE_TYPE=memory mode and the usecase tests.
package memory

import (
	"sync"
	"time"
)

// Store shares one lock across every repository so that multi-record writes
// such as a cascading match delete are atomic.
type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	profiles map[string]*profileRecord
	matches  map[string]*matchRecord
	messages map[string][]*messageRecord
	events   map[string]*eventRecord
	skips    map[string]map[string]struct{}
	lastTS   map[string]time.Time
}

func NewStore() *Store {
	return &Store{
		now:      time.Now,
		profiles: make(map[string]*profileRecord),
		matches:  make(map[string]*matchRecord),
		messages: make(map[string][]*messageRecord),
		events:   make(map[string]*eventRecord),
		skips:    make(map[string]map[string]struct{}),
		lastTS:   make(map[string]time.Time),
	}
}

// SetClock replaces the time source. Used by tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
