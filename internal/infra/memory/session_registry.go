package memory

import (
	"sync"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/session"
)

// SessionRegistry is an in-memory implementation of app.SessionRegistry.
// Runners themselves are single-owner and unlocked; the registry lock only
// guards the map.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*session.Runner
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*session.Runner)}
}

func (s *SessionRegistry) Put(r *session.Runner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[r.ID()] = r
}

func (s *SessionRegistry) Get(sessionID string) (*session.Runner, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runner, ok := s.sessions[sessionID]
	return runner, ok
}

func (s *SessionRegistry) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
