// Package redis provides Redis-aware implementations of the app collaborator
// interfaces.
package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/session"
)

// SessionRegistry is a Redis-aware implementation of app.SessionRegistry.
// Notes:
//   - Runners stay in a local in-memory map; the state machine is single-owner
//     and is never shared across instances.
//   - Redis holds a liveness marker per session with a TTL, so operators can
//     see in-flight sessions and abandoned ones age out of the keyspace.
type SessionRegistry struct {
	client *redis.Client
	ttl    time.Duration

	mu       sync.RWMutex
	sessions map[string]*session.Runner
}

func NewSessionRegistry(client *redis.Client, ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*session.Runner),
	}
}

func (s *SessionRegistry) Put(r *session.Runner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[r.ID()] = r
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(r.ID()), r.CandidateID(), s.ttl).Err()
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
	if _, ok := s.sessions[sessionID]; !ok {
		return
	}
	delete(s.sessions, sessionID)
	_ = s.client.Del(context.Background(), s.key(sessionID)).Err()
}

func (s *SessionRegistry) key(sessionID string) string {
	return "exam:session:" + sessionID
}
