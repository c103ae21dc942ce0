package memory

import (
	"context"
	"sync"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/domain"
)

// ProgressStore keeps candidate progress in a mutex-guarded map. Save replaces
// the whole record under the lock, which serializes concurrent finishes for
// the same candidate the way the persistence contract requires.
type ProgressStore struct {
	mu       sync.RWMutex
	progress map[string]domain.CandidateProgress
}

func NewProgressStore() *ProgressStore {
	return &ProgressStore{progress: make(map[string]domain.CandidateProgress)}
}

// Load returns the stored progress, or the zero value for candidates that
// never practiced.
func (s *ProgressStore) Load(_ context.Context, candidateID string) (domain.CandidateProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress[candidateID], nil
}

func (s *ProgressStore) Save(_ context.Context, candidateID string, p domain.CandidateProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[candidateID] = p
	return nil
}
