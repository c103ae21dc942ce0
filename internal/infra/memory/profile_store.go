package memory

import (
	"context"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/domain"
)

// ProfileStore serves a static set of candidate records in insertion order.
type ProfileStore struct {
	records []domain.CandidateRecord
}

func NewProfileStore(records []domain.CandidateRecord) *ProfileStore {
	return &ProfileStore{records: records}
}

// Profiles returns up to limit records. limit <= 0 means no bound.
func (s *ProfileStore) Profiles(_ context.Context, limit int) ([]domain.CandidateRecord, error) {
	if limit <= 0 || limit > len(s.records) {
		limit = len(s.records)
	}
	out := make([]domain.CandidateRecord, limit)
	copy(out, s.records[:limit])
	return out, nil
}

func (s *ProfileStore) Profile(_ context.Context, candidateID string) (domain.CandidateProfile, error) {
	for _, rec := range s.records {
		if rec.Profile.ID == candidateID {
			return rec.Profile, nil
		}
	}
	return domain.CandidateProfile{}, domain.ErrCandidateNotFound
}
