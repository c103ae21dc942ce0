package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/domain"
	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/infra/memory"
)

func TestProfileCacheCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	source := &countingSource{ProfileSource: memory.NewProfileStore(sampleRecords())}
	cache := NewProfileCache(client, source, time.Minute)

	records, err := cache.Profiles(context.Background(), 10)
	if err != nil {
		t.Fatalf("profiles: %v", err)
	}
	if len(records) != 2 || source.calls != 1 {
		t.Fatalf("expected source hit once, got %d records / %d calls", len(records), source.calls)
	}
	if !mr.Exists("leaderboard:profiles:10") {
		t.Fatalf("expected snapshot key in redis")
	}

	// Second call must be served from the cached blob.
	if _, err := cache.Profiles(context.Background(), 10); err != nil {
		t.Fatalf("profiles 2: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected cache hit, source calls %d", source.calls)
	}
}

func TestProfileCacheCorruptBlobFallsBack(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	if err := mr.Set("leaderboard:profiles:10", "not json"); err != nil {
		t.Fatalf("seed bad blob: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	source := &countingSource{ProfileSource: memory.NewProfileStore(sampleRecords())}
	cache := NewProfileCache(client, source, time.Minute)

	records, err := cache.Profiles(context.Background(), 10)
	if err != nil {
		t.Fatalf("profiles: %v", err)
	}
	if len(records) != 2 || source.calls != 1 {
		t.Fatalf("corrupt blob should be treated as a miss, got %d records / %d calls", len(records), source.calls)
	}
}

func TestProfileCacheSingleLookupStaysLive(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	source := &countingSource{ProfileSource: memory.NewProfileStore(sampleRecords())}
	cache := NewProfileCache(client, source, time.Minute)

	profile, err := cache.Profile(context.Background(), "cand-1")
	if err != nil || profile.ID != "cand-1" {
		t.Fatalf("expected live lookup, got %+v %v", profile, err)
	}
}

func sampleRecords() []domain.CandidateRecord {
	return []domain.CandidateRecord{
		{
			Profile:  domain.CandidateProfile{ID: "cand-1", DisplayName: "Ana", TrackedRoles: []string{"role-1"}},
			Progress: domain.CandidateProgress{QuestionsResolved: 100, AccuracyRate: 90.0},
		},
		{
			Profile:  domain.CandidateProfile{ID: "cand-2", DisplayName: "Bruno", TrackedRoles: `["role-1"]`},
			Progress: domain.CandidateProgress{QuestionsResolved: 50, AccuracyRate: 80.0},
		},
	}
}

type countingSource struct {
	ProfileSource
	calls int
}

func (s *countingSource) Profiles(ctx context.Context, limit int) ([]domain.CandidateRecord, error) {
	s.calls++
	return s.ProfileSource.Profiles(ctx, limit)
}
