package memory

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/domain"
)

// ProfileSource is the backing store a cache refreshes from.
type ProfileSource interface {
	Profiles(ctx context.Context, limit int) ([]domain.CandidateRecord, error)
	Profile(ctx context.Context, candidateID string) (domain.CandidateProfile, error)
}

// ProfileCache caches the bulk profile snapshot with a TTL to avoid hammering
// the backing store on every leaderboard render. The snapshot tolerates
// staleness: the viewer's own numbers are overridden at compose time.
// Single-candidate lookups bypass the cache so the self record stays live.
type ProfileCache struct {
	source ProfileSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	snapshot  []domain.CandidateRecord
	limit     int
	expiresAt time.Time
}

func NewProfileCache(source ProfileSource, ttl time.Duration) *ProfileCache {
	return &ProfileCache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *ProfileCache) Profiles(ctx context.Context, limit int) ([]domain.CandidateRecord, error) {
	now := c.clock()

	c.mu.RLock()
	if c.snapshot != nil && c.limit == limit && c.expiresAt.After(now) {
		snapshot := c.snapshot
		c.mu.RUnlock()
		return snapshot, nil
	}
	c.mu.RUnlock()

	// Key by limit so callers asking for different page sizes never share a
	// flight.
	result, err, _ := c.sf.Do("profiles:"+strconv.Itoa(limit), func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.snapshot != nil && c.limit == limit && c.expiresAt.After(now) {
			snapshot := c.snapshot
			c.mu.RUnlock()
			return snapshot, nil
		}
		c.mu.RUnlock()

		records, err := c.source.Profiles(ctx, limit)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.snapshot = records
		c.limit = limit
		c.expiresAt = now.Add(c.ttlWithJitter())
		c.mu.Unlock()
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.CandidateRecord), nil
}

func (c *ProfileCache) Profile(ctx context.Context, candidateID string) (domain.CandidateProfile, error) {
	return c.source.Profile(ctx, candidateID)
}

func (c *ProfileCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread refreshes
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
