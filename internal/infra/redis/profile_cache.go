package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/domain"
)

// ProfileSource is the backing store the cache refreshes from on a miss.
type ProfileSource interface {
	Profiles(ctx context.Context, limit int) ([]domain.CandidateRecord, error)
	Profile(ctx context.Context, candidateID string) (domain.CandidateProfile, error)
}

// ProfileCache keeps the bulk leaderboard snapshot in Redis as one JSON blob
// per page size: SET leaderboard:profiles:{limit} <json> EX ttl. Staleness is
// acceptable for the bulk view; the viewer's own row is rebuilt from live data
// at compose time, and single-candidate lookups always go to the source.
type ProfileCache struct {
	client *redis.Client
	source ProfileSource
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewProfileCache(client *redis.Client, source ProfileSource, ttl time.Duration) *ProfileCache {
	return &ProfileCache{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *ProfileCache) Profiles(ctx context.Context, limit int) ([]domain.CandidateRecord, error) {
	key := c.snapshotKey(limit)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		if records, ok := decodeSnapshot(raw); ok {
			return records, nil
		}
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check the cache in case another goroutine filled it.
		raw, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			if records, ok := decodeSnapshot(raw); ok {
				return records, nil
			}
		}

		records, err := c.source.Profiles(ctx, limit)
		if err != nil {
			return nil, err
		}

		if encoded, err := json.Marshal(records); err == nil {
			_ = c.client.Set(ctx, key, encoded, c.ttlWithJitter()).Err()
		}
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

func (c *ProfileCache) snapshotKey(limit int) string {
	return "leaderboard:profiles:" + strconv.Itoa(limit)
}

// decodeSnapshot treats a corrupt cached blob as a miss rather than an error.
func decodeSnapshot(raw []byte) ([]domain.CandidateRecord, bool) {
	var records []domain.CandidateRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false
	}
	return records, true
}

func (c *ProfileCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
