package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ekinkaya/classtrack/internal/app/models"
	"github.com/ekinkaya/classtrack/internal/pkg/logger"
)

const genKey = "agg:gen"

// AggregateCache is a redis-backed read cache for student attendance
// aggregates. Keys carry a generation counter so a whole-cache invalidation
// (after a promotion run) is a single INCR rather than a key scan. All
// operations are best effort; a cache fault never fails a request.
type AggregateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates an AggregateCache with the given entry TTL.
func New(client *redis.Client, ttl time.Duration) *AggregateCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AggregateCache{client: client, ttl: ttl}
}

func (c *AggregateCache) key(ctx context.Context, studentID string) (string, error) {
	gen, err := c.client.Get(ctx, genKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("agg:%d:%s", gen, studentID), nil
}

// Get returns the cached student, or a miss.
func (c *AggregateCache) Get(ctx context.Context, studentID string) (*models.Student, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	key, err := c.key(ctx, studentID)
	if err != nil {
		logger.Debug().Err(err).Msg("Aggregate cache unavailable on read")
		return nil, false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var st models.Student
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, false
	}
	return &st, true
}

// Set stores a student snapshot.
func (c *AggregateCache) Set(ctx context.Context, st *models.Student) {
	if c == nil || c.client == nil || st == nil {
		return
	}
	key, err := c.key(ctx, st.ID)
	if err != nil {
		return
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.Debug().Err(err).Str("studentID", st.ID).Msg("Aggregate cache write failed")
	}
}

// Invalidate drops the cached entries for the given students.
func (c *AggregateCache) Invalidate(ctx context.Context, studentIDs ...string) {
	if c == nil || c.client == nil || len(studentIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(studentIDs))
	for _, id := range studentIDs {
		key, err := c.key(ctx, id)
		if err != nil {
			return
		}
		keys = append(keys, key)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Debug().Err(err).Msg("Aggregate cache invalidation failed")
	}
}

// InvalidateAll bumps the generation counter, orphaning every cached entry.
func (c *AggregateCache) InvalidateAll(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Incr(ctx, genKey).Err(); err != nil {
		logger.Debug().Err(err).Msg("Aggregate cache generation bump failed")
	}
}
