package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skillforge/lms-platform/internal/core/domain"
)

const (
	summaryKey = "lms:courses:summary"
	summaryTTL = 5 * time.Minute
)

// CourseCache is a read-through cache for the course summary listing,
// invalidated on every course mutation. Callers treat failures as misses.
type CourseCache struct {
	client *redis.Client
}

// NewCourseCache creates a CourseCache wrapping the given Redis client.
func NewCourseCache(client *redis.Client) *CourseCache {
	return &CourseCache{client: client}
}

// Get returns the cached listing. The second return is false on a miss.
func (c *CourseCache) Get(ctx context.Context) ([]domain.CourseSummary, bool, error) {
	raw, err := c.client.Get(ctx, summaryKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("course cache get: %w", err)
	}

	var summaries []domain.CourseSummary
	if err := json.Unmarshal(raw, &summaries); err != nil {
		return nil, false, fmt.Errorf("course cache decode: %w", err)
	}
	return summaries, true, nil
}

// Set stores the listing (expires after summaryTTL).
func (c *CourseCache) Set(ctx context.Context, summaries []domain.CourseSummary) error {
	raw, err := json.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("course cache encode: %w", err)
	}
	return c.client.Set(ctx, summaryKey, raw, summaryTTL).Err()
}

// Invalidate drops the cached listing.
func (c *CourseCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, summaryKey).Err()
}
