package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/canadaclubjp/quiz-app/internal/cache"
	"github.com/canadaclubjp/quiz-app/internal/sheets"
)

type cachedRoster struct {
	inner  Roster
	cache  cache.CacheService
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRoster wraps a roster with a TTL cache. Only positive results are
// cached so a newly enrolled student is admitted as soon as the roster sheet
// is updated.
func NewCachedRoster(inner Roster, c cache.CacheService, ttl time.Duration, logger *slog.Logger) Roster {
	return &cachedRoster{
		inner:  inner,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *cachedRoster) Verify(ctx context.Context, studentNumber, courseNumber string) (bool, error) {
	key := rosterCacheKey(studentNumber, courseNumber)

	var enrolled bool
	err := r.cache.Get(ctx, key, &enrolled)
	if err == nil {
		return enrolled, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		r.logger.Warn("roster cache lookup failed", "key", key, "error", err)
	}

	enrolled, err = r.inner.Verify(ctx, studentNumber, courseNumber)
	if err != nil {
		return false, err
	}
	if enrolled {
		if cacheErr := r.cache.Set(ctx, key, true, r.ttl); cacheErr != nil {
			r.logger.Warn("roster cache store failed", "key", key, "error", cacheErr)
		}
	}
	return enrolled, nil
}

func rosterCacheKey(studentNumber, courseNumber string) string {
	return fmt.Sprintf("roster:%s:%s", studentNumber, sheets.CourseSheetKey(courseNumber))
}
