package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"lesson-author-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// LessonLoader fetches lesson rows from a backing store.
type LessonLoader interface {
	LoadLesson(ctx context.Context, lessonID string) (domain.Lesson, error)
}

// LessonRepository caches whole lesson rows as JSON values in Redis
// (key lesson:{id}) and falls back to the loader on a miss. Saves go
// through InvalidateLesson so stale quiz payloads never outlive a write.
type LessonRepository struct {
	client *redis.Client
	loader LessonLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewLessonRepository(client *redis.Client, loader LessonLoader, ttl time.Duration) *LessonRepository {
	return &LessonRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *LessonRepository) GetLesson(ctx context.Context, lessonID string) (domain.Lesson, error) {
	key := r.key(lessonID)

	if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
		var lesson domain.Lesson
		if err := json.Unmarshal(raw, &lesson); err == nil {
			return lesson, nil
		}
		// Undecodable cache entries are dropped and reloaded.
		_ = r.client.Del(ctx, key).Err()
	}

	result, err, _ := r.sf.Do(lessonID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
			var lesson domain.Lesson
			if err := json.Unmarshal(raw, &lesson); err == nil {
				return lesson, nil
			}
		}

		lesson, err := r.loader.LoadLesson(ctx, lessonID)
		if err != nil {
			return domain.Lesson{}, err
		}

		if raw, err := json.Marshal(lesson); err == nil {
			_ = r.client.Set(ctx, key, raw, r.ttlWithJitter()).Err()
		}
		return lesson, nil
	})
	if err != nil {
		return domain.Lesson{}, err
	}
	return result.(domain.Lesson), nil
}

func (r *LessonRepository) InvalidateLesson(ctx context.Context, lessonID string) error {
	return r.client.Del(ctx, r.key(lessonID)).Err()
}

func (r *LessonRepository) key(lessonID string) string {
	return "lesson:" + lessonID
}

func (r *LessonRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
