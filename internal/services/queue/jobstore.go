package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/phambaophuc/image-resizer/internal/models"
	"github.com/redis/go-redis/v9"
)

const jobKeyPrefix = "image_job:"

// RedisJobStore keeps job snapshots in Redis with a TTL.
type RedisJobStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisJobStore(client redis.Cmdable, ttl time.Duration) *RedisJobStore {
	return &RedisJobStore{client: client, ttl: ttl}
}

func (s *RedisJobStore) Save(ctx context.Context, job *models.ProcessingJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	return s.client.Set(ctx, jobKeyPrefix+job.ID, data, s.ttl).Err()
}

func (s *RedisJobStore) Get(ctx context.Context, id string) (*models.ProcessingJob, error) {
	data, err := s.client.Get(ctx, jobKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("job store get error: %w", err)
	}

	var job models.ProcessingJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}

func (s *RedisJobStore) HealthCheck(ctx context.Context) string {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return "unhealthy: " + err.Error()
	}
	return "healthy"
}
