package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const uploadKeyPrefix = "resume:upload:"

type redisUploadRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient parses a redis:// URL and applies the connection timeouts
// used across the service.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return redis.NewClient(opts), nil
}

func NewRedisUploadRepository(client *redis.Client, ttl time.Duration) UploadRepository {
	return &redisUploadRepository{client: client, ttl: ttl}
}

func (r *redisUploadRepository) Save(ctx context.Context, text string) (string, error) {
	id := uuid.New().String()
	if err := r.client.Set(ctx, uploadKeyPrefix+id, text, r.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store upload text: %w", err)
	}
	return id, nil
}

func (r *redisUploadRepository) Get(ctx context.Context, uploadID string) (string, error) {
	text, err := r.client.Get(ctx, uploadKeyPrefix+uploadID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read upload text: %w", err)
	}
	return text, nil
}
