package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tagwatch/tagwatch/internal/models"
)

const (
	fieldRepository = "repository"
	fieldTimestamp  = "timestamp"
)

// RedisStore implements Store on Redis. Each record is a hash at
// {prefix}:image:{tag} with repository and timestamp fields, so a Put
// for an existing tag overwrites both fields in place.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection.
// redisURL uses the redis:// URL scheme (e.g. "redis://localhost:6379/0").
func NewRedisStore(redisURL, keyPrefix string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisStore{client: client, prefix: keyPrefix}, nil
}

// NewRedisStoreFromClient wraps an existing Redis connection.
func NewRedisStoreFromClient(client *redis.Client, keyPrefix string) *RedisStore {
	return &RedisStore{client: client, prefix: keyPrefix}
}

func (s *RedisStore) key(imageTag string) string {
	return s.prefix + ":image:" + imageTag
}

// Put upserts the record hash. HSET replaces both fields, which gives the
// last-write-wins behaviour the relay relies on.
func (s *RedisStore) Put(ctx context.Context, rec *models.ImageRecord) error {
	err := s.client.HSet(ctx, s.key(rec.ImageTag),
		fieldRepository, rec.Repository,
		fieldTimestamp, rec.Timestamp,
	).Err()
	if err != nil {
		return fmt.Errorf("hset %s: %w", s.key(rec.ImageTag), err)
	}
	return nil
}

// Get reads the record hash for the tag.
func (s *RedisStore) Get(ctx context.Context, imageTag string) (*models.ImageRecord, error) {
	fields, err := s.client.HGetAll(ctx, s.key(imageTag)).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", s.key(imageTag), err)
	}
	if len(fields) == 0 {
		return nil, ErrRecordNotFound
	}

	return &models.ImageRecord{
		ImageTag:   imageTag,
		Repository: fields[fieldRepository],
		Timestamp:  fields[fieldTimestamp],
	}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
