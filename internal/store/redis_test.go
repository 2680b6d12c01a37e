package store

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tagwatch/tagwatch/internal/models"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStoreFromClient(client, "tagwatch")
}

func TestRedisStore_PutAndGet(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	rec := &models.ImageRecord{
		ImageTag:   "20250101-1200-abc123",
		Repository: "sample-app-repo",
		Timestamp:  "2025-01-01T12:00:00Z",
	}

	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, "20250101-1200-abc123")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got.Repository != rec.Repository {
		t.Errorf("Repository = %q, want %q", got.Repository, rec.Repository)
	}
	if got.Timestamp != rec.Timestamp {
		t.Errorf("Timestamp = %q, want %q", got.Timestamp, rec.Timestamp)
	}
	if got.ImageTag != rec.ImageTag {
		t.Errorf("ImageTag = %q, want %q", got.ImageTag, rec.ImageTag)
	}
}

func TestRedisStore_PutOverwritesSameTag(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	first := &models.ImageRecord{
		ImageTag:   "v2",
		Repository: "api-server",
		Timestamp:  "2025-06-01T09:00:00Z",
	}
	second := &models.ImageRecord{
		ImageTag:   "v2",
		Repository: "api-server",
		Timestamp:  "2025-06-01T09:01:00Z",
	}

	if err := s.Put(ctx, first); err != nil {
		t.Fatalf("Put() first error = %v", err)
	}
	if err := s.Put(ctx, second); err != nil {
		t.Fatalf("Put() second error = %v", err)
	}

	got, err := s.Get(ctx, "v2")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Timestamp != second.Timestamp {
		t.Errorf("Timestamp = %q, want overwrite to %q", got.Timestamp, second.Timestamp)
	}
}

func TestRedisStore_GetMissingTag(t *testing.T) {
	s := newTestRedisStore(t)

	_, err := s.Get(context.Background(), "no-such-tag")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("Get() error = %v, want ErrRecordNotFound", err)
	}
}

func TestNewRedisStore_InvalidURL(t *testing.T) {
	if _, err := NewRedisStore("not-a-valid-url", "tagwatch"); err == nil {
		t.Error("NewRedisStore() with invalid URL should return error")
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("Get() error = %v, want ErrRecordNotFound", err)
	}

	rec := &models.ImageRecord{ImageTag: "v1", Repository: "api-server", Timestamp: "2025-01-01T00:00:00Z"}
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, "v1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if *got != *rec {
		t.Errorf("Get() = %+v, want %+v", got, rec)
	}

	// Mutating the returned record must not affect the stored copy.
	got.Repository = "changed"
	again, _ := s.Get(ctx, "v1")
	if again.Repository != "api-server" {
		t.Errorf("stored record mutated through returned pointer")
	}
}
