// Package store persists image push records in a key-value store keyed
// by image tag. Writes are unconditional upserts: pushing the same tag
// twice overwrites the earlier record (last write wins).
package store

import (
	"context"
	"errors"

	"github.com/tagwatch/tagwatch/internal/models"
)

// ErrRecordNotFound is returned by Get when no record exists for the tag.
var ErrRecordNotFound = errors.New("image record not found")

// Store defines the persistence contract for image push records.
type Store interface {
	// Put upserts the record keyed by its ImageTag.
	Put(ctx context.Context, rec *models.ImageRecord) error

	// Get returns the record for the given tag, or ErrRecordNotFound.
	Get(ctx context.Context, imageTag string) (*models.ImageRecord, error)

	// Close releases any resources held by the store.
	Close() error
}
