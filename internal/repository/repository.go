package repository

import (
	"context"

	"github.com/lehmann314159/vocabdrill/internal/models"
)

// EntryRepository stores raw vocabulary records in arrival order
type EntryRepository interface {
	// Append stores entries after the existing ones and returns how many were written
	Append(ctx context.Context, entries []models.RawEntry) (int, error)

	// List returns every stored entry in arrival order
	List(ctx context.Context) ([]models.RawEntry, error)

	// Count returns the number of stored entries
	Count(ctx context.Context) (int64, error)
}

// KeyValueStore is the named-value persistence used for mastery and speech
// settings. Get reports ok=false for a missing key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
