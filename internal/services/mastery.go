package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"

	"github.com/lehmann314159/vocabdrill/internal/models"
	"github.com/lehmann314159/vocabdrill/internal/repository"
)

const masteryKey = "vocab_marked"

// noticeMasteryUnsaved is the notice id posted when the mastered set cannot be stored
const noticeMasteryUnsaved = "mastery-unsaved"

// Notifier receives one-time user notices
type Notifier interface {
	PostOnce(id, msg string)
}

// MasteryTracker is the persisted set of mastered identity keys. Every
// toggle writes the whole set. When the store fails, the in-memory set stays
// authoritative for the rest of the session.
type MasteryTracker struct {
	// writeMu orders toggles so the store always receives the latest set
	writeMu sync.Mutex
	mu      sync.RWMutex
	keys    map[string]struct{}
	store   repository.KeyValueStore
	notices Notifier
	log     *slog.Logger
}

// NewMasteryTracker loads the mastered set from store. A missing or
// unreadable value yields an empty set. store may be nil.
func NewMasteryTracker(ctx context.Context, store repository.KeyValueStore, notices Notifier, log *slog.Logger) *MasteryTracker {
	t := &MasteryTracker{
		keys:    make(map[string]struct{}),
		store:   store,
		notices: notices,
		log:     log.With("component", "mastery"),
	}
	if store == nil {
		return t
	}

	raw, ok, err := store.Get(ctx, masteryKey)
	if err != nil {
		t.degraded(err)
		return t
	}
	if !ok {
		return t
	}

	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		t.log.Warn("discarding corrupt mastery set", "error", err)
		return t
	}
	for _, k := range keys {
		if k = models.Key(k); k != "" {
			t.keys[k] = struct{}{}
		}
	}
	t.log.Debug("mastery set loaded", "count", len(t.keys))
	return t
}

// IsMastered reports whether key is in the set
func (t *MasteryTracker) IsMastered(key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.keys[key]
	return ok
}

// Toggle flips the membership of word's key and persists the set. It returns
// the new state; ok is false when word normalizes to an empty key.
func (t *MasteryTracker) Toggle(ctx context.Context, word string) (mastered, ok bool) {
	key := models.Key(word)
	if key == "" {
		return false, false
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	t.mu.Lock()
	if _, has := t.keys[key]; has {
		delete(t.keys, key)
	} else {
		t.keys[key] = struct{}{}
		mastered = true
	}
	snapshot := t.sortedLocked()
	t.mu.Unlock()

	t.persist(ctx, snapshot)
	return mastered, true
}

// Count returns the number of mastered words
func (t *MasteryTracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.keys)
}

// Keys returns the mastered keys in sorted order
func (t *MasteryTracker) Keys() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sortedLocked()
}

func (t *MasteryTracker) sortedLocked() []string {
	keys := make([]string, 0, len(t.keys))
	for k := range t.keys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (t *MasteryTracker) persist(ctx context.Context, keys []string) {
	if t.store == nil {
		t.degraded(nil)
		return
	}
	raw, err := json.Marshal(keys)
	if err != nil {
		t.degraded(err)
		return
	}
	if err := t.store.Set(ctx, masteryKey, string(raw)); err != nil {
		t.degraded(err)
	}
}

func (t *MasteryTracker) degraded(err error) {
	t.log.Warn("mastery persistence unavailable, keeping progress in memory", "error", err)
	if t.notices != nil {
		t.notices.PostOnce(noticeMasteryUnsaved, "Progress cannot be saved; it will be kept until the session ends")
	}
}
