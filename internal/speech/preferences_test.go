package speech

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehmann314159/vocabdrill/internal/models"
	"github.com/lehmann314159/vocabdrill/internal/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingNotifier struct {
	mu   sync.Mutex
	seen map[string]int
}

func (n *recordingNotifier) PostOnce(id, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.seen == nil {
		n.seen = map[string]int{}
	}
	n.seen[id]++
}

func (n *recordingNotifier) count(id string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.seen[id]
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("quota exceeded")
}

func (brokenStore) Set(context.Context, string, string) error {
	return errors.New("quota exceeded")
}

func ptr[T any](v T) *T { return &v }

// gatedStore holds its first Set until release is closed
type gatedStore struct {
	*repository.MemoryStore
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGatedStore() *gatedStore {
	return &gatedStore{
		MemoryStore: repository.NewMemoryStore(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
}

func (s *gatedStore) Set(ctx context.Context, key, value string) error {
	first := false
	s.once.Do(func() { first = true })
	if first {
		close(s.entered)
		<-s.release
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func TestLoadPreferences_Defaults(t *testing.T) {
	p := LoadPreferences(context.Background(), repository.NewMemoryStore(), DefaultPreference(), nil, discardLogger())
	assert.Equal(t, DefaultPreference(), p.Get())
}

func TestLoadPreferences_StoredFields(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	require.NoError(t, store.Set(ctx, keyVoice, "voice-7"))
	require.NoError(t, store.Set(ctx, keyAccent, "en-GB"))
	require.NoError(t, store.Set(ctx, keyRate, "1.1"))
	require.NoError(t, store.Set(ctx, keyPitch, "not a number"))

	got := LoadPreferences(ctx, store, DefaultPreference(), nil, discardLogger()).Get()

	assert.Equal(t, "voice-7", got.VoiceID)
	assert.Equal(t, "en-GB", got.Accent)
	assert.InDelta(t, 1.1, got.Rate, 1e-9)
	assert.InDelta(t, 1.0, got.Pitch, 1e-9, "unparseable values keep the default")
}

func TestPreferences_UpdatePersists(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	p := LoadPreferences(ctx, store, DefaultPreference(), nil, discardLogger())

	got := p.Update(ctx, models.UpdateSpeechRequest{VoiceID: ptr("v2"), Rate: ptr(1.2), Pitch: ptr(0.8)})
	assert.Equal(t, "v2", got.VoiceID)
	assert.InDelta(t, 1.2, got.Rate, 1e-9)
	assert.InDelta(t, 0.8, got.Pitch, 1e-9)

	reloaded := LoadPreferences(ctx, store, DefaultPreference(), nil, discardLogger())
	assert.Equal(t, got, reloaded.Get())
}

func TestPreferences_AccentChangeResetsVoice(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	p := LoadPreferences(ctx, store, DefaultPreference(), nil, discardLogger())
	p.Update(ctx, models.UpdateSpeechRequest{VoiceID: ptr("us-voice")})

	// Same accent, differently cased: nothing changes
	got := p.Update(ctx, models.UpdateSpeechRequest{Accent: ptr("en-us")})
	assert.Equal(t, "us-voice", got.VoiceID)

	got = p.Update(ctx, models.UpdateSpeechRequest{Accent: ptr("en-gb")})
	assert.Equal(t, "en-GB", got.Accent)
	assert.Empty(t, got.VoiceID)

	stored, ok, err := store.Get(ctx, keyVoice)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, stored)

	// A voice in the same request survives the accent change
	got = p.Update(ctx, models.UpdateSpeechRequest{Accent: ptr("en-AU"), VoiceID: ptr("au-voice")})
	assert.Equal(t, "en-AU", got.Accent)
	assert.Equal(t, "au-voice", got.VoiceID)
}

func TestPreferences_ConcurrentUpdatesStoreLatest(t *testing.T) {
	ctx := context.Background()
	store := newGatedStore()
	p := LoadPreferences(ctx, store, DefaultPreference(), nil, discardLogger())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		p.Update(ctx, models.UpdateSpeechRequest{Rate: ptr(0.8)})
	}()
	<-store.entered
	go func() {
		defer wg.Done()
		p.Update(ctx, models.UpdateSpeechRequest{Rate: ptr(1.1)})
	}()
	close(store.release)
	wg.Wait()

	assert.InDelta(t, 1.1, p.Get().Rate, 1e-9)
	reloaded := LoadPreferences(ctx, store, DefaultPreference(), nil, discardLogger())
	assert.InDelta(t, 1.1, reloaded.Get().Rate, 1e-9)
}

func TestPreferences_DegradedStore(t *testing.T) {
	ctx := context.Background()
	notices := &recordingNotifier{}
	p := LoadPreferences(ctx, brokenStore{}, DefaultPreference(), notices, discardLogger())

	assert.Equal(t, DefaultPreference(), p.Get())

	got := p.Update(ctx, models.UpdateSpeechRequest{Rate: ptr(0.7)})
	assert.InDelta(t, 0.7, got.Rate, 1e-9)
	assert.InDelta(t, 0.7, p.Get().Rate, 1e-9)

	// Notifier deduplicates by id; every failure reports the same one
	assert.Positive(t, notices.count(noticeSettingsUnsaved))
}

func TestPreferences_NoStore(t *testing.T) {
	ctx := context.Background()
	notices := &recordingNotifier{}
	p := LoadPreferences(ctx, nil, DefaultPreference(), notices, discardLogger())

	p.Update(ctx, models.UpdateSpeechRequest{Accent: ptr("en-GB")})
	assert.Equal(t, "en-GB", p.Get().Accent)
	assert.Equal(t, 1, notices.count(noticeSettingsUnsaved))
}

func TestCanonicalAccent(t *testing.T) {
	assert.Equal(t, "en-US", CanonicalAccent("en-us"))
	assert.Equal(t, "en-GB", CanonicalAccent("EN-gb"))
	assert.Equal(t, "not a tag!", CanonicalAccent("not a tag!"))
}
