package speech

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehmann314159/vocabdrill/internal/models"
	"github.com/lehmann314159/vocabdrill/internal/repository"
)

func newTestSpeaker(t *testing.T, engine Engine, pref models.SpeechPreference, notices Notifier) *Speaker {
	t.Helper()
	prefs := LoadPreferences(context.Background(), repository.NewMemoryStore(), pref, nil, discardLogger())
	return NewSpeaker(engine, NewSelector(nil, nil), prefs, notices, discardLogger())
}

// gatedEngine is an outbox whose first voice lookup waits for release
type gatedEngine struct {
	*Outbox
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (e *gatedEngine) Voices() []models.Voice {
	first := false
	e.once.Do(func() { first = true })
	if first {
		close(e.entered)
		<-e.release
	}
	return e.Outbox.Voices()
}

func TestSpeaker_NoEngine(t *testing.T) {
	notices := &recordingNotifier{}
	s := newTestSpeaker(t, nil, DefaultPreference(), notices)

	s.Speak("hello")
	s.SpeakAccent("hello", "en-GB")

	assert.Equal(t, 2, notices.count("speech-unavailable"))
	assert.Empty(t, s.Voices("en-US"))
}

func TestSpeaker_LastRequestWins(t *testing.T) {
	out := NewOutbox()
	s := newTestSpeaker(t, out, DefaultPreference(), nil)

	s.Speak("first")
	s.Speak("second")

	u, ok := out.Take()
	require.True(t, ok)
	assert.Equal(t, "second", u.Text)
	assert.Equal(t, uint64(2), u.Seq)

	_, ok = out.Take()
	assert.False(t, ok)
}

func TestSpeaker_SlowRequestDoesNotReplaceNewer(t *testing.T) {
	engine := &gatedEngine{
		Outbox:  NewOutbox(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := newTestSpeaker(t, engine, DefaultPreference(), nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.Speak("one")
	}()
	<-engine.entered
	go func() {
		defer wg.Done()
		s.Speak("two")
	}()
	close(engine.release)
	wg.Wait()

	u, ok := engine.Take()
	require.True(t, ok)
	assert.Equal(t, "two", u.Text)
	assert.Equal(t, uint64(2), u.Seq)
}

func TestSpeaker_ClampsPlayback(t *testing.T) {
	out := NewOutbox()
	pref := DefaultPreference()
	pref.Rate = 3
	pref.Pitch = 0.1
	pref.Volume = 1.5
	s := newTestSpeaker(t, out, pref, nil)

	s.Speak("ephemeral")

	u, ok := out.Take()
	require.True(t, ok)
	assert.InDelta(t, MaxRate, u.Rate, 1e-9)
	assert.InDelta(t, MinPitch, u.Pitch, 1e-9)
	assert.InDelta(t, MaxVolume, u.Volume, 1e-9)
}

func TestSpeaker_AccentAndVoice(t *testing.T) {
	out := NewOutbox()
	out.SetVoices([]models.Voice{
		{ID: "us", Name: "Google US English", Lang: "en-US"},
		{ID: "gb", Name: "Google UK English Male", Lang: "en-GB"},
	})
	s := newTestSpeaker(t, out, DefaultPreference(), nil)

	s.Speak("run")
	u, ok := out.Take()
	require.True(t, ok)
	assert.Equal(t, "en-US", u.Lang)
	require.NotNil(t, u.Voice)
	assert.Equal(t, "us", u.Voice.ID)

	s.SpeakAccent("run", "en-GB")
	u, ok = out.Take()
	require.True(t, ok)
	assert.Equal(t, "en-GB", u.Lang)
	assert.Equal(t, "gb", u.Voice.ID)

	assert.Len(t, s.Voices(""), 2)
}

func TestSpeaker_IgnoresBlankText(t *testing.T) {
	out := NewOutbox()
	s := newTestSpeaker(t, out, DefaultPreference(), nil)

	s.Speak("   ")
	_, ok := out.Take()
	assert.False(t, ok)
}

func TestSpeaker_NoVoicesStillSpeaks(t *testing.T) {
	out := NewOutbox()
	s := newTestSpeaker(t, out, DefaultPreference(), nil)

	s.Speak("walk")
	u, ok := out.Take()
	require.True(t, ok)
	assert.Nil(t, u.Voice)
	assert.Equal(t, "walk", u.Text)
}

func TestOutbox_VoiceListeners(t *testing.T) {
	out := NewOutbox()
	var got [][]models.Voice
	out.OnVoicesChanged(func(v []models.Voice) { got = append(got, v) })

	voices := []models.Voice{{ID: "a", Lang: "en-US"}}
	out.SetVoices(voices)
	out.SetVoices(nil)

	require.Len(t, got, 2)
	assert.Equal(t, voices, got[0])
	assert.Empty(t, got[1])
	assert.Empty(t, out.Voices())

	// The outbox keeps its own copy
	out.SetVoices(voices)
	voices[0].ID = "changed"
	assert.Equal(t, "a", out.Voices()[0].ID)
}

func TestOutbox_Cancel(t *testing.T) {
	out := NewOutbox()
	out.Speak(models.Utterance{Text: "hi"})
	out.Cancel()

	_, ok := out.Take()
	assert.False(t, ok)
}
