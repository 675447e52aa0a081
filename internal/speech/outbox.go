package speech

import (
	"slices"
	"sync"

	"github.com/lehmann314159/vocabdrill/internal/models"
)

// Engine is the speech capability: whatever actually produces sound
type Engine interface {
	Voices() []models.Voice
	Speak(u models.Utterance)
	Cancel()
}

// VoiceNotifier is implemented by engines whose voice list arrives late
type VoiceNotifier interface {
	OnVoicesChanged(fn func([]models.Voice))
}

// Outbox is an Engine for a remote client: it holds the latest utterance
// until the client takes it, and learns voices from the client. A new
// utterance replaces an untaken one.
type Outbox struct {
	mu        sync.Mutex
	voices    []models.Voice
	pending   *models.Utterance
	listeners []func([]models.Voice)
}

// NewOutbox creates an outbox with no voices yet
func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Voices() []models.Voice {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.voices)
}

func (o *Outbox) Speak(u models.Utterance) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = &u
}

func (o *Outbox) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = nil
}

// Take returns and clears the pending utterance
func (o *Outbox) Take() (models.Utterance, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.pending == nil {
		return models.Utterance{}, false
	}
	u := *o.pending
	o.pending = nil
	return u, true
}

// SetVoices replaces the voice list and notifies listeners
func (o *Outbox) SetVoices(voices []models.Voice) {
	o.mu.Lock()
	o.voices = slices.Clone(voices)
	listeners := slices.Clone(o.listeners)
	o.mu.Unlock()

	for _, fn := range listeners {
		fn(slices.Clone(voices))
	}
}

func (o *Outbox) OnVoicesChanged(fn func([]models.Voice)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.listeners = append(o.listeners, fn)
}
