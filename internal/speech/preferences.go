package speech

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"golang.org/x/text/language"

	"github.com/lehmann314159/vocabdrill/internal/models"
	"github.com/lehmann314159/vocabdrill/internal/repository"
)

const (
	keyVoice  = "speech_voiceURI"
	keyAccent = "speech_accent"
	keyRate   = "speech_rate"
	keyPitch  = "speech_pitch"

	// noticeSettingsUnsaved is posted when speech settings cannot be stored
	noticeSettingsUnsaved = "speech-settings-unsaved"
)

// Notifier receives one-time user notices
type Notifier interface {
	PostOnce(id, msg string)
}

// Preferences is the persisted SpeechPreference. Writes go through to the
// store field by field; a failing store leaves the in-memory value in charge.
type Preferences struct {
	// writeMu orders updates so the store ends with the latest values
	writeMu sync.Mutex
	mu      sync.RWMutex
	pref    models.SpeechPreference
	store   repository.KeyValueStore
	notices Notifier
	log     *slog.Logger
}

// DefaultPreference is used for every field missing from the store
func DefaultPreference() models.SpeechPreference {
	return models.SpeechPreference{Accent: "en-US", Rate: 0.92, Pitch: 1.0, Volume: 1.0}
}

// LoadPreferences reads stored fields over defaults. store may be nil.
func LoadPreferences(ctx context.Context, store repository.KeyValueStore, defaults models.SpeechPreference, notices Notifier, log *slog.Logger) *Preferences {
	p := &Preferences{
		pref:    defaults,
		store:   store,
		notices: notices,
		log:     log.With("component", "speech_preferences"),
	}
	if store == nil {
		return p
	}

	get := func(key string) (string, bool) {
		v, ok, err := store.Get(ctx, key)
		if err != nil {
			p.degraded(err)
			return "", false
		}
		return v, ok
	}

	if v, ok := get(keyVoice); ok {
		p.pref.VoiceID = v
	}
	if v, ok := get(keyAccent); ok && v != "" {
		p.pref.Accent = v
	}
	if v, ok := get(keyRate); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			p.pref.Rate = f
		}
	}
	if v, ok := get(keyPitch); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			p.pref.Pitch = f
		}
	}
	return p
}

// Get returns the current preference
func (p *Preferences) Get() models.SpeechPreference {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pref
}

// Update applies the non-nil fields of req. Changing the accent resets the
// voice to automatic unless the same request picks one.
func (p *Preferences) Update(ctx context.Context, req models.UpdateSpeechRequest) models.SpeechPreference {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.mu.Lock()
	writes := map[string]string{}

	if req.Accent != nil {
		accent := CanonicalAccent(*req.Accent)
		if accent != p.pref.Accent {
			p.pref.Accent = accent
			writes[keyAccent] = accent
			if req.VoiceID == nil {
				p.pref.VoiceID = ""
				writes[keyVoice] = ""
			}
		}
	}
	if req.VoiceID != nil {
		p.pref.VoiceID = *req.VoiceID
		writes[keyVoice] = *req.VoiceID
	}
	if req.Rate != nil {
		p.pref.Rate = *req.Rate
		writes[keyRate] = strconv.FormatFloat(*req.Rate, 'f', -1, 64)
	}
	if req.Pitch != nil {
		p.pref.Pitch = *req.Pitch
		writes[keyPitch] = strconv.FormatFloat(*req.Pitch, 'f', -1, 64)
	}
	pref := p.pref
	p.mu.Unlock()

	p.persist(ctx, writes)
	return pref
}

func (p *Preferences) persist(ctx context.Context, writes map[string]string) {
	if len(writes) == 0 {
		return
	}
	if p.store == nil {
		p.degraded(nil)
		return
	}
	for k, v := range writes {
		if err := p.store.Set(ctx, k, v); err != nil {
			p.degraded(err)
			return
		}
	}
}

func (p *Preferences) degraded(err error) {
	p.log.Warn("speech settings cannot be saved, keeping them in memory", "error", err)
	if p.notices != nil {
		p.notices.PostOnce(noticeSettingsUnsaved, "Settings cannot be saved; they will be kept until the session ends")
	}
}

// CanonicalAccent formats a BCP-47 tag canonically ("en-us" becomes
// "en-US"). Unparseable input is returned unchanged.
func CanonicalAccent(accent string) string {
	tag, err := language.Parse(accent)
	if err != nil {
		return accent
	}
	return tag.String()
}
