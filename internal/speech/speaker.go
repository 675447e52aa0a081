package speech

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/lehmann314159/vocabdrill/internal/models"
)

// Playback bounds
const (
	MinRate   = 0.6
	MaxRate   = 1.25
	MinPitch  = 0.7
	MaxPitch  = 1.2
	MinVolume = 0.0
	MaxVolume = 1.0
)

// TestPhrase is read by the settings page's test button
const TestPhrase = "Hello! Welcome back. Let's learn English."

// Speaker turns text into utterances using the learner's preferences. It
// never fails: without an engine every request is a no-op and the learner
// is told once.
type Speaker struct {
	mu       sync.Mutex
	engine   Engine
	selector *Selector
	prefs    *Preferences
	notices  Notifier
	log      *slog.Logger
	seq      uint64
}

// NewSpeaker wires a speaker to engine, which may be nil
func NewSpeaker(engine Engine, selector *Selector, prefs *Preferences, notices Notifier, log *slog.Logger) *Speaker {
	s := &Speaker{
		engine:   engine,
		selector: selector,
		prefs:    prefs,
		notices:  notices,
		log:      log.With("component", "speaker"),
	}
	if vn, ok := engine.(VoiceNotifier); ok {
		vn.OnVoicesChanged(s.voicesChanged)
	}
	return s
}

// Speak reads text in the preferred accent
func (s *Speaker) Speak(text string) {
	s.SpeakAccent(text, "")
}

// SpeakAccent reads text in accent, or the preferred accent when empty. Any
// utterance still pending is cancelled first.
func (s *Speaker) SpeakAccent(text, accent string) {
	if s.engine == nil {
		s.log.Debug("speech unavailable, dropping request")
		if s.notices != nil {
			s.notices.PostOnce("speech-unavailable", "Speech is not available in this browser")
		}
		return
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	pref := s.prefs.Get()
	if accent == "" {
		accent = pref.Accent
	}

	// Held until the engine has the utterance, so a newer request always lands last
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	u := models.Utterance{
		Seq:    s.seq,
		Text:   text,
		Lang:   accent,
		Voice:  s.selector.PickBest(s.engine.Voices(), accent, pref.VoiceID),
		Rate:   clamp(pref.Rate, MinRate, MaxRate),
		Pitch:  clamp(pref.Pitch, MinPitch, MaxPitch),
		Volume: clamp(pref.Volume, MinVolume, MaxVolume),
	}

	s.engine.Cancel()
	s.engine.Speak(u)
}

// Voices lists the engine's voices for accent, best first
func (s *Speaker) Voices(accent string) []models.Voice {
	if s.engine == nil {
		return []models.Voice{}
	}
	if accent == "" {
		accent = s.prefs.Get().Accent
	}
	return s.selector.ListForAccent(s.engine.Voices(), accent)
}

func (s *Speaker) voicesChanged(voices []models.Voice) {
	pref := s.prefs.Get()
	attrs := []any{"count", len(voices), "accent", pref.Accent}
	if best := s.selector.PickBest(voices, pref.Accent, pref.VoiceID); best != nil {
		attrs = append(attrs, "voice", best.Name)
	}
	s.log.Info("voice list updated", attrs...)
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
