// Package speech picks voices and turns speak requests into utterances for
// the client's speech engine.
package speech

import (
	"slices"
	"strings"

	"github.com/lehmann314159/vocabdrill/internal/models"
)

// Score weights
const (
	accentMatchScore = 50
	localScore       = 2
	preferScore      = 10
	avoidPenalty     = 30
)

// DefaultPrefer lists name fragments of voices that usually sound natural
var DefaultPrefer = []string{
	"google", "microsoft", "siri", "samantha", "karen", "tessa",
	"daniel", "alex", "neural", "online", "premium", "enhanced",
}

// DefaultAvoid lists name fragments of robotic engines
var DefaultAvoid = []string{"compact", "espeak", "festival", "mbrola"}

// Selector ranks voices against an accent. The keyword lists are data so
// they can follow vendor naming without code changes.
type Selector struct {
	prefer []string
	avoid  []string
}

// NewSelector builds a selector; keywords are matched case-insensitively.
// Nil lists fall back to the defaults.
func NewSelector(prefer, avoid []string) *Selector {
	if prefer == nil {
		prefer = DefaultPrefer
	}
	if avoid == nil {
		avoid = DefaultAvoid
	}
	return &Selector{prefer: lowerAll(prefer), avoid: lowerAll(avoid)}
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Score rates a voice for accent; higher is better.
func (s *Selector) Score(v models.Voice, accent string) int {
	name := strings.ToLower(v.Name)
	lang := strings.ToLower(v.Lang)

	score := 0
	if strings.HasPrefix(lang, strings.ToLower(accent)) {
		score += accentMatchScore
	}
	if v.Local {
		score += localScore
	}
	for _, p := range s.prefer {
		if strings.Contains(name, p) {
			score += preferScore
		}
	}
	for _, a := range s.avoid {
		if strings.Contains(name, a) {
			score -= avoidPenalty
		}
	}
	return score
}

// PickBest returns the voice whose id or name equals preferredID, or else the
// highest scoring voice (first one wins a tie). It returns nil for an empty
// list.
func (s *Selector) PickBest(voices []models.Voice, accent, preferredID string) *models.Voice {
	if len(voices) == 0 {
		return nil
	}

	if preferredID != "" {
		for i := range voices {
			if voices[i].ID == preferredID || voices[i].Name == preferredID {
				v := voices[i]
				return &v
			}
		}
	}

	best := 0
	bestScore := s.Score(voices[0], accent)
	for i := 1; i < len(voices); i++ {
		if sc := s.Score(voices[i], accent); sc > bestScore {
			best, bestScore = i, sc
		}
	}
	v := voices[best]
	return &v
}

// ListForAccent returns the voices sharing the accent's primary language
// (its first two characters), best first.
func (s *Selector) ListForAccent(voices []models.Voice, accent string) []models.Voice {
	primary := strings.ToLower(accent)
	if len(primary) > 2 {
		primary = primary[:2]
	}

	out := make([]models.Voice, 0, len(voices))
	for _, v := range voices {
		if strings.HasPrefix(strings.ToLower(v.Lang), primary) {
			out = append(out, v)
		}
	}

	slices.SortStableFunc(out, func(a, b models.Voice) int {
		return s.Score(b, accent) - s.Score(a, accent)
	})
	return out
}
