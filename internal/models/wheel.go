package models

import (
	"fmt"
)

// WheelMode selects which side of an entry the wheel asks about
type WheelMode string

const (
	// ModeWordToMeaning shows the word and asks for its meaning
	ModeWordToMeaning WheelMode = "word_to_meaning"
	// ModeMeaningToWord shows the meaning and asks for the word
	ModeMeaningToWord WheelMode = "meaning_to_word"
)

// ParseWheelMode accepts the API names and the short forms used by the old
// browser client.
func ParseWheelMode(s string) (WheelMode, error) {
	switch s {
	case string(ModeWordToMeaning), "en_cn":
		return ModeWordToMeaning, nil
	case string(ModeMeaningToWord), "cn_en":
		return ModeMeaningToWord, nil
	}
	return "", fmt.Errorf("unknown wheel mode %q", s)
}

// Outcome is the learner's verdict on a flashcard
type Outcome string

const (
	OutcomeRemembered Outcome = "remembered"
	OutcomeMissed     Outcome = "missed"
)

// ParseOutcome accepts the API names and the old client's button names.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case string(OutcomeRemembered), "got":
		return OutcomeRemembered, nil
	case string(OutcomeMissed), "miss":
		return OutcomeMissed, nil
	}
	return "", fmt.Errorf("unknown outcome %q", s)
}

// WheelPhase is the spin state of the wheel
type WheelPhase string

const (
	PhaseIdle      WheelPhase = "idle"
	PhaseSpinning  WheelPhase = "spinning"
	PhaseCardShown WheelPhase = "card_shown"
)

// CardPart selects what to read aloud from a flashcard
type CardPart string

const (
	PartWord     CardPart = "word"
	PartSentence CardPart = "sentence"
)

// Sector is one slice of the wheel as a client draws it
type Sector struct {
	Index      int    `json:"index"`
	Label      string `json:"label,omitempty"`
	Eliminated bool   `json:"eliminated"`
}

// Flashcard is the card shown after a spin settles
type Flashcard struct {
	Index    int       `json:"index"`
	Mode     WheelMode `json:"mode"`
	Question string    `json:"question"`
	Hint     string    `json:"hint"`
	Revealed bool      `json:"revealed"`
	Entry    *Entry    `json:"entry,omitempty"`
}

// SpinResult tells a client where to rotate the wheel and for how long
type SpinResult struct {
	RoundID  string  `json:"round_id"`
	Index    int     `json:"index"`
	Rotation float64 `json:"rotation"`
	SettleMS int64   `json:"settle_ms"`
}

// WheelSnapshot is a read-only view of the wheel
type WheelSnapshot struct {
	Open      bool       `json:"open"`
	RoundID   string     `json:"round_id,omitempty"`
	Mode      WheelMode  `json:"mode"`
	Phase     WheelPhase `json:"phase"`
	PoolSize  int        `json:"pool_size"`
	Remaining int        `json:"remaining"`
	Complete  bool       `json:"complete"`
	Rotation  float64    `json:"rotation"`
	Sectors   []Sector   `json:"sectors"`
	Card      *Flashcard `json:"card,omitempty"`
	Version   uint64     `json:"version"`
}
