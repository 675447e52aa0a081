package models

// Voice describes a speech voice offered by the client's speech engine
type Voice struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name"`
	Lang  string `json:"lang"`
	Local bool   `json:"local"`
}

// SpeechPreference holds the learner's persisted speech settings. An empty
// VoiceID means the voice is picked automatically.
type SpeechPreference struct {
	VoiceID string  `json:"voice_id"`
	Accent  string  `json:"accent"`
	Rate    float64 `json:"rate"`
	Pitch   float64 `json:"pitch"`
	Volume  float64 `json:"volume"`
}

// UpdateSpeechRequest is the body of a speech preference update. Nil fields
// are left unchanged.
type UpdateSpeechRequest struct {
	VoiceID *string  `json:"voice_id,omitempty"`
	Accent  *string  `json:"accent,omitempty" validate:"omitempty,bcp47_language_tag"`
	Rate    *float64 `json:"rate,omitempty" validate:"omitempty,gt=0,lte=4"`
	Pitch   *float64 `json:"pitch,omitempty" validate:"omitempty,gt=0,lte=4"`
}

// Utterance is a single speak request handed to the speech engine
type Utterance struct {
	Seq    uint64  `json:"seq"`
	Text   string  `json:"text"`
	Lang   string  `json:"lang"`
	Voice  *Voice  `json:"voice,omitempty"`
	Rate   float64 `json:"rate"`
	Pitch  float64 `json:"pitch"`
	Volume float64 `json:"volume"`
}
