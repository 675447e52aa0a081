package models

// BrowseQuery is the word table query. Nil fields keep the current table
// state.
type BrowseQuery struct {
	Search       *string
	HideMastered *bool
	Page         *int
	PageSize     *int   `validate:"omitempty,min=1,max=200"`
	Move         string `validate:"omitempty,oneof=next prev"`
}

// SpeakRequest asks for a word or its example sentence to be read aloud
type SpeakRequest struct {
	Part   CardPart `json:"part,omitempty" validate:"omitempty,oneof=word sentence"`
	Accent string   `json:"accent,omitempty" validate:"omitempty,bcp47_language_tag"`
}

// WheelRoundRequest opens or refreshes the wheel. Compact selects the small
// pool for narrow screens.
type WheelRoundRequest struct {
	Compact bool `json:"compact"`
}

// SetModeRequest switches the wheel's question side
type SetModeRequest struct {
	Mode string `json:"mode" validate:"required"`
}

// ResolveRequest records the verdict on the shown flashcard
type ResolveRequest struct {
	Outcome string `json:"outcome" validate:"required"`
}

// ResolveResponse reports the wheel after a verdict
type ResolveResponse struct {
	Complete bool          `json:"complete"`
	Wheel    WheelSnapshot `json:"wheel"`
}

// SetVoicesRequest publishes the client's speech voices
type SetVoicesRequest struct {
	Voices []Voice `json:"voices" validate:"dive"`
}

// MasteryResponse is the result of a mastery toggle
type MasteryResponse struct {
	Key      string `json:"key"`
	Mastered bool   `json:"mastered"`
	Stats    Stats  `json:"stats"`
}
