package api

import (
	"net/http"

	"github.com/lehmann314159/vocabdrill/internal/models"
	"github.com/lehmann314159/vocabdrill/internal/speech"
)

// ListVoices handles GET /api/v1/speech/voices. The accent query defaults to
// the preferred accent.
func (h *Handler) ListVoices(w http.ResponseWriter, r *http.Request) {
	accent := speech.CanonicalAccent(r.URL.Query().Get("accent"))
	writeJSON(w, http.StatusOK, h.speaker.Voices(accent))
}

// SetVoices handles PUT /api/v1/speech/voices, where the client publishes the
// voices its speech engine offers.
func (h *Handler) SetVoices(w http.ResponseWriter, r *http.Request) {
	if h.outbox == nil {
		writeError(w, http.StatusServiceUnavailable, "speech is not available")
		return
	}
	var req models.SetVoicesRequest
	if !h.readRequest(w, r, &req, false) {
		return
	}
	h.outbox.SetVoices(req.Voices)
	w.WriteHeader(http.StatusNoContent)
}

// GetSpeechPreferences handles GET /api/v1/speech/preferences
func (h *Handler) GetSpeechPreferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.prefs.Get())
}

// UpdateSpeechPreferences handles PUT /api/v1/speech/preferences
func (h *Handler) UpdateSpeechPreferences(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSpeechRequest
	if !h.readRequest(w, r, &req, false) {
		return
	}
	writeJSON(w, http.StatusOK, h.prefs.Update(r.Context(), req))
}

// TestSpeech handles POST /api/v1/speech/test
func (h *Handler) TestSpeech(w http.ResponseWriter, r *http.Request) {
	h.speaker.Speak(speech.TestPhrase)
	w.WriteHeader(http.StatusAccepted)
}

// NextUtterance handles GET /api/v1/speech/utterance. It hands the pending
// utterance to the client once; 204 means there is nothing to say.
func (h *Handler) NextUtterance(w http.ResponseWriter, r *http.Request) {
	if h.outbox == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	u, ok := h.outbox.Take()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
