package api

import (
	"errors"
	"net/http"

	"github.com/lehmann314159/vocabdrill/internal/models"
	"github.com/lehmann314159/vocabdrill/internal/services"
)

// writeWheelError maps wheel state errors to HTTP statuses
func (h *Handler) writeWheelError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyPool),
		errors.Is(err, services.ErrNoRound),
		errors.Is(err, services.ErrSpinning),
		errors.Is(err, services.ErrRoundComplete),
		errors.Is(err, services.ErrNoCard):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrUnknownMode):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("wheel action failed", "error", err)
		writeError(w, http.StatusInternalServerError, "wheel action failed")
	}
}

// GetWheel handles GET /api/v1/wheel
func (h *Handler) GetWheel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.drill.Wheel().Snapshot())
}

// OpenWheel handles POST /api/v1/wheel/open
func (h *Handler) OpenWheel(w http.ResponseWriter, r *http.Request) {
	var req models.WheelRoundRequest
	if !h.readRequest(w, r, &req, true) {
		return
	}
	if err := h.drill.OpenWheel(req.Compact); err != nil {
		h.writeWheelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.drill.Wheel().Snapshot())
}

// CloseWheel handles POST /api/v1/wheel/close
func (h *Handler) CloseWheel(w http.ResponseWriter, r *http.Request) {
	h.drill.Wheel().Close()
	writeJSON(w, http.StatusOK, h.drill.Wheel().Snapshot())
}

// RefreshWheel handles POST /api/v1/wheel/refresh
func (h *Handler) RefreshWheel(w http.ResponseWriter, r *http.Request) {
	var req models.WheelRoundRequest
	if !h.readRequest(w, r, &req, true) {
		return
	}
	if err := h.drill.RefreshWheel(req.Compact); err != nil {
		h.writeWheelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.drill.Wheel().Snapshot())
}

// SetWheelMode handles PUT /api/v1/wheel/mode
func (h *Handler) SetWheelMode(w http.ResponseWriter, r *http.Request) {
	var req models.SetModeRequest
	if !h.readRequest(w, r, &req, false) {
		return
	}
	mode, err := models.ParseWheelMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.drill.Wheel().SetMode(mode); err != nil {
		h.writeWheelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.drill.Wheel().Snapshot())
}

// SpinWheel handles POST /api/v1/wheel/spin
func (h *Handler) SpinWheel(w http.ResponseWriter, r *http.Request) {
	result, err := h.drill.SpinWheel()
	if err != nil {
		h.writeWheelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// RevealCard handles POST /api/v1/wheel/reveal
func (h *Handler) RevealCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.drill.Wheel().Reveal()
	if err != nil {
		h.writeWheelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// ResolveCard handles POST /api/v1/wheel/resolve
func (h *Handler) ResolveCard(w http.ResponseWriter, r *http.Request) {
	var req models.ResolveRequest
	if !h.readRequest(w, r, &req, false) {
		return
	}
	outcome, err := models.ParseOutcome(req.Outcome)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	complete, err := h.drill.Wheel().Resolve(outcome)
	if err != nil {
		h.writeWheelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ResolveResponse{
		Complete: complete,
		Wheel:    h.drill.Wheel().Snapshot(),
	})
}

// SpeakCard handles POST /api/v1/wheel/speak
func (h *Handler) SpeakCard(w http.ResponseWriter, r *http.Request) {
	var req models.SpeakRequest
	if !h.readRequest(w, r, &req, true) {
		return
	}
	if req.Part == "" {
		req.Part = models.PartWord
	}
	if err := h.drill.Wheel().SpeakCard(req.Part); err != nil {
		h.writeWheelError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
