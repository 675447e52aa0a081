package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lehmann314159/vocabdrill/internal/models"
	"github.com/lehmann314159/vocabdrill/internal/services"
	"github.com/lehmann314159/vocabdrill/internal/speech"
)

// Handler contains all HTTP handlers
type Handler struct {
	drill    *services.Drill
	speaker  *speech.Speaker
	prefs    *speech.Preferences
	outbox   *speech.Outbox
	validate *validator.Validate
	log      *slog.Logger
}

// NewHandler creates a new handler. outbox is the speech engine the client
// polls; it may be nil when speech is unavailable.
func NewHandler(drill *services.Drill, speaker *speech.Speaker, prefs *speech.Preferences, outbox *speech.Outbox, log *slog.Logger) *Handler {
	return &Handler{
		drill:    drill,
		speaker:  speaker,
		prefs:    prefs,
		outbox:   outbox,
		validate: validator.New(),
		log:      log.With("component", "api"),
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// decodeBody reads a JSON body into v. An empty body is accepted when
// optional is set.
func decodeBody(r *http.Request, v any, optional bool) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if optional && errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// validationMessage turns validator errors into "invalid <field>: <tag>"
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("invalid %s: failed %s", fe.Field(), fe.Tag())
	}
	return "validation error"
}

// readRequest decodes and validates a request body, writing the 400 itself
func (h *Handler) readRequest(w http.ResponseWriter, r *http.Request, v any, optional bool) bool {
	if err := decodeBody(r, v, optional); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

// wordParam returns the {word} path segment, unescaped
func wordParam(r *http.Request) string {
	word := chi.URLParam(r, "word")
	if unescaped, err := url.PathUnescape(word); err == nil {
		return unescaped
	}
	return word
}

// ListWords handles GET /api/v1/words. The table state persists between
// calls; parameters that are absent keep their current value.
func (h *Handler) ListWords(w http.ResponseWriter, r *http.Request) {
	query, err := parseBrowseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(query); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	update := services.FilterUpdate{
		Search:       query.Search,
		HideMastered: query.HideMastered,
		Page:         query.Page,
		PageSize:     query.PageSize,
	}
	switch query.Move {
	case "next":
		update.Move = 1
	case "prev":
		update.Move = -1
	}

	writeJSON(w, http.StatusOK, h.drill.Browse(update))
}

func parseBrowseQuery(r *http.Request) (models.BrowseQuery, error) {
	q := r.URL.Query()
	var query models.BrowseQuery

	if q.Has("search") {
		s := q.Get("search")
		query.Search = &s
	}
	if q.Has("hide_mastered") {
		hide, err := strconv.ParseBool(q.Get("hide_mastered"))
		if err != nil {
			return query, errors.New("invalid hide_mastered")
		}
		query.HideMastered = &hide
	}
	if q.Has("page") {
		page, err := strconv.Atoi(q.Get("page"))
		if err != nil {
			return query, errors.New("invalid page")
		}
		query.Page = &page
	}
	if q.Has("page_size") {
		size, err := strconv.Atoi(q.Get("page_size"))
		if err != nil {
			return query, errors.New("invalid page_size")
		}
		query.PageSize = &size
	}
	query.Move = q.Get("move")
	return query, nil
}

// ToggleMastery handles POST /api/v1/words/{word}/mastery
func (h *Handler) ToggleMastery(w http.ResponseWriter, r *http.Request) {
	word := wordParam(r)

	mastered, err := h.drill.ToggleMastery(r.Context(), word)
	if err != nil {
		if errors.Is(err, services.ErrEmptyWord) {
			writeError(w, http.StatusBadRequest, "word is required")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update mastery")
		return
	}

	writeJSON(w, http.StatusOK, models.MasteryResponse{
		Key:      models.Key(word),
		Mastered: mastered,
		Stats:    h.drill.Stats(),
	})
}

// SpeakWord handles POST /api/v1/words/{word}/speak
func (h *Handler) SpeakWord(w http.ResponseWriter, r *http.Request) {
	var req models.SpeakRequest
	if !h.readRequest(w, r, &req, true) {
		return
	}
	if req.Part == "" {
		req.Part = models.PartWord
	}

	err := h.drill.SpeakWord(wordParam(r), req.Part, speech.CanonicalAccent(req.Accent))
	if err != nil {
		if errors.Is(err, services.ErrUnknownWord) {
			writeError(w, http.StatusNotFound, "word not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to speak word")
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// GetWordDefinition handles GET /api/v1/words/{word}/definition
func (h *Handler) GetWordDefinition(w http.ResponseWriter, r *http.Request) {
	definition, err := h.drill.Definition(r.Context(), wordParam(r))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownWord):
			writeError(w, http.StatusNotFound, "word not found")
		case errors.Is(err, services.ErrDefinitionNotFound):
			writeError(w, http.StatusNotFound, "definition not found in dictionary")
		case errors.Is(err, services.ErrDictionaryDisabled):
			writeError(w, http.StatusServiceUnavailable, "dictionary lookups are disabled")
		default:
			h.log.Warn("definition lookup failed", "word", wordParam(r), "error", err)
			writeError(w, http.StatusBadGateway, "failed to get definition")
		}
		return
	}

	writeJSON(w, http.StatusOK, definition)
}

// ImportWords handles POST /api/v1/words/import
func (h *Handler) ImportWords(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form
	err := r.ParseMultipartForm(10 << 20) // 10 MB max
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	result, err := h.drill.ImportCSV(r.Context(), file)
	if err != nil {
		if errors.Is(err, services.ErrInvalidImport) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("import failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to import words")
		return
	}

	h.log.Info("words imported", "imported", result.Imported, "skipped", result.Skipped)
	writeJSON(w, http.StatusOK, result)
}

// ExportWords handles GET /api/v1/words/export
func (h *Handler) ExportWords(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=words.csv")

	if err := h.drill.ExportCSV(w); err != nil {
		h.log.Error("export failed", "error", err)
	}
}

// Stats handles GET /api/v1/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.drill.Stats())
}

// Notices handles GET /api/v1/notices
func (h *Handler) Notices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.drill.Notices().Drain())
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
