package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures the Chi router
func NewRouter(h *Handler, apiToken string, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(Recoverer(log))
	r.Use(Logger(log))
	r.Use(CORS)

	// Health check endpoint
	r.Get("/health", h.HealthCheck)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(JSONContentType)
		r.Use(BearerAuth(apiToken))

		r.Get("/stats", h.Stats)
		r.Get("/notices", h.Notices)

		r.Route("/words", func(r chi.Router) {
			r.Get("/", h.ListWords)

			// Special routes before /{word} to avoid conflicts
			r.Post("/import", h.ImportWords)
			r.Get("/export", h.ExportWords)

			r.Route("/{word}", func(r chi.Router) {
				r.Post("/mastery", h.ToggleMastery)
				r.Post("/speak", h.SpeakWord)
				r.Get("/definition", h.GetWordDefinition)
			})
		})

		r.Route("/wheel", func(r chi.Router) {
			r.Get("/", h.GetWheel)
			r.Post("/open", h.OpenWheel)
			r.Post("/close", h.CloseWheel)
			r.Post("/refresh", h.RefreshWheel)
			r.Put("/mode", h.SetWheelMode)
			r.Post("/spin", h.SpinWheel)
			r.Post("/reveal", h.RevealCard)
			r.Post("/resolve", h.ResolveCard)
			r.Post("/speak", h.SpeakCard)
		})

		r.Route("/speech", func(r chi.Router) {
			r.Get("/voices", h.ListVoices)
			r.Put("/voices", h.SetVoices)
			r.Get("/preferences", h.GetSpeechPreferences)
			r.Put("/preferences", h.UpdateSpeechPreferences)
			r.Post("/test", h.TestSpeech)
			r.Get("/utterance", h.NextUtterance)
		})
	})

	return r
}
