package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/ziadkadry99/slideai/internal/session"
	"github.com/ziadkadry99/slideai/internal/upload"
)

// maxFormMemory is how much of a multipart upload is held in memory before
// spilling to temporary files.
const maxFormMemory = 32 << 20

// Web serves the browser UI and its JSON API.
type Web struct {
	sessions *session.Manager
	filter   upload.Filter
}

// New creates the web surface over the given session manager.
func New(sessions *session.Manager, filter upload.Filter) *Web {
	return &Web{sessions: sessions, filter: filter}
}

// RegisterRoutes mounts all web routes onto the given router.
func (h *Web) RegisterRoutes(r chi.Router) {
	r.Get("/", h.ServeIndex)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", h.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", h.handleDeleteSession)
			r.Get("/slides", h.handleGetSlides)
			r.Post("/slides", h.handleGenerateSlides)
			r.Get("/script", h.handleGetScript)
			r.Post("/script", h.handleGenerateScript)
			r.Put("/script", h.handleLoadScript)
			r.Post("/script/next", h.handleNext)
			r.Post("/script/prev", h.handlePrev)
		})
	})

	r.Get("/sessions/{id}/slideshow", h.handleSlideshow)
	r.Get("/sessions/{id}/download", h.handleDownload)
	r.Get("/ws/sessions/{id}", h.handleWebSocket)
}
