package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ziadkadry99/slideai/internal/llm"
	"github.com/ziadkadry99/slideai/internal/script"
	"github.com/ziadkadry99/slideai/internal/session"
	"github.com/ziadkadry99/slideai/internal/slideshow"
	"github.com/ziadkadry99/slideai/internal/upload"
)

// errorResponse is the JSON body of every failed API call.
type errorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

// slidesResponse describes the current deck.
type slidesResponse struct {
	SlidesHTML   string    `json:"slides_html"`
	DownloadURI  string    `json:"download_uri"`
	DownloadName string    `json:"download_name"`
	SlideCount   int       `json:"slide_count"`
	Topic        string    `json:"topic"`
	UpdatedAt    time.Time `json:"updated_at"`
	Message      string    `json:"message,omitempty"`
}

// loadScriptRequest is the body of PUT /api/sessions/{id}/script.
type loadScriptRequest struct {
	Script string `json:"script"`
}

// scriptResponse carries the outcome of a script generation.
type scriptResponse struct {
	Message string             `json:"message"`
	View    session.ScriptView `json:"view"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps err onto an HTTP status. fallback is the user-facing
// message for failures of the completion call.
func writeError(w http.ResponseWriter, err error, fallback string) {
	resp := errorResponse{Error: err.Error()}
	status := http.StatusBadGateway

	switch {
	case errors.Is(err, session.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrNoSlides):
		status = http.StatusConflict
		resp.Message = session.MsgNoSlides
	case errors.Is(err, session.ErrNoScript), errors.Is(err, session.ErrBusy):
		status = http.StatusConflict
	case errors.Is(err, script.ErrUnparseable):
		status = http.StatusUnprocessableEntity
		resp.Message = session.MsgScriptUnusable
	case errors.Is(err, upload.ErrNotAccepted), errors.Is(err, upload.ErrTooLarge), errors.Is(err, upload.ErrNotText):
		status = http.StatusBadRequest
	default:
		resp.Message = fallback
		resp.StatusCode = llm.StatusCode(err)
	}

	writeJSON(w, status, resp)
}

func (h *Web) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "")
		return nil, false
	}
	return s, true
}

func (h *Web) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	writeJSON(w, http.StatusCreated, map[string]string{"id": s.ID})
}

func (h *Web) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func slidesBody(s *session.Session, slides, msg string) slidesResponse {
	return slidesResponse{
		SlidesHTML:   slides,
		DownloadURI:  slideshow.DataURI(slides),
		DownloadName: slideshow.DownloadName,
		SlideCount:   s.SlideCount(),
		Topic:        s.Request().Topic,
		UpdatedAt:    s.UpdatedAt(),
		Message:      msg,
	}
}

func (h *Web) handleGenerateSlides(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid form: %v", err)})
		return
	}

	req := session.Request{Topic: r.FormValue("topic")}
	if r.MultipartForm != nil {
		files, err := upload.FromMultipart(r.MultipartForm.File["files"], h.filter)
		if err != nil {
			writeError(w, err, "")
			return
		}
		if req.Supplementary, err = upload.Combine(files); err != nil {
			writeError(w, err, "")
			return
		}
	}

	slides, err := s.GenerateSlides(r.Context(), req)
	if err != nil {
		writeError(w, err, session.MsgSlidesFailed)
		return
	}

	writeJSON(w, http.StatusOK, slidesBody(s, slides, session.MsgSlidesReady))
}

func (h *Web) handleGetSlides(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	slides := s.Slides()
	if slides == "" {
		writeError(w, session.ErrNoSlides, "")
		return
	}
	writeJSON(w, http.StatusOK, slidesBody(s, slides, ""))
}

func (h *Web) handleSlideshow(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	slides := s.Slides()
	if slides == "" {
		http.Error(w, session.MsgNoSlides, http.StatusConflict)
		return
	}

	start := 1
	if v := r.URL.Query().Get("slide"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			start = n
		}
	}

	page, err := slideshow.Render(slides, start)
	if err != nil {
		log.Printf("web: %v", err)
		http.Error(w, "rendering slideshow failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (h *Web) handleDownload(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	slides := s.Slides()
	if slides == "" {
		http.Error(w, session.MsgNoSlides, http.StatusConflict)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", slideshow.DownloadName))
	w.Write([]byte(slides))
}

func (h *Web) handleGenerateScript(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if _, err := s.GenerateScript(r.Context()); err != nil {
		writeError(w, err, session.MsgScriptFailed)
		return
	}
	view, err := s.Current()
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, scriptResponse{Message: session.MsgScriptReady, View: view})
}

func (h *Web) handleLoadScript(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req loadScriptRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormMemory)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	if err := s.LoadScript(req.Script); err != nil {
		writeError(w, err, "")
		return
	}
	h.writeView(w, r, (*session.Session).Current)
}

func (h *Web) handleGetScript(w http.ResponseWriter, r *http.Request) {
	h.writeView(w, r, (*session.Session).Current)
}

func (h *Web) handleNext(w http.ResponseWriter, r *http.Request) {
	h.writeView(w, r, (*session.Session).Next)
}

func (h *Web) handlePrev(w http.ResponseWriter, r *http.Request) {
	h.writeView(w, r, (*session.Session).Prev)
}

func (h *Web) writeView(w http.ResponseWriter, r *http.Request, op func(*session.Session) (session.ScriptView, error)) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	view, err := op(s)
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, view)
}
